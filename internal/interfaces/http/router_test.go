package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/dany-shop/internal/application/auth"
	"github.com/jhoicas/dany-shop/internal/application/ledger"
	"github.com/jhoicas/dany-shop/internal/infrastructure/memory"
	"github.com/jhoicas/dany-shop/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/dany-shop/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Servidor de prueba: memoria + catálogo de ejemplo
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*fiber.App, *ledger.Ledger) {
	t.Helper()
	l := ledger.New(memory.NewLedgerRepository(), ledger.DefaultConfig(),
		ledger.WithClock(func() time.Time { return fixedNow }))
	l.Load(context.Background())
	seeded, err := l.SeedSampleData(context.Background())
	require.NoError(t, err)
	require.True(t, seeded)

	hash, err := bcrypt.GenerateFromPassword([]byte("dany123"), bcrypt.MinCost)
	require.NoError(t, err)
	authUC := auth.NewAuthUseCase(
		auth.Operator{Name: testOperator, PasswordHash: string(hash), Role: auth.RoleAdmin},
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
	)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Ledger:    l,
		AuthUC:    authUC,
		Ticket:    pdf.NewTicketGenerator(),
		JWTSecret: testJWTSecret,
	})
	return app, l
}

// call lanza la petición y devuelve status y cuerpo crudo.
func call(t *testing.T, app *fiber.App, method, path, authHeader string, body any) (int, []byte, http.Header) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out, resp.Header
}

func decodeMap(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m), string(raw))
	return m
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_TokenSirveEnRutasProtegidas(t *testing.T) {
	app, _ := newTestServer(t)

	status, raw, _ := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"operator": testOperator, "password": "dany123",
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	token, _ := decodeMap(t, raw)["token"].(string)
	require.NotEmpty(t, token)

	status, _, _ = call(t, app, http.MethodGet, "/api/reports/stats", "Bearer "+token, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestLogin_PasswordIncorrecto_Retorna401(t *testing.T) {
	app, _ := newTestServer(t)

	status, raw, _ := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"operator": testOperator, "password": "mala",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", decodeMap(t, raw)["code"])
}

func TestLogin_SinPassword_Retorna400(t *testing.T) {
	app, _ := newTestServer(t)

	status, raw, _ := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"operator": testOperator})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decodeMap(t, raw)["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomers_CrearYConsultar(t *testing.T) {
	app, _ := newTestServer(t)
	admin := tokenForRole(t, auth.RoleAdmin)

	status, raw, _ := call(t, app, http.MethodPost, "/api/customers", admin, map[string]string{
		"nombre": "Luis Pérez", "folio": "CLI-010", "telefono": "555-000-1111",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	assert.Equal(t, "CLI-010", decodeMap(t, raw)["folio"])

	status, raw, _ = call(t, app, http.MethodGet, "/api/customers/CLI-010", admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Luis Pérez", decodeMap(t, raw)["nombre"])

	status, raw, _ = call(t, app, http.MethodGet, "/api/customers?limit=2", admin, nil)
	require.Equal(t, http.StatusOK, status)
	list := decodeMap(t, raw)
	assert.Len(t, list["items"], 2)
	assert.EqualValues(t, 5, list["page"].(map[string]any)["total"])
}

func TestCustomers_FolioDuplicado_Retorna409(t *testing.T) {
	app, _ := newTestServer(t)
	admin := tokenForRole(t, auth.RoleAdmin)

	status, raw, _ := call(t, app, http.MethodPost, "/api/customers", admin, map[string]string{
		"nombre": "Otra Ana", "folio": "CLI-001",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", decodeMap(t, raw)["code"])
}

func TestCustomers_SinFolio_Retorna400(t *testing.T) {
	app, _ := newTestServer(t)

	status, raw, _ := call(t, app, http.MethodPost, "/api/customers", tokenForRole(t, auth.RoleVendedor), map[string]string{
		"nombre": "Sin Folio",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	body := decodeMap(t, raw)
	assert.Equal(t, "VALIDATION", body["code"])
	assert.Contains(t, body["message"], "folio")
}

func TestCustomers_FolioInexistente_Retorna404(t *testing.T) {
	app, _ := newTestServer(t)
	admin := tokenForRole(t, auth.RoleAdmin)

	status, _, _ := call(t, app, http.MethodGet, "/api/customers/NO-EXISTE", admin, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, raw, _ := call(t, app, http.MethodGet, "/api/customers/NO-EXISTE/debt", admin, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decodeMap(t, raw)["code"])
}

func TestCustomers_DeudaTrasVentaACredito(t *testing.T) {
	app, _ := newTestServer(t)
	seller := tokenForRole(t, auth.RoleVendedor)

	status, raw, _ := call(t, app, http.MethodPost, "/api/sales", seller, map[string]string{
		"folioCliente": "CLI-002", "tipoPago": "credit", "productos": "2:2",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))

	status, raw, _ = call(t, app, http.MethodGet, "/api/customers/CLI-002/debt", seller, nil)
	require.Equal(t, http.StatusOK, status)
	debt := decodeMap(t, raw)
	assert.Equal(t, "30", debt["deuda"])
	assert.Equal(t, true, debt["tieneDeuda"])
	assert.EqualValues(t, 1, debt["ventasPendientes"])

	status, raw, _ = call(t, app, http.MethodGet, "/api/customers/CLI-002/purchases", seller, nil)
	require.Equal(t, http.StatusOK, status)
	var purchases []map[string]any
	require.NoError(t, json.Unmarshal(raw, &purchases))
	assert.Len(t, purchases, 1)

	// La venta es de hoy: aún en periodo de gracia.
	status, raw, _ = call(t, app, http.MethodGet, "/api/customers/overdue", seller, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(raw))
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_VendedorNoPuedeCrear(t *testing.T) {
	app, _ := newTestServer(t)

	status, raw, _ := call(t, app, http.MethodPost, "/api/products", tokenForRole(t, auth.RoleVendedor), map[string]any{
		"nombre": "Sal", "precioCosto": "3", "precioVenta": "5", "cantidad": 10,
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", decodeMap(t, raw)["code"])
}

func TestProducts_AdminCreaYFusionaPorNombre(t *testing.T) {
	app, l := newTestServer(t)
	admin := tokenForRole(t, auth.RoleAdmin)

	status, raw, _ := call(t, app, http.MethodPost, "/api/products", admin, map[string]any{
		"nombre": "arroz integral", "precioCosto": "13", "precioVenta": "19", "cantidad": 5,
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	body := decodeMap(t, raw)
	assert.EqualValues(t, 1, body["id"])
	assert.EqualValues(t, 30, body["cantidad"])
	assert.Equal(t, "6", body["margenUnitario"])
	assert.Len(t, l.Products(), 8)
}

func TestProducts_FiltroStockBajo(t *testing.T) {
	app, _ := newTestServer(t)

	status, raw, _ := call(t, app, http.MethodGet, "/api/products?filter=low-stock", tokenForRole(t, auth.RoleVendedor), nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, decodeMap(t, raw)["total"])

	status, raw, _ = call(t, app, http.MethodGet, "/api/products?filter=out-of-stock", tokenForRole(t, auth.RoleVendedor), nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, decodeMap(t, raw)["total"])

	status, raw, _ = call(t, app, http.MethodGet, "/api/products?q=caf", tokenForRole(t, auth.RoleVendedor), nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, decodeMap(t, raw)["total"])
}

func TestProducts_FiltroDesconocido(t *testing.T) {
	app, _ := newTestServer(t)

	status, raw, _ := call(t, app, http.MethodGet, "/api/products?filter=stock-bajo", tokenForRole(t, auth.RoleVendedor), nil)
	require.Equal(t, http.StatusBadRequest, status)
	body := decodeMap(t, raw)
	assert.Equal(t, "VALIDATION", body["code"])
	assert.Contains(t, body["message"], "filter")
}

func TestProducts_IDInvalidoEInexistente(t *testing.T) {
	app, _ := newTestServer(t)
	seller := tokenForRole(t, auth.RoleVendedor)

	status, _, _ := call(t, app, http.MethodGet, "/api/products/abc", seller, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _, _ = call(t, app, http.MethodGet, "/api/products/99", seller, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestSales_ContadoSinCliente(t *testing.T) {
	app, l := newTestServer(t)

	status, raw, _ := call(t, app, http.MethodPost, "/api/sales", tokenForRole(t, auth.RoleVendedor), map[string]string{
		"tipoPago": "cash", "productos": "1:3",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	sale := decodeMap(t, raw)
	assert.Equal(t, "CASH", sale["folioCliente"])
	assert.Equal(t, "54", sale["total"])
	assert.Equal(t, "18", sale["ganancia"])
	assert.Equal(t, true, sale["pagada"])
	assert.Equal(t, 22, l.FindProductByID(1).Quantity)
}

func TestSales_StockInsuficiente_NoModificaNada(t *testing.T) {
	app, l := newTestServer(t)

	status, raw, _ := call(t, app, http.MethodPost, "/api/sales", tokenForRole(t, auth.RoleVendedor), map[string]string{
		"tipoPago": "cash", "productos": "1:2, 3:100",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", decodeMap(t, raw)["code"])
	assert.Equal(t, 25, l.FindProductByID(1).Quantity)
	assert.Empty(t, l.Sales())
}

func TestSales_ProductoInexistente_Retorna404(t *testing.T) {
	app, _ := newTestServer(t)

	status, raw, _ := call(t, app, http.MethodPost, "/api/sales", tokenForRole(t, auth.RoleVendedor), map[string]string{
		"tipoPago": "cash", "productos": "99:1",
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decodeMap(t, raw)["code"])
}

func TestSales_TipoPagoInvalido_Retorna400(t *testing.T) {
	app, _ := newTestServer(t)

	status, _, _ := call(t, app, http.MethodPost, "/api/sales", tokenForRole(t, auth.RoleVendedor), map[string]string{
		"tipoPago": "tarjeta", "productos": "1:1",
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSales_Cotizacion(t *testing.T) {
	app, l := newTestServer(t)

	status, raw, _ := call(t, app, http.MethodPost, "/api/sales/preview", tokenForRole(t, auth.RoleVendedor), map[string]string{
		"productos": "1:2, 6:1, 99:4",
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	preview := decodeMap(t, raw)
	assert.Equal(t, "81", preview["total"])
	assert.Len(t, preview["lineas"], 2)
	assert.Empty(t, l.Sales())
}

func TestSales_ListarObtenerYTicket(t *testing.T) {
	app, _ := newTestServer(t)
	seller := tokenForRole(t, auth.RoleVendedor)

	for _, items := range []string{"1:1", "2:1"} {
		status, raw, _ := call(t, app, http.MethodPost, "/api/sales", seller, map[string]string{
			"folioCliente": "CLI-001", "tipoPago": "cash", "productos": items,
		})
		require.Equal(t, http.StatusCreated, status, string(raw))
	}

	status, raw, _ := call(t, app, http.MethodGet, "/api/sales", seller, nil)
	require.Equal(t, http.StatusOK, status)
	items := decodeMap(t, raw)["items"].([]any)
	require.Len(t, items, 2)
	assert.EqualValues(t, 2, items[0].(map[string]any)["id"], "más reciente primero")

	status, _, _ = call(t, app, http.MethodGet, "/api/sales/1", seller, nil)
	assert.Equal(t, http.StatusOK, status)

	status, raw, headers := call(t, app, http.MethodGet, "/api/sales/1/ticket", seller, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/pdf", headers.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	status, _, _ = call(t, app, http.MethodGet, "/api/sales/42/ticket", seller, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes, actividad y exportación
// ──────────────────────────────────────────────────────────────────────────────

func TestReports_FinancieroYTopProduct(t *testing.T) {
	app, _ := newTestServer(t)
	seller := tokenForRole(t, auth.RoleVendedor)

	status, raw, _ := call(t, app, http.MethodGet, "/api/reports/top-product?period=today", seller, nil)
	assert.Equal(t, http.StatusNotFound, status, string(raw))

	status, _, _ = call(t, app, http.MethodPost, "/api/sales", seller, map[string]string{
		"tipoPago": "cash", "productos": "1:3, 6:1",
	})
	require.Equal(t, http.StatusCreated, status)

	status, raw, _ = call(t, app, http.MethodGet, "/api/reports/top-product?period=today", seller, nil)
	require.Equal(t, http.StatusOK, status)
	top := decodeMap(t, raw)
	assert.Equal(t, "Arroz Integral", top["nombre"])
	assert.EqualValues(t, 3, top["cantidad"])
	assert.Equal(t, "most", top["direccion"])

	status, raw, _ = call(t, app, http.MethodGet, "/api/reports/financial?period=today", seller, nil)
	require.Equal(t, http.StatusOK, status)
	fin := decodeMap(t, raw)
	assert.Equal(t, "99", fin["ventasTotales"])
	assert.Equal(t, "33", fin["gananciaTotal"])
	assert.Equal(t, "33.33", fin["margen"])

	status, raw, _ = call(t, app, http.MethodGet, "/api/reports/financial?period=decada", seller, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decodeMap(t, raw)["code"])
}

func TestActivity_ListarYMarcarLeida(t *testing.T) {
	app, _ := newTestServer(t)
	seller := tokenForRole(t, auth.RoleVendedor)

	status, raw, _ := call(t, app, http.MethodGet, "/api/activity", seller, nil)
	require.Equal(t, http.StatusOK, status)
	body := decodeMap(t, raw)
	assert.NotEmpty(t, body["items"])
	assert.NotZero(t, body["noLeidas"])

	status, _, _ = call(t, app, http.MethodPost, "/api/activity/read", seller, nil)
	require.Equal(t, http.StatusNoContent, status)

	_, raw, _ = call(t, app, http.MethodGet, "/api/activity", seller, nil)
	assert.EqualValues(t, 0, decodeMap(t, raw)["noLeidas"])
}

func TestSettings_Tema(t *testing.T) {
	app, l := newTestServer(t)
	admin := tokenForRole(t, auth.RoleAdmin)

	status, raw, _ := call(t, app, http.MethodPut, "/api/settings/theme", admin, map[string]string{"tema": "oscuro"})
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, "oscuro", l.Settings().Theme)

	status, _, _ = call(t, app, http.MethodPut, "/api/settings/theme", admin, map[string]string{"tema": "azul"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestExport_CSVYFormatoInvalido(t *testing.T) {
	app, _ := newTestServer(t)
	admin := tokenForRole(t, auth.RoleAdmin)

	status, raw, headers := call(t, app, http.MethodGet, "/api/export?format=csv", admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, headers.Get("Content-Type"), "text/csv")
	assert.Contains(t, string(raw), "Clientes")
	assert.Contains(t, string(raw), "CLI-001")

	status, _, _ = call(t, app, http.MethodGet, "/api/export?format=xml", admin, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _, _ = call(t, app, http.MethodGet, "/api/export", tokenForRole(t, auth.RoleVendedor), nil)
	assert.Equal(t, http.StatusForbidden, status)
}
