package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dany-shop/internal/application/dto"
	"github.com/jhoicas/dany-shop/internal/application/ledger"
	"github.com/jhoicas/dany-shop/internal/domain/entity"
)

// CustomerHandler maneja las peticiones HTTP de clientes y crédito.
type CustomerHandler struct {
	ledger *ledger.Ledger
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(l *ledger.Ledger) *CustomerHandler {
	return &CustomerHandler{ledger: l}
}

// Create godoc
// @Summary      Registrar cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateCustomerRequest  true  "nombre, folio, telefono, email"
// @Success      201   {object}  entity.Customer
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	customer, err := h.ledger.AddCustomer(c.UserContext(), ledger.AddCustomerInput{
		Name:  in.Name,
		Folio: in.Folio,
		Phone: in.Phone,
		Email: in.Email,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// List godoc
// @Summary      Listar clientes activos
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "máximo 100"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.CustomerListResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if ok, err := parseQuery(c, &page); !ok {
		return err
	}
	page.DefaultPage()

	active := make([]entity.Customer, 0)
	for _, cu := range h.ledger.Customers() {
		if cu.Active {
			active = append(active, cu)
		}
	}
	from, to := page.Bounds(len(active))
	return c.JSON(dto.CustomerListResponse{
		Items: active[from:to],
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(active)},
	})
}

// GetByFolio godoc
// @Summary      Obtener cliente por folio
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        folio  path  string  true  "Folio"
// @Success      200  {object}  entity.Customer
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{folio} [get]
func (h *CustomerHandler) GetByFolio(c *fiber.Ctx) error {
	customer := h.ledger.FindCustomerByFolio(c.Params("folio"))
	if customer == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
	}
	return c.JSON(customer)
}

// Debt godoc
// @Summary      Consultar deuda de un cliente
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        folio  path  string  true  "Folio"
// @Success      200  {object}  dto.DebtResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{folio}/debt [get]
func (h *CustomerHandler) Debt(c *fiber.Ctx) error {
	st, err := h.ledger.DebtByFolio(c.Params("folio"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DebtResponse{
		Customer:     st.Customer,
		Debt:         st.Debt,
		PendingSales: st.PendingSales,
		HasDebt:      st.HasDebt(),
	})
}

// Purchases godoc
// @Summary      Historial de compras de un folio
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        folio  path  string  true  "Folio"
// @Success      200  {array}  entity.Sale
// @Router       /api/customers/{folio}/purchases [get]
func (h *CustomerHandler) Purchases(c *fiber.Ctx) error {
	return c.JSON(h.ledger.PurchaseHistory(c.Params("folio")))
}

// Overdue godoc
// @Summary      Clientes con crédito vencido
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.OverdueCustomerResponse
// @Router       /api/customers/overdue [get]
func (h *CustomerHandler) Overdue(c *fiber.Ctx) error {
	list := h.ledger.CustomersOverdue()
	out := make([]dto.OverdueCustomerResponse, 0, len(list))
	for _, cd := range list {
		out = append(out, dto.OverdueCustomerResponse{Customer: cd.Customer, Debt: cd.Debt, DaysOverdue: cd.DaysOverdue})
	}
	return c.JSON(out)
}

// Credit godoc
// @Summary      Clientes con crédito disponible
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  entity.Customer
// @Router       /api/customers/credit [get]
func (h *CustomerHandler) Credit(c *fiber.Ctx) error {
	return c.JSON(h.ledger.CustomersWithAvailableCredit())
}
