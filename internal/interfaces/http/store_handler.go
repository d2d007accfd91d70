package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dany-shop/internal/application/dto"
	"github.com/jhoicas/dany-shop/internal/application/ledger"
)

// StoreHandler actividad reciente, preferencias y exportación de datos.
type StoreHandler struct {
	ledger *ledger.Ledger
}

// NewStoreHandler construye el handler.
func NewStoreHandler(l *ledger.Ledger) *StoreHandler {
	return &StoreHandler{ledger: l}
}

// Activity godoc
// @Summary      Actividad reciente
// @Tags         store
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ActivityResponse
// @Router       /api/activity [get]
func (h *StoreHandler) Activity(c *fiber.Ctx) error {
	return c.JSON(dto.ActivityResponse{
		Items:  h.ledger.Activity(),
		Unread: h.ledger.UnreadActivity(),
	})
}

// MarkRead godoc
// @Summary      Marcar actividad como leída
// @Tags         store
// @Security     BearerAuth
// @Success      204
// @Router       /api/activity/read [post]
func (h *StoreHandler) MarkRead(c *fiber.Ctx) error {
	h.ledger.MarkActivityRead(c.UserContext())
	return c.SendStatus(fiber.StatusNoContent)
}

// SetTheme godoc
// @Summary      Cambiar tema
// @Tags         store
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ThemeRequest  true  "tema: claro | oscuro"
// @Success      200  {object}  entity.Settings
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/settings/theme [put]
func (h *StoreHandler) SetTheme(c *fiber.Ctx) error {
	var in dto.ThemeRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	if err := h.ledger.SetTheme(c.UserContext(), in.Theme); err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.ledger.Settings())
}

// Export godoc
// @Summary      Exportar datos
// @Description  json: clientes, productos, ventas y métricas. csv: clientes y productos.
// @Tags         store
// @Produce      json
// @Produce      text/csv
// @Security     BearerAuth
// @Param        format  query  string  false  "json | csv"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/export [get]
func (h *StoreHandler) Export(c *fiber.Ctx) error {
	format := c.Query("format", ledger.ExportJSON)
	data, err := h.ledger.Export(format)
	if err != nil {
		return writeError(c, err)
	}
	contentType := fiber.MIMEApplicationJSONCharsetUTF8
	if format == ledger.ExportCSV {
		contentType = "text/csv; charset=utf-8"
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="dany-shop.%s"`, format))
	return c.Send(data)
}
