package http

import (
	"fmt"
	"slices"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dany-shop/internal/application/dto"
	"github.com/jhoicas/dany-shop/internal/application/ledger"
	"github.com/jhoicas/dany-shop/internal/application/ports"
	"github.com/jhoicas/dany-shop/internal/domain/entity"
)

// SaleHandler maneja el registro de ventas, su consulta y el ticket PDF.
type SaleHandler struct {
	ledger *ledger.Ledger
	ticket ports.TicketPDFGenerator
}

// NewSaleHandler construye el handler. ticket puede ser nil (endpoint deshabilitado).
func NewSaleHandler(l *ledger.Ledger, ticket ports.TicketPDFGenerator) *SaleHandler {
	return &SaleHandler{ledger: l, ticket: ticket}
}

// Create godoc
// @Summary      Registrar venta
// @Description  productos en formato "id:cantidad, id:cantidad". Todas las líneas se validan antes de modificar el stock.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateSaleRequest  true  "folioCliente, tipoPago, productos"
// @Success      201   {object}  entity.Sale
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	sale, err := h.ledger.RecordSale(c.UserContext(), ledger.RecordSaleInput{
		CustomerFolio: in.CustomerFolio,
		PaymentType:   in.PaymentType,
		Items:         in.Items,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// Preview godoc
// @Summary      Cotizar venta
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.PreviewSaleRequest  true  "productos"
// @Success      200   {object}  dto.PreviewSaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales/preview [post]
func (h *SaleHandler) Preview(c *fiber.Ctx) error {
	var in dto.PreviewSaleRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	preview, err := h.ledger.PreviewSale(in.Items)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.PreviewSaleResponse{Lines: make([]dto.PreviewLineResponse, 0, len(preview.Lines)), Total: preview.Total}
	for _, ln := range preview.Lines {
		out.Lines = append(out.Lines, dto.PreviewLineResponse{
			ProductID: ln.ProductID,
			Name:      ln.Name,
			Quantity:  ln.Quantity,
			UnitPrice: ln.UnitPrice,
			Subtotal:  ln.Subtotal,
		})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ventas (más recientes primero)
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "máximo 100"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if ok, err := parseQuery(c, &page); !ok {
		return err
	}
	page.DefaultPage()

	sales := h.ledger.Sales()
	slices.Reverse(sales)
	from, to := page.Bounds(len(sales))
	return c.JSON(dto.SaleListResponse{
		Items: sales[from:to],
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(sales)},
	})
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  entity.Sale
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.findSale(c)
	if err != nil || sale == nil {
		return err
	}
	return c.JSON(sale)
}

// Ticket godoc
// @Summary      Ticket PDF de una venta
// @Tags         sales
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  int  true  "ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      501  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/ticket [get]
func (h *SaleHandler) Ticket(c *fiber.Ctx) error {
	if h.ticket == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_IMPLEMENTED", Message: "generador de tickets no configurado"})
	}
	sale, err := h.findSale(c)
	if err != nil || sale == nil {
		return err
	}
	var customer *entity.Customer
	if sale.CustomerFolio != entity.CashFolio {
		customer = h.ledger.FindCustomerByFolio(sale.CustomerFolio)
	}
	pdf, err := h.ticket.GenerateSaleTicket(c.UserContext(), sale, customer)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="ticket-%d.pdf"`, sale.ID))
	return c.Send(pdf)
}

// findSale resuelve :id. Si devuelve nil la respuesta de error ya se escribió.
func (h *SaleHandler) findSale(c *fiber.Ctx) (*entity.Sale, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	sale := h.ledger.FindSaleByID(id)
	if sale == nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
	}
	return sale, nil
}
