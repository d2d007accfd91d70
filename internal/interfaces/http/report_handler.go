package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dany-shop/internal/application/dto"
	"github.com/jhoicas/dany-shop/internal/application/ledger"
)

// ReportHandler expone el tablero y los reportes de ventas.
type ReportHandler struct {
	ledger *ledger.Ledger
}

// NewReportHandler construye el handler.
func NewReportHandler(l *ledger.Ledger) *ReportHandler {
	return &ReportHandler{ledger: l}
}

// Stats godoc
// @Summary      Contadores del tablero
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.StatsResponse
// @Router       /api/reports/stats [get]
func (h *ReportHandler) Stats(c *fiber.Ctx) error {
	st := h.ledger.Stats()
	return c.JSON(dto.StatsResponse{
		ActiveCustomers: st.ActiveCustomers,
		ActiveProducts:  st.ActiveProducts,
		SalesCount:      st.SalesCount,
		OutstandingDebt: st.OutstandingDebt,
		SalesLastWeek:   st.SalesLastWeek,
		LowStockCount:   st.LowStockCount,
		OutOfStockCount: st.OutOfStockCount,
		TotalProfit:     st.TotalProfit,
	})
}

// TopProduct godoc
// @Summary      Producto más o menos vendido
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        period     query  string  false  "today | week | month | year | all"
// @Param        direction  query  string  false  "most | least"
// @Success      200  {object}  dto.TopProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/top-product [get]
func (h *ReportHandler) TopProduct(c *fiber.Ctx) error {
	q, ok, err := reportQuery(c)
	if !ok {
		return err
	}
	res := h.ledger.TopProduct(q.Period, q.Direction)
	if res == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no hay ventas en el periodo"})
	}
	return c.JSON(dto.TopProductResponse{
		Period:    q.Period,
		Direction: q.Direction,
		ProductID: res.ProductID,
		Name:      res.Name,
		Quantity:  res.Quantity,
		Product:   res.Product,
	})
}

// Financial godoc
// @Summary      Análisis financiero del periodo
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        period  query  string  false  "today | week | month | year | all"
// @Success      200  {object}  dto.FinancialResponse
// @Router       /api/reports/financial [get]
func (h *ReportHandler) Financial(c *fiber.Ctx) error {
	q, ok, err := reportQuery(c)
	if !ok {
		return err
	}
	fs := h.ledger.FinancialAnalysis(q.Period)
	return c.JSON(dto.FinancialResponse{
		Period:      q.Period,
		Investment:  fs.Investment,
		TotalSales:  fs.TotalSales,
		TotalCost:   fs.TotalCost,
		TotalProfit: fs.TotalProfit,
		Margin:      fs.Margin,
		SalesCount:  fs.SalesCount,
	})
}

func reportQuery(c *fiber.Ctx) (dto.ReportQuery, bool, error) {
	var q dto.ReportQuery
	if ok, err := parseQuery(c, &q); !ok {
		return q, false, err
	}
	if q.Period == "" {
		q.Period = ledger.PeriodAll
	}
	if q.Direction == "" {
		q.Direction = ledger.DirectionMost
	}
	return q, true, nil
}
