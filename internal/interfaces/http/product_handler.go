package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dany-shop/internal/application/dto"
	"github.com/jhoicas/dany-shop/internal/application/ledger"
	"github.com/jhoicas/dany-shop/internal/domain/entity"
)

// ProductHandler maneja las peticiones HTTP del inventario.
type ProductHandler struct {
	ledger *ledger.Ledger
}

// NewProductHandler construye el handler.
func NewProductHandler(l *ledger.Ledger) *ProductHandler {
	return &ProductHandler{ledger: l}
}

// Create godoc
// @Summary      Agregar producto o ajustar stock
// @Description  Si ya existe un producto activo con el mismo nombre se actualizan precios y se suma la cantidad (puede ser negativa).
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateProductRequest  true  "nombre, precioCosto, precioVenta, cantidad"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	p, err := h.ledger.AddProduct(c.UserContext(), ledger.AddProductInput{
		Name:      in.Name,
		CostPrice: in.CostPrice,
		SalePrice: in.SalePrice,
		Quantity:  in.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewProductResponse(*p))
}

// List godoc
// @Summary      Buscar y filtrar productos activos
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        q       query  string  false  "nombre o ID"
// @Param        filter  query  string  false  "all | low-stock | out-of-stock"
// @Success      200  {object}  dto.ProductListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var q dto.ProductQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	if q.Filter == "" {
		q.Filter = ledger.FilterAll
	}
	found := h.ledger.SearchProducts(q.Term)
	return c.JSON(toProductList(h.ledger.FilterProducts(found, q.Filter)))
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	p := h.ledger.FindProductByID(id)
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(dto.NewProductResponse(*p))
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products/low-stock [get]
func (h *ProductHandler) LowStock(c *fiber.Ctx) error {
	return c.JSON(toProductList(h.ledger.LowStockProducts()))
}

// OutOfStock godoc
// @Summary      Productos agotados
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products/out-of-stock [get]
func (h *ProductHandler) OutOfStock(c *fiber.Ctx) error {
	return c.JSON(toProductList(h.ledger.OutOfStockProducts()))
}

func toProductList(products []entity.Product) dto.ProductListResponse {
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, dto.NewProductResponse(p))
	}
	return dto.ProductListResponse{Items: items, Total: len(items)}
}
