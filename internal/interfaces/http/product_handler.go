package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cozinhapro/backoffice-api/internal/application/catalog"
	"github.com/cozinhapro/backoffice-api/internal/application/dto"
)

// ProductHandler catálogo de insumos (protegido).
type ProductHandler struct {
	uc *catalog.UseCase
}

func NewProductHandler(uc *catalog.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Cadastrar insumo
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Dados do insumo"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.uc.CreateProduct(c.Context(), catalog.ProductInput{
		Code:       in.Code,
		Name:       in.Name,
		Unit:       in.Unit,
		StockMin:   in.StockMin,
		SupplierID: in.SupplierID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProductResponseFrom(p))
}

// Update godoc
// @Summary      Atualizar cadastro do insumo (custo e estoque são do livro)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID do insumo"
// @Param        body  body  dto.UpdateProductRequest  true  "Dados cadastrais"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.uc.UpdateProduct(c.Context(), c.Params("id"), catalog.ProductInput{
		Code:       in.Code,
		Name:       in.Name,
		Unit:       in.Unit,
		StockMin:   in.StockMin,
		SupplierID: in.SupplierID,
	}, in.Active)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ProductResponseFrom(p))
}

// GetByID godoc
// @Summary      Obter insumo por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do insumo"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.uc.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ProductResponseFrom(p))
}

// List godoc
// @Summary      Listar insumos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "Só ativos"
// @Param        limit   query  int   false  "Limite"  default(20)
// @Param        offset  query  int   false  "Offset"  default(0)
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	products, err := h.uc.ListProducts(c.Context(), c.QueryBool("active", false), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ProductListFrom(products, page))
}
