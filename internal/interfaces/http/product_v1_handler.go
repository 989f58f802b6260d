package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
)

// ProductV1Handler maneja las peticiones HTTP para Product en la versión 1:
// DTOs planos y metadatos de paginación en headers.
type ProductV1Handler struct {
	uc *usecase.ProductUseCase
}

// NewProductV1Handler construye el handler.
func NewProductV1Handler(uc *usecase.ProductUseCase) *ProductV1Handler {
	return &ProductV1Handler{uc: uc}
}

// List godoc
// @Summary      Listar productos - V1
// @Tags         products
// @Produce      json
// @Param        page      query  int  false  "Página"            default(1)
// @Param        pageSize  query  int  false  "Tamaño de página"  default(5)
// @Success      200  {array}   dto.ProductResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/product [get]
func (h *ProductV1Handler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 5)

	items, total, err := h.uc.List(page, pageSize)
	if err != nil {
		return mapDomainError(c, err)
	}

	c.Set("X-Total-Count", strconv.Itoa(total))
	c.Set("X-Page", strconv.Itoa(page))
	c.Set("X-Page-Size", strconv.Itoa(pageSize))
	return c.JSON(items)
}

// GetByID godoc
// @Summary      Obtener producto por ID - V1
// @Tags         products
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/product/{id} [get]
func (h *ProductV1Handler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}

	out, err := h.uc.GetByID(int64(id))
	if err != nil {
		return mapDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// GetByCategory godoc
// @Summary      Listar productos por categoría - V1
// @Tags         products
// @Produce      json
// @Param        categoryId  path  int  true  "ID de la categoría"
// @Success      200  {array}   dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/product/category/{categoryId} [get]
func (h *ProductV1Handler) GetByCategory(c *fiber.Ctx) error {
	categoryID, err := c.ParamsInt("categoryId")
	if err != nil || categoryID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "categoryId inválido"})
	}

	items, err := h.uc.GetByCategory(int64(categoryID))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(items)
}

// Create godoc
// @Summary      Crear producto - V1
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/product [post]
func (h *ProductV1Handler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	out, err := h.uc.Create(in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar producto - V1
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos del producto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/product/{id} [put]
func (h *ProductV1Handler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	out, err := h.uc.Update(int64(id), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// Patch godoc
// @Summary      Actualización parcial de producto (RFC 6902) - V1
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  int     true  "ID del producto"
// @Param        body  body  string  true  "Documento JSON Patch"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/product/{id} [patch]
func (h *ProductV1Handler) Patch(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}

	out, err := h.uc.Patch(int64(id), c.Body())
	if err != nil {
		return mapDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar producto (borrado lógico) - V1
// @Tags         products
// @Param        id   path  int  true  "ID del producto"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/product/{id} [delete]
func (h *ProductV1Handler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}

	if err := h.uc.Delete(int64(id)); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
