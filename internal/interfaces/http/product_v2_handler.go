package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
)

const apiVersion2 = "2.0"

// ProductV2Handler maneja las peticiones HTTP para Product en la versión 2:
// las respuestas van envueltas con metadatos (data, pagination, version) en
// el cuerpo en lugar de headers.
type ProductV2Handler struct {
	uc *usecase.ProductUseCase
}

// NewProductV2Handler construye el handler.
func NewProductV2Handler(uc *usecase.ProductUseCase) *ProductV2Handler {
	return &ProductV2Handler{uc: uc}
}

// List godoc
// @Summary      Listar productos con metadatos de paginación - V2
// @Tags         products
// @Produce      json
// @Param        page      query  int  false  "Página"            default(1)
// @Param        pageSize  query  int  false  "Tamaño de página"  default(5)
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v2/product [get]
func (h *ProductV2Handler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 5)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 5
	}

	items, total, err := h.uc.List(page, pageSize)
	if err != nil {
		return mapDomainError(c, err)
	}

	return c.JSON(fiber.Map{
		"data":       items,
		"pagination": dto.NewPagination(page, pageSize, total),
		"version":    apiVersion2,
	})
}

// GetByID godoc
// @Summary      Obtener producto por ID - V2
// @Tags         products
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v2/product/{id} [get]
func (h *ProductV2Handler) GetByID(c *fiber.Ctx) error {
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
	return c.JSON(fiber.Map{
		"data":      out,
		"version":   apiVersion2,
		"timestamp": time.Now().UTC(),
	})
}

// GetByCategory godoc
// @Summary      Listar productos por categoría - V2
// @Tags         products
// @Produce      json
// @Param        categoryId  path  int  true  "ID de la categoría"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v2/product/category/{categoryId} [get]
func (h *ProductV2Handler) GetByCategory(c *fiber.Ctx) error {
	categoryID, err := c.ParamsInt("categoryId")
	if err != nil || categoryID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "categoryId inválido"})
	}

	items, err := h.uc.GetByCategory(int64(categoryID))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"data":    items,
		"version": apiVersion2,
	})
}

// Create godoc
// @Summary      Crear producto - V2
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v2/product [post]
func (h *ProductV2Handler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	out, err := h.uc.Create(in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data":    out,
		"message": "producto creado",
		"version": apiVersion2,
	})
}

// Update godoc
// @Summary      Actualizar producto - V2
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos del producto"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v2/product/{id} [put]
func (h *ProductV2Handler) Update(c *fiber.Ctx) error {
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
	return c.JSON(fiber.Map{
		"data":    out,
		"message": "producto actualizado",
		"version": apiVersion2,
	})
}

// Patch godoc
// @Summary      Actualización parcial de producto (RFC 6902) - V2
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  int     true  "ID del producto"
// @Param        body  body  string  true  "Documento JSON Patch"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v2/product/{id} [patch]
func (h *ProductV2Handler) Patch(c *fiber.Ctx) error {
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
	return c.JSON(fiber.Map{
		"data":    out,
		"message": "producto actualizado",
		"version": apiVersion2,
	})
}

// Delete godoc
// @Summary      Borrar producto (borrado lógico) - V2
// @Tags         products
// @Param        id   path  int  true  "ID del producto"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v2/product/{id} [delete]
func (h *ProductV2Handler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}

	if err := h.uc.Delete(int64(id)); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
