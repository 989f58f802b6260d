package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC *usecase.CategoryUseCase
	ProductUC  *usecase.ProductUseCase
}

// Router registra las rutas de la API. Los productos van versionados
// (/api/v1, /api/v2); las categorías no tienen cambios entre versiones y
// viven en /api/category.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	categories := api.Group("/category")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	v1 := api.Group("/v1/product")
	productV1 := NewProductV1Handler(deps.ProductUC)
	v1.Get("/", productV1.List)
	v1.Post("/", productV1.Create)
	v1.Get("/category/:categoryId", productV1.GetByCategory)
	v1.Get("/:id", productV1.GetByID)
	v1.Put("/:id", productV1.Update)
	v1.Patch("/:id", productV1.Patch)
	v1.Delete("/:id", productV1.Delete)

	v2 := api.Group("/v2/product")
	productV2 := NewProductV2Handler(deps.ProductUC)
	v2.Get("/", productV2.List)
	v2.Post("/", productV2.Create)
	v2.Get("/category/:categoryId", productV2.GetByCategory)
	v2.Get("/:id", productV2.GetByID)
	v2.Put("/:id", productV2.Update)
	v2.Patch("/:id", productV2.Patch)
	v2.Delete("/:id", productV2.Delete)
}
