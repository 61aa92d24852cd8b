package handler

import (
	"go-inventory-catalog/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

// GetProducts returns one page of products, newest first
// Query params: page (default 1), limit (default 10)
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	page := c.QueryInt("page", service.DefaultPage)
	limit := c.QueryInt("limit", service.DefaultLimit)

	result, err := h.service.GetPage(c.UserContext(), page, limit)
	if err != nil {
		return respondError(c, err, "Server error while fetching products")
	}
	return c.JSON(result)
}

// GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "product")
	if err != nil {
		return respondError(c, err, "")
	}
	product, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Server error while fetching product")
	}
	return c.JSON(product)
}

// CreateProduct also creates the product's inventory record
// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	product, err := h.service.Create(c.UserContext(), &req, principal(c))
	if err != nil {
		return respondError(c, err, "Server error while creating product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// PUT /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "product")
	if err != nil {
		return respondError(c, err, "")
	}
	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	product, err := h.service.Update(c.UserContext(), id, &req, principal(c))
	if err != nil {
		return respondError(c, err, "Server error while updating product")
	}
	return c.JSON(product)
}

// DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "product")
	if err != nil {
		return respondError(c, err, "")
	}
	if err := h.service.Delete(c.UserContext(), id, principal(c)); err != nil {
		return respondError(c, err, "Server error while deleting product")
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}
