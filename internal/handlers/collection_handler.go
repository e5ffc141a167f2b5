package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/onelab-dev/community-backend/internal/dto"
	"github.com/onelab-dev/community-backend/internal/guard"
	"github.com/onelab-dev/community-backend/internal/services"
)

type CollectionHandler struct {
	service *services.CollectionService
}

func NewCollectionHandler(service *services.CollectionService) *CollectionHandler {
	return &CollectionHandler{service: service}
}

func (h *CollectionHandler) ListCategories(c *fiber.Ctx) error {
	p, err := guard.Current(c)
	if err != nil {
		return unauthorized(c)
	}

	categories, err := h.service.ListCategories(p.ID)
	if err != nil {
		return respondError(c, "list categories", err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

func (h *CollectionHandler) CreateCategory(c *fiber.Ctx) error {
	p, err := guard.Current(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	category, err := h.service.CreateCategory(p.ID, req.Title)
	if err != nil {
		return respondError(c, "create category", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"category": category})
}

func (h *CollectionHandler) UpdateCategory(c *fiber.Ctx) error {
	p, err := guard.Current(c)
	if err != nil {
		return unauthorized(c)
	}
	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid category ID")
	}

	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	category, err := h.service.UpdateCategory(p.ID, categoryID, req.Title)
	if err != nil {
		return respondError(c, "update category", err)
	}
	return c.JSON(fiber.Map{"category": category})
}

func (h *CollectionHandler) DeleteCategory(c *fiber.Ctx) error {
	p, err := guard.Current(c)
	if err != nil {
		return unauthorized(c)
	}
	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid category ID")
	}

	if err := h.service.DeleteCategory(p.ID, categoryID); err != nil {
		return respondError(c, "delete category", err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

func (h *CollectionHandler) CreateItem(c *fiber.Ctx) error {
	p, err := guard.Current(c)
	if err != nil {
		return unauthorized(c)
	}
	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid category ID")
	}

	var req dto.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	item, err := h.service.CreateItem(p.ID, categoryID, &req)
	if err != nil {
		return respondError(c, "create item", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"item": item})
}

func (h *CollectionHandler) UpdateItem(c *fiber.Ctx) error {
	p, err := guard.Current(c)
	if err != nil {
		return unauthorized(c)
	}
	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid category ID")
	}
	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return badRequest(c, "Invalid item ID")
	}

	var req dto.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	item, err := h.service.UpdateItem(p.ID, categoryID, itemID, &req)
	if err != nil {
		return respondError(c, "update item", err)
	}
	return c.JSON(fiber.Map{"item": item})
}

func (h *CollectionHandler) DeleteItem(c *fiber.Ctx) error {
	p, err := guard.Current(c)
	if err != nil {
		return unauthorized(c)
	}
	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid category ID")
	}
	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return badRequest(c, "Invalid item ID")
	}

	if err := h.service.DeleteItem(p.ID, categoryID, itemID); err != nil {
		return respondError(c, "delete item", err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

func (h *CollectionHandler) ReorderItems(c *fiber.Ctx) error {
	p, err := guard.Current(c)
	if err != nil {
		return unauthorized(c)
	}
	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid category ID")
	}

	var req dto.ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.FromIndex == nil || req.ToIndex == nil {
		return badRequest(c, "fromIndex and toIndex are required")
	}

	if err := h.service.ReorderItems(p.ID, categoryID, *req.FromIndex, *req.ToIndex); err != nil {
		return respondError(c, "reorder items", err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
