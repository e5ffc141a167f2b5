package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/onelab-dev/community-backend/internal/dto"
	"github.com/onelab-dev/community-backend/internal/guard"
	"github.com/onelab-dev/community-backend/internal/services"
)

const (
	defaultAdminPageSize  = 20
	defaultPublicPageSize = 12
)

type NewsletterHandler struct {
	service *services.NewsletterService
}

func NewNewsletterHandler(service *services.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{service: service}
}

// List returns all newsletters, drafts included. Admin only.
func (h *NewsletterHandler) List(c *fiber.Ctx) error {
	page, limit := paging(c, defaultAdminPageSize)

	result, err := h.service.List(page, limit)
	if err != nil {
		return respondError(c, "list newsletters", err)
	}
	return c.JSON(result)
}

func (h *NewsletterHandler) ListPublished(c *fiber.Ctx) error {
	page, limit := paging(c, defaultPublicPageSize)

	result, err := h.service.ListPublished(page, limit)
	if err != nil {
		return respondError(c, "list published newsletters", err)
	}
	return c.JSON(result)
}

func (h *NewsletterHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid newsletter ID")
	}

	newsletter, err := h.service.Get(id)
	if err != nil {
		return respondError(c, "get newsletter", err)
	}
	return c.JSON(newsletter)
}

// GetPublished serves the public detail page and counts the view.
func (h *NewsletterHandler) GetPublished(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid newsletter ID")
	}

	newsletter, err := h.service.GetPublished(id)
	if err != nil {
		return respondError(c, "get published newsletter", err)
	}
	return c.JSON(newsletter)
}

func (h *NewsletterHandler) Create(c *fiber.Ctx) error {
	p, err := guard.Current(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateNewsletterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	newsletter, err := h.service.Create(p.ID, &req)
	if err != nil {
		return respondError(c, "create newsletter", err)
	}
	return c.Status(fiber.StatusCreated).JSON(newsletter)
}

func (h *NewsletterHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid newsletter ID")
	}

	var req dto.UpdateNewsletterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	newsletter, err := h.service.Update(id, &req)
	if err != nil {
		return respondError(c, "update newsletter", err)
	}
	return c.JSON(newsletter)
}

func (h *NewsletterHandler) TogglePublish(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid newsletter ID")
	}

	newsletter, err := h.service.TogglePublish(id)
	if err != nil {
		return respondError(c, "toggle newsletter publish", err)
	}
	return c.JSON(newsletter)
}

func (h *NewsletterHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid newsletter ID")
	}

	if err := h.service.Delete(id); err != nil {
		return respondError(c, "delete newsletter", err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// paging reads page/limit query params, falling back to sane defaults
// on missing or malformed values.
func paging(c *fiber.Ctx, defaultLimit int) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}
