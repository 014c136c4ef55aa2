package handlers

import (
	"github.com/arzan03/newsroom/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ArticleHandler serves the /articles endpoints.
type ArticleHandler struct {
	articles *services.ArticleService
}

// NewArticleHandler creates an ArticleHandler.
func NewArticleHandler(articles *services.ArticleService) *ArticleHandler {
	return &ArticleHandler{articles: articles}
}

// List serves GET /articles?page&limit&category&search.
func (h *ArticleHandler) List(c *fiber.Ctx) error {
	page, err := h.articles.List(c.UserContext(), services.ListParams{
		Page:     c.QueryInt("page", 0),
		Limit:    c.QueryInt("limit", 0),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(page)
}

// Get resolves an id or slug and counts the view.
func (h *ArticleHandler) Get(c *fiber.Ctx) error {
	article, err := h.articles.Get(c.UserContext(), c.Params("idOrSlug"))
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(article)
}

// Create handles POST /articles.
func (h *ArticleHandler) Create(c *fiber.Ctx) error {
	var request services.ArticleInput
	if err := c.BodyParser(&request); err != nil {
		return badBody(c)
	}

	article, err := h.articles.Create(c.UserContext(), request)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(article)
}

// Update handles PUT /articles/:id.
func (h *ArticleHandler) Update(c *fiber.Ctx) error {
	var request services.ArticlePatch
	if err := c.BodyParser(&request); err != nil {
		return badBody(c)
	}

	article, err := h.articles.Update(c.UserContext(), c.Params("id"), request)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(article)
}

// Delete handles DELETE /articles/:id.
func (h *ArticleHandler) Delete(c *fiber.Ctx) error {
	if err := h.articles.Delete(c.UserContext(), c.Params("id")); err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Article deleted"})
}
