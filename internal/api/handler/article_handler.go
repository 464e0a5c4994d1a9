package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkpress/publishing-core/internal/api/middleware"
	"github.com/inkpress/publishing-core/internal/core/ports"
	"github.com/inkpress/publishing-core/internal/core/store"
)

// ArticleHandler serves article reads and the role-gated article mutations.
type ArticleHandler struct {
	store *store.Store
}

func NewArticleHandler(st *store.Store) *ArticleHandler {
	return &ArticleHandler{store: st}
}

type articleRequest struct {
	Title string   `json:"title" validate:"required"`
	Body  string   `json:"body" validate:"required"`
	Tags  []string `json:"tags"`
}

type createdResponse struct {
	ID string `json:"id"`
}

// List returns articles, optionally filtered by ?tag=, ?owner=, and ?q=.
func (h *ArticleHandler) List(c echo.Context) error {
	articles := h.store.ListArticles(ports.ListArticlesFilter{
		OwnerID: c.QueryParam("owner"),
		Tag:     c.QueryParam("tag"),
		Search:  c.QueryParam("q"),
	})
	return c.JSON(http.StatusOK, articles)
}

// Get returns one article by id.
func (h *ArticleHandler) Get(c echo.Context) error {
	a, err := h.store.GetArticle(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// Create publishes a new article as the acting user.
func (h *ArticleHandler) Create(c echo.Context) error {
	var req articleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.store.CreateArticle(middleware.ActorID(c), ports.ArticleInput{
		Title: req.Title,
		Body:  req.Body,
		Tags:  req.Tags,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: id})
}

// Update replaces an article's title, body, and tag set.
func (h *ArticleHandler) Update(c echo.Context) error {
	var req articleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.store.UpdateArticle(middleware.ActorID(c), c.Param("id"), ports.ArticleInput{
		Title: req.Title,
		Body:  req.Body,
		Tags:  req.Tags,
	}); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes an article with its full cascade.
func (h *ArticleHandler) Delete(c echo.Context) error {
	if err := h.store.DeleteArticle(middleware.ActorID(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// View bumps the article's view counter. No authentication required.
func (h *ArticleHandler) View(c echo.Context) error {
	if err := h.store.IncrementViews(c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Like bumps the article's like counter. No authentication required and no
// per-user record: repeated likes keep counting.
func (h *ArticleHandler) Like(c echo.Context) error {
	if err := h.store.ToggleLike(c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
