package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkpress/publishing-core/internal/api/middleware"
	"github.com/inkpress/publishing-core/internal/core/store"
)

// CommentHandler serves comment reads and mutations under an article.
type CommentHandler struct {
	store *store.Store
}

func NewCommentHandler(st *store.Store) *CommentHandler {
	return &CommentHandler{store: st}
}

type commentRequest struct {
	Body string `json:"body" validate:"required"`
}

// ListByArticle returns an article's comments, oldest first.
func (h *CommentHandler) ListByArticle(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.ArticleComments(c.Param("id")))
}

// Create adds a comment under the article in the path.
func (h *CommentHandler) Create(c echo.Context) error {
	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.store.CreateComment(middleware.ActorID(c), c.Param("id"), req.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: id})
}

// Update replaces a comment's body, marking it edited.
func (h *CommentHandler) Update(c echo.Context) error {
	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.store.UpdateComment(middleware.ActorID(c), c.Param("commentID"), req.Body); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a comment.
func (h *CommentHandler) Delete(c echo.Context) error {
	if err := h.store.DeleteComment(middleware.ActorID(c), c.Param("commentID")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
