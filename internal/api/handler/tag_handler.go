package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkpress/publishing-core/internal/api/middleware"
	"github.com/inkpress/publishing-core/internal/core/store"
)

// TagHandler serves the tag listing and the manage-tags-gated mutations.
type TagHandler struct {
	store *store.Store
}

func NewTagHandler(st *store.Store) *TagHandler {
	return &TagHandler{store: st}
}

type tagRequest struct {
	Name string `json:"name" validate:"required"`
}

// List returns all tags with their usage counts, sorted by name.
func (h *TagHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.ListTags())
}

// Create explicitly registers a tag with a zero usage count.
func (h *TagHandler) Create(c echo.Context) error {
	var req tagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.store.CreateTag(middleware.ActorID(c), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: id})
}

// Delete removes a tag and detaches it from every article.
func (h *TagHandler) Delete(c echo.Context) error {
	if err := h.store.DeleteTag(middleware.ActorID(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
