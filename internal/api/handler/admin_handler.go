package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkpress/publishing-core/internal/api/middleware"
	"github.com/inkpress/publishing-core/internal/core/domain"
	"github.com/inkpress/publishing-core/internal/core/ports"
	"github.com/inkpress/publishing-core/internal/core/store"
)

// AdminHandler serves user and role administration. Every operation is
// authorized inside the store; the handler only shapes requests and
// responses.
type AdminHandler struct {
	store *store.Store
}

func NewAdminHandler(st *store.Store) *AdminHandler {
	return &AdminHandler{store: st}
}

// ListUsers returns all users without credentials.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.ListUsers())
}

type roleAssignRequest struct {
	Role string `json:"role" validate:"required"`
}

// UpdateUserRole assigns a registry role to a user.
func (h *AdminHandler) UpdateUserRole(c echo.Context) error {
	var req roleAssignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.store.UpdateUserRole(middleware.ActorID(c), c.Param("id"), req.Role); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteUser removes a user with the full ownership cascade.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.store.DeleteUser(middleware.ActorID(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type profileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
	Bio   string `json:"bio"`
}

// UpdateProfile lets the acting user edit their own profile.
func (h *AdminHandler) UpdateProfile(c echo.Context) error {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.store.UpdateProfile(middleware.ActorID(c), ports.ProfileInput{
		Name:  req.Name,
		Email: req.Email,
		Bio:   req.Bio,
	}); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type roleResponse struct {
	Role        string              `json:"role"`
	Permissions []domain.Permission `json:"permissions"`
}

// ListRoles returns every defined role with its permission set.
func (h *AdminHandler) ListRoles(c echo.Context) error {
	reg := h.store.Registry()
	roles := reg.Roles()
	out := make([]roleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, roleResponse{Role: r, Permissions: reg.PermissionsFor(r)})
	}
	return c.JSON(http.StatusOK, out)
}

type roleDefineRequest struct {
	Role        string              `json:"role" validate:"required"`
	Permissions []domain.Permission `json:"permissions"`
}

type roleDefineResponse struct {
	Role      string `json:"role"`
	Redefined bool   `json:"redefined"`
}

// DefineRole upserts a role. The response flags redefinition of an existing
// role so operators notice overwrites.
func (h *AdminHandler) DefineRole(c echo.Context) error {
	var req roleDefineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	redefined, err := h.store.DefineRole(middleware.ActorID(c), req.Role, req.Permissions)
	if err != nil {
		return err
	}
	status := http.StatusCreated
	if redefined {
		status = http.StatusOK
	}
	return c.JSON(status, roleDefineResponse{Role: req.Role, Redefined: redefined})
}

// DeleteRole removes a role, reassigning its holders to the fallback role.
func (h *AdminHandler) DeleteRole(c echo.Context) error {
	if err := h.store.DeleteRole(middleware.ActorID(c), c.Param("role")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
