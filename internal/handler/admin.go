package handler

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-reservation/internal/model"
)

// AdminHandler serves account administration. Routes are registered
// behind RequireRole("ADMIN"); the handlers still never expose password
// hashes in responses.
type AdminHandler struct {
	Users UserStore
}

func NewAdminHandler(users UserStore) *AdminHandler {
	if users == nil {
		panic("nil store passed to NewAdminHandler")
	}
	return &AdminHandler{Users: users}
}

// ListUsers handles GET /v1/admin/users?page=&limit=&q=. The optional q
// filters by a substring of name or email.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = 50
	}
	q := c.QueryParam("q")

	users, total, err := h.Users.List(c.Request().Context(), page, limit, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list users failed"})
	}
	out := make([]userPart, 0, len(users))
	for _, u := range users {
		out = append(out, userPart{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role)})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"users": out,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

type updateRoleReq struct {
	Role string `json:"role"`
}

// UpdateRole handles POST /v1/admin/users/:id/role. The role must be one
// of the closed set USER/ADMIN; anything else is a 400.
func (h *AdminHandler) UpdateRole(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req updateRoleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if !model.ValidRole(role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role"})
	}

	if err := h.Users.UpdateRole(c.Request().Context(), id, model.Role(role)); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update role failed"})
	}
	u, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user": userPart{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role)},
	})
}
