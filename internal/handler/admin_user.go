package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/scholarbridge/scholarship-portal/internal/access"
	"github.com/scholarbridge/scholarship-portal/internal/repository"
)

// AdminUserHandler manages accounts and role grants.  Listing, deleting
// and role changes sit behind the admin gate; the role lookup endpoint
// is available to any signed-in user for their own email.
type AdminUserHandler struct {
	Users *repository.UserRepo
}

func NewAdminUserHandler(u *repository.UserRepo) *AdminUserHandler {
	return &AdminUserHandler{Users: u}
}

type adminUserResp struct {
	ID        uint64 `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	PhotoURL  string `json:"photoURL"`
	Role      string `json:"role"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
}

// List serves GET /users for the admin user-management table.
// Password hashes never leave the server.
func (h *AdminUserHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]adminUserResp, 0, len(users))
	for _, u := range users {
		out = append(out, adminUserResp{
			ID:        u.ID,
			Email:     u.Email,
			Name:      u.Name,
			PhotoURL:  u.PhotoURL,
			Role:      u.Role,
			IsActive:  u.IsActive,
			CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out})
}

// Delete serves DELETE /users/:id.  An admin cannot delete their own
// account through this endpoint.
func (h *AdminUserHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if uid, err := getUserID(c); err == nil && uid == id {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot delete own account"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Users.Delete(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if n == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deletedCount": n})
}

type updateRoleReq struct {
	Role string `json:"role"`
}

// UpdateRole serves PATCH /user/:email/role.  The new role must name
// one of the three known roles exactly; anything else is rejected
// rather than silently collapsed, because a grant is an explicit act.
func (h *AdminUserHandler) UpdateRole(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.Param("email")))
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email required"})
	}
	var req updateRoleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	switch access.Role(role) {
	case access.RoleStudent, access.RoleModerator, access.RoleAdmin:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Users.UpdateRoleByEmail(ctx, email, role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if n == 0 {
		// Either no such user or the role already matches; report the
		// distinction so the admin table can refresh correctly.
		if _, err := h.Users.RoleByEmail(ctx, email); err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"modifiedCount": n})
}

// Role serves GET /users/:email/role.  A signed-in user may look up
// their own role; the moderation override may look up anyone's.  An
// unknown email resolves to the least privileged role rather than an
// error, so a role probe can never mint privilege.
func (h *AdminUserHandler) Role(c echo.Context) error {
	caller, err := getEmail(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	email := strings.ToLower(strings.TrimSpace(c.Param("email")))
	if email != caller && !getRole(c).CanModerate() {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	raw, err := h.Users.RoleByEmail(ctx, email)
	if err != nil && err != sql.ErrNoRows {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	role := access.ParseRole(raw) // fail-closed: missing user reads as student
	return c.JSON(http.StatusOK, echo.Map{"role": strings.ToLower(string(role))})
}
