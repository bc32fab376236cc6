package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"stockroom/internal/api/dto"
	"stockroom/internal/api/middleware"
	"stockroom/internal/api/services"
	"stockroom/internal/domain"
	"stockroom/internal/repository"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(db *sqlx.DB, rdb *redis.Client) *UserHandler {
	userRepo := repository.NewUserRepository(db)
	return &UserHandler{
		userService: services.NewUserService(userRepo, rdb),
	}
}

func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	userID, err := middleware.GetUserIDFromContext(c.Request().Context())
	if err != nil {
		return ErrUnauthorized(c)
	}

	user, err := h.userService.GetCurrentUser(c.Request().Context(), userID)
	if err != nil {
		return ErrNotFound(c, "user not found")
	}

	return c.JSON(http.StatusOK, dto.UserFromDomain(user))
}

type SetRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin manager user"`
}

// SetRole is admin only; managers can edit data but not grant roles.
func (h *UserHandler) SetRole(c echo.Context) error {
	role, err := middleware.GetRoleFromContext(c.Request().Context())
	if err != nil || role != domain.RoleAdmin {
		return ErrForbidden(c)
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ErrBadRequest(c, "invalid user ID")
	}

	var req SetRoleRequest
	if err := c.Bind(&req); err != nil {
		return ErrBadRequest(c, "invalid request")
	}
	if err := c.Validate(&req); err != nil {
		return ErrBadRequest(c, err.Error())
	}

	user, err := h.userService.SetRole(c.Request().Context(), userID, domain.Role(req.Role))
	if err != nil {
		if err == repository.ErrUserNotFound {
			return ErrNotFound(c, "user not found")
		}
		return ErrInternalServerError(c)
	}

	return c.JSON(http.StatusOK, dto.UserFromDomain(user))
}
