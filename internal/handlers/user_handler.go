package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/uideverse/hub/backend/internal/models"
	"github.com/uideverse/hub/backend/internal/repositories"
	"gorm.io/gorm"
)

// UserHandler handles profile and user administration requests
type UserHandler struct {
	userRepository  repositories.UserRepository
	badgeRepository repositories.BadgeRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, badgeRepo repositories.BadgeRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo, badgeRepository: badgeRepo}
}

// RegisterUserRoutes registers profile routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/me", h.GetProfile)
	g.PUT("/me", h.UpdateProfile)
	g.GET("/me/badges", h.GetBadges)
}

// GetProfile returns the caller's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	return c.JSON(http.StatusOK, currentUser(c))
}

// UpdateProfile updates the caller's display name and photo
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user := currentUser(c)

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.PhotoURL != "" {
		user.PhotoURL = req.PhotoURL
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, user)
}

// GetBadges returns the caller's unlocked badges
func (h *UserHandler) GetBadges(c echo.Context) error {
	user := currentUser(c)

	badges, err := h.badgeRepository.GetBadgesByUserID(c.Request().Context(), user.FirebaseUID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if badges == nil {
		badges = []models.Badge{}
	}
	return c.JSON(http.StatusOK, badges)
}

// GetUsers lists every registered user. Admin only.
func (h *UserHandler) GetUsers(c echo.Context) error {
	users, err := h.userRepository.GetUsers()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateRole changes a user's role. Superadmin only; a superadmin cannot
// demote themselves, so the platform always keeps at least one.
func (h *UserHandler) UpdateRole(c echo.Context) error {
	caller := currentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	var req models.UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	target, err := h.userRepository.GetUserByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if target.ID == caller.ID && req.Role != models.RoleSuperadmin {
		return echo.NewHTTPError(http.StatusBadRequest, "You cannot demote yourself")
	}

	if err := h.userRepository.UpdateRole(target.ID, req.Role); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	target.Role = req.Role
	return c.JSON(http.StatusOK, target)
}
