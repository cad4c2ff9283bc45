package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locotranz/bus-reservation/internal/model"
	"github.com/locotranz/bus-reservation/internal/repository"
	"github.com/locotranz/bus-reservation/internal/utils"
)

// UserHandler exposes CRUD endpoints for user accounts. Passwords are
// optional; when supplied they are bcrypt-hashed before hitting the
// repository and never echoed back in responses.
type UserHandler struct {
	UserRepo   *repository.UserRepo
	BcryptCost int
}

// NewUserHandler constructs a UserHandler. The repository must be non-nil.
func NewUserHandler(userRepo *repository.UserRepo, bcryptCost int) *UserHandler {
	if userRepo == nil {
		panic("nil repository passed to NewUserHandler")
	}
	return &UserHandler{UserRepo: userRepo, BcryptCost: bcryptCost}
}

type userBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func userResponse(u *model.User) echo.Map {
	return echo.Map{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"phone": u.Phone,
		"role":  u.Role,
	}
}

// Create handles POST /v1/users.
func (h *UserHandler) Create(c echo.Context) error {
	var body userBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name == "" || body.Email == "" || body.Phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, email and phone are required"})
	}
	u := &model.User{Name: body.Name, Email: body.Email, Phone: body.Phone}
	if body.Password != "" {
		hash, err := utils.HashPassword(body.Password, h.BcryptCost)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to hash password"})
		}
		u.PasswordHash = hash
	}
	if err := h.UserRepo.Create(c.Request().Context(), u); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create user"})
	}
	return c.JSON(http.StatusCreated, userResponse(u))
}

// List handles GET /v1/users.
func (h *UserHandler) List(c echo.Context) error {
	skip, limit := parsePage(c)
	users, err := h.UserRepo.List(c.Request().Context(), skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load users"})
	}
	items := make([]echo.Map, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/users/:id.
func (h *UserHandler) Get(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	u, err := h.UserRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load user"})
	}
	return c.JSON(http.StatusOK, userResponse(u))
}

// Update handles PUT /v1/users/:id.
func (h *UserHandler) Update(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var body userBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name == "" || body.Email == "" || body.Phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, email and phone are required"})
	}
	u := &model.User{ID: id, Name: body.Name, Email: body.Email, Phone: body.Phone}
	if body.Password != "" {
		hash, err := utils.HashPassword(body.Password, h.BcryptCost)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to hash password"})
		}
		u.PasswordHash = hash
	}
	if err := h.UserRepo.Update(c.Request().Context(), u); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update user"})
	}
	updated, err := h.UserRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load user"})
	}
	return c.JSON(http.StatusOK, userResponse(updated))
}

// Delete handles DELETE /v1/users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if err := h.UserRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete user"})
	}
	return c.NoContent(http.StatusNoContent)
}
