package handler

import (
	"errors"
	"net/http"

	"stocktrack/internal/user"
	"stocktrack/internal/user/dto"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthHandler struct {
	uc     user.UseCase
	logger *zap.Logger
}

func NewAuthHandler(uc user.UseCase, log *zap.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: log}
}

func (h *AuthHandler) Register(g *echo.Group) {
	g.POST("/register", h.RegisterUser)
	g.POST("/login", h.Login)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *AuthHandler) RegisterUser(c echo.Context) error {
	var input dto.RegisterInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	created, err := h.uc.Register(c.Request().Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUsernameTaken):
			return c.JSON(http.StatusConflict, errorResponse{Error: "username already taken"})
		case errors.Is(err, user.ErrInvalidUser):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		default:
			h.logger.Error("register failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var input dto.LoginInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	token, err := h.uc.Login(c.Request().Context(), &input)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
		}
		h.logger.Error("login failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, map[string]string{"token": token})
}
