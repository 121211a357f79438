package controller

import (
	"net/http"

	"github.com/alimikegami/pharmacy-order-tracker/internal/dto"
	"github.com/alimikegami/pharmacy-order-tracker/internal/service"
	"github.com/alimikegami/pharmacy-order-tracker/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type UserController struct {
	service service.UserService
}

func CreateUserController(e *echo.Group, service service.UserService) {
	uc := UserController{
		service: service,
	}
	e.POST("/auth/register", uc.Register)
	e.POST("/auth/login", uc.Login)
}

func (c *UserController) Register(e echo.Context) error {
	payload := dto.RegisterRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "Register").Msg("")
	}

	respPayload, err := c.service.Register(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, http.StatusCreated, respPayload)
}

func (c *UserController) Login(e echo.Context) error {
	payload := dto.LoginRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "Login").Msg("")
	}

	respPayload, err := c.service.Login(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, http.StatusOK, respPayload)
}
