package controller

import (
	"net/http"
	"strconv"

	"github.com/alimikegami/pharmacy-order-tracker/internal/dto"
	"github.com/alimikegami/pharmacy-order-tracker/internal/service"
	"github.com/alimikegami/pharmacy-order-tracker/pkg/errs"
	"github.com/alimikegami/pharmacy-order-tracker/pkg/response"
	"github.com/alimikegami/pharmacy-order-tracker/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type OrderController struct {
	service service.OrderService
}

func CreateOrderController(e *echo.Group, service service.OrderService, isLoggedIn echo.MiddlewareFunc) {
	c := OrderController{
		service: service,
	}

	e.GET("/orders", c.GetOrders, isLoggedIn)
	e.GET("/orders/board", c.GetBoard, isLoggedIn)
	e.GET("/orders/:id", c.GetOrder, isLoggedIn)
	e.POST("/orders", c.AddOrder, isLoggedIn)
	e.PUT("/orders/:id", c.UpdateOrder, isLoggedIn)
	e.DELETE("/orders/:id", c.DeleteOrder, isLoggedIn)
	e.POST("/orders/:id/comments", c.AddComment, isLoggedIn)
}

func (c *OrderController) GetOrders(e echo.Context) error {
	filter := dto.OrderFilter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Error().Err(err).Str("component", "GetOrders").Msg("")
	}

	respPayload, err := c.service.GetOrders(e.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, http.StatusOK, respPayload)
}

func (c *OrderController) GetBoard(e echo.Context) error {
	respPayload, err := c.service.GetBoard(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, http.StatusOK, respPayload)
}

func (c *OrderController) GetOrder(e echo.Context) error {
	id, err := strconv.ParseInt(e.Param("id"), 10, 64)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrOrderNotFound)
	}

	respPayload, err := c.service.GetOrder(e.Request().Context(), id)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, http.StatusOK, respPayload)
}

func (c *OrderController) AddOrder(e echo.Context) error {
	userID, _ := utils.ExtractTokenUser(e)

	payload := dto.OrderRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "AddOrder").Msg("")
	}

	respPayload, err := c.service.AddOrder(e.Request().Context(), userID, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, http.StatusCreated, respPayload)
}

func (c *OrderController) UpdateOrder(e echo.Context) error {
	userID, _ := utils.ExtractTokenUser(e)

	id, err := strconv.ParseInt(e.Param("id"), 10, 64)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrOrderNotFound)
	}

	payload := dto.UpdateOrderRequest{}
	err = e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateOrder").Msg("")
	}

	respPayload, err := c.service.UpdateOrder(e.Request().Context(), userID, id, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, http.StatusOK, respPayload)
}

func (c *OrderController) DeleteOrder(e echo.Context) error {
	id, err := strconv.ParseInt(e.Param("id"), 10, 64)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrOrderNotFound)
	}

	if err := c.service.DeleteOrder(e.Request().Context(), id); err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, http.StatusOK, response.MessageResponse{Message: "Order deleted successfully"})
}

func (c *OrderController) AddComment(e echo.Context) error {
	userID, _ := utils.ExtractTokenUser(e)

	id, err := strconv.ParseInt(e.Param("id"), 10, 64)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrOrderNotFound)
	}

	payload := dto.CommentRequest{}
	err = e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "AddComment").Msg("")
	}

	respPayload, err := c.service.AddComment(e.Request().Context(), userID, id, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, http.StatusCreated, respPayload)
}
