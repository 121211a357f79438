package response

import (
	"github.com/alimikegami/pharmacy-order-tracker/pkg/errs"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func WriteSuccessResponse(c echo.Context, statusCode int, data interface{}) error {
	return c.JSON(statusCode, data)
}

func WriteErrorResponse(c echo.Context, err error) error {
	statusCode := errs.GetErrorStatusCode(err)

	return c.JSON(statusCode, ErrorResponse{Error: err.Error()})
}
