package middleware

import (
	"strings"

	"github.com/alimikegami/pharmacy-order-tracker/pkg/errs"
	"github.com/alimikegami/pharmacy-order-tracker/pkg/response"
	"github.com/alimikegami/pharmacy-order-tracker/pkg/utils"
	"github.com/labstack/echo/v4"
)

// IsLoggedIn verifies the bearer token and puts the resolved user on the
// request context before any order handler runs.
func IsLoggedIn(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn)
			}

			userID, email, err := utils.ParseJWTToken(strings.TrimPrefix(header, "Bearer "), jwtSecret)
			if err != nil {
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn)
			}

			c.Set("userID", userID)
			c.Set("email", email)

			return next(c)
		}
	}
}
