package utils

import (
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

func CreateJWTToken(userID int64, email string, jwtSecretKey string) (string, error) {
	claims := jwt.MapClaims{}
	claims["authorized"] = true
	claims["userID"] = userID
	claims["email"] = email
	claims["exp"] = time.Now().Add(time.Hour * 24 * 7).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(jwtSecretKey))
}

func ParseJWTToken(tokenString string, jwtSecretKey string) (int64, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return 0, "", jwt.ErrSignatureInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", jwt.ErrSignatureInvalid
	}

	userID, ok := claims["userID"].(float64)
	if !ok {
		return 0, "", jwt.ErrSignatureInvalid
	}

	email, _ := claims["email"].(string)

	return int64(userID), email, nil
}

func ExtractTokenUser(c echo.Context) (int64, string) {
	userID, _ := c.Get("userID").(int64)
	email, _ := c.Get("email").(string)

	return userID, email
}
