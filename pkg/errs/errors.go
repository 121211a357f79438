package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusClient         = http.StatusBadRequest
	ErrStatusNotLoggedIn    = http.StatusUnauthorized
	ErrStatusUnauthorized   = http.StatusUnauthorized
	ErrStatusNotFound       = http.StatusNotFound
)

var (
	ErrInternalServer     = errors.New("Internal server error")
	ErrClient             = errors.New("Bad request")
	ErrNotLoggedIn        = errors.New("Invalid or missing token")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrMissingUserFields  = errors.New("Email, password, and name are required")
	ErrMissingCredentials = errors.New("Email and password are required")
	ErrEmailAlreadyUsed   = errors.New("User already exists")
	ErrOrderNotFound      = errors.New("Order not found")
	ErrMissingOrderFields = errors.New("Patient name and due date are required")
	ErrMissingComment     = errors.New("Comment is required")
)

var errorMap = map[error]int{
	ErrInternalServer:     ErrStatusInternalServer,
	ErrClient:             ErrStatusClient,
	ErrNotLoggedIn:        ErrStatusNotLoggedIn,
	ErrInvalidCredentials: ErrStatusUnauthorized,
	ErrMissingUserFields:  ErrStatusClient,
	ErrMissingCredentials: ErrStatusClient,
	ErrEmailAlreadyUsed:   ErrStatusClient,
	ErrOrderNotFound:      ErrStatusNotFound,
	ErrMissingOrderFields: ErrStatusClient,
	ErrMissingComment:     ErrStatusClient,
}

func GetErrorStatusCode(err error) int {
	errStatusCode, ok := errorMap[err]
	if !ok {
		errStatusCode = errorMap[ErrInternalServer]
	}
	return errStatusCode
}
