package httputil

import (
	"errors"

	"github.com/pocketledger/backend/internal/uuid"
)

var (
	ErrInvalidBody      = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrRequestBodyEmpty = errors.New("the request body must not be empty")
	ErrInvalidUUID      = uuid.ErrInvalid
	ErrInvalidQuery     = errors.New("the query string contains unparseable data. Please check the values")
	ErrValidation       = errors.New("the data in your request is invalid")
)
