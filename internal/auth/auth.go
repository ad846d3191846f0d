// Package auth resolves the identity of the caller.
//
// Tokens are verified by the reverse proxy in front of the backend, which
// passes the ID of the verified user in a request header.
package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"github.com/rs/zerolog/log"
)

// contextKey is the gin context key the user ID is stored at.
const contextKey = "pocketledger-user"

// ErrUnauthorized is returned when the request does not identify a user.
var ErrUnauthorized = models.ErrUnauthorized

// Authenticator resolves the ID of the user making a request.
type Authenticator interface {
	Authenticate(r *http.Request) (string, error)
}

// HeaderAuthenticator reads the user ID from a request header.
type HeaderAuthenticator struct {
	Header string
}

// Authenticate implements Authenticator.
func (a HeaderAuthenticator) Authenticate(r *http.Request) (string, error) {
	user := strings.TrimSpace(r.Header.Get(a.Header))
	if user == "" {
		return "", ErrUnauthorized
	}

	return user, nil
}

// Middleware aborts all requests that the Authenticator cannot resolve a
// user for with 401 Unauthorized.
func Middleware(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := a.Authenticate(c.Request)
		if err != nil {
			if !errors.Is(err, ErrUnauthorized) {
				log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
			}

			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.HTTPError{
				Error: ErrUnauthorized.Error(),
			})
			return
		}

		c.Set(contextKey, user)
		c.Next()
	}
}

// UserID returns the ID of the user set by Middleware. It is empty if
// the middleware did not run for the request.
func UserID(c *gin.Context) string {
	return c.GetString(contextKey)
}
