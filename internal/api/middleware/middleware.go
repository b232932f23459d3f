package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mcoot/gamehub/internal/api/apierr"
	"github.com/mcoot/gamehub/internal/middleware"
	"github.com/mcoot/gamehub/internal/model"
)

type contextKey string

const userContextKey contextKey = "user"

// SessionSource reports the logged-in user
type SessionSource interface {
	CurrentUser() *model.User
}

// RequireSession rejects requests made while nobody is logged in
func RequireSession(sessions SessionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := sessions.CurrentUser()
			if user == nil {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser returns the session user captured by RequireSession
func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

// MustGetUser returns the session user or panics
func MustGetUser(ctx context.Context) *model.User {
	user := GetUser(ctx)
	if user == nil {
		panic("no user in context - session middleware not applied?")
	}
	return user
}

// Recovery creates panic recovery middleware for the API.
// The client gets the JSON internal error envelope and the connection is closed.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		w.Header().Set("Connection", "close")
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
