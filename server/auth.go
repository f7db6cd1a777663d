package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"musicbridge/core/auth"
	"musicbridge/logger"
)

type contextKey string

const clientKey contextKey = "client"

// AuthMiddleware requires a bearer token signed with API_SECRET. Websocket
// clients, which cannot set headers from a browser, may pass ?token=.
// Without a configured secret every request passes.
func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.APISecret == "" {
			next.ServeHTTP(w, r)
			return
		}

		token := r.URL.Query().Get("token")
		if token == "" {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, errors.New("authorization header is required"))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeError(w, http.StatusUnauthorized, errors.New("invalid authorization header format"))
				return
			}
			token = parts[1]
		}

		claims, err := auth.ParseToken(s.cfg.APISecret, token)
		if err != nil {
			logger.Debug("rejected token", logger.ErrorField(err))
			writeError(w, http.StatusUnauthorized, errors.New("invalid token"))
			return
		}

		ctx := context.WithValue(r.Context(), clientKey, claims.Client)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientFromContext returns the authenticated client name, if any.
func ClientFromContext(ctx context.Context) (string, bool) {
	client, ok := ctx.Value(clientKey).(string)
	return client, ok
}
