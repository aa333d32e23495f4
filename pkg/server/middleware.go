package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/raterudder/solarcheck/pkg/log"
)

// authMiddleware requires a valid bearer ID token when a verifier is
// configured.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = log.With(ctx, log.Ctx(ctx).With(slog.String("reqPath", r.URL.Path)))

		if s.verifier != nil {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Ctx(ctx).WarnContext(ctx, "missing auth header")
				writeJSONError(w, "missing auth token", http.StatusUnauthorized)
				return
			}
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				log.Ctx(ctx).WarnContext(ctx, "invalid auth header")
				writeJSONError(w, "invalid auth header", http.StatusBadRequest)
				return
			}
			idToken, err := s.verifier(ctx, token)
			if err != nil {
				log.Ctx(ctx).WarnContext(ctx, "auth token validation failed", slog.Any("error", err))
				writeJSONError(w, "invalid auth token", http.StatusUnauthorized)
				return
			}
			ctx = log.With(ctx, log.Ctx(ctx).With(slog.String("authSubject", idToken.Subject)))
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) revisionMiddleware(next http.Handler) http.Handler {
	if s.serverName == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", s.serverName)
		next.ServeHTTP(w, r)
	})
}
