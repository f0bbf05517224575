package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/timebank/internal/server/models"
)

type ctxKey int

const userCtxKey ctxKey = 0

// withUser resolves the Authorization bearer credential and stores the
// resulting user in the request context. Requests without a valid
// credential are rejected with 401.
func (s *HTTPServer) withUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		credential := bearerToken(r)

		user, err := s.users.Resolve(r.Context(), credential)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), userCtxKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func userFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userCtxKey).(*models.User)
	return user
}
