package http

import (
	"context"
	"net/http"

	"github.com/mauriciosalazarsh/anuncia/internal/domain"
	"github.com/mauriciosalazarsh/anuncia/internal/service"
	"github.com/mauriciosalazarsh/anuncia/pkg/httpx"
)

type ctxKey int

const ctxKeyUser ctxKey = iota

// SessionMiddleware runs the full session validation chain against the
// session cookie and injects the authenticated user into the request
// context. Requests without a provably valid session get a uniform 401; the
// body never says which link of the chain broke.
func SessionMiddleware(auth *service.AuthService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			cookie, err := r.Cookie(sessionCookieName)
			if err != nil {
				writeUnauthenticated(w)
				return
			}

			user, err := auth.Validate(ctx, cookie.Value)
			if err != nil {
				writeUnauthenticated(w)
				return
			}

			ctx = context.WithValue(ctx, ctxKeyUser, user)
			ctx = httpx.WithUserID(ctx, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// userFromContext returns the user injected by SessionMiddleware. Handlers
// behind the middleware can rely on it being present.
func userFromContext(ctx context.Context) domain.User {
	user, _ := ctx.Value(ctxKeyUser).(domain.User)
	return user
}

func writeUnauthenticated(w http.ResponseWriter) {
	httpx.Error(w, http.StatusUnauthorized, "No autenticado.")
}
