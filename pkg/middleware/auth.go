package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"docportal/pkg/auth"
	"docportal/pkg/logger"
	"docportal/pkg/model"
)

type emailKey struct{}

// RoleResolver looks up the stored role for a verified email. Satisfied by
// the users repository.
type RoleResolver interface {
	RoleByEmail(ctx context.Context, email string) (string, error)
}

// Guard verifies bearer credentials and, where required, resolves the
// caller's role. It composes as a prefix check and never mutates state.
type Guard struct {
	tokens *auth.TokenManager
	roles  RoleResolver
	log    *logger.Logger
}

func NewGuard(tokens *auth.TokenManager, roles RoleResolver, log *logger.Logger) *Guard {
	return &Guard{
		tokens: tokens,
		roles:  roles,
		log:    log,
	}
}

// RequireAuth rejects requests without a valid bearer token: missing
// credential is 401, failed verification is 403. On success the verified
// email is stored in the request context.
func (g *Guard) RequireAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		token := bearerToken(r)
		if token == "" {
			writeDenied(w, http.StatusUnauthorized, "unauthorized access")
			return
		}

		email, err := g.tokens.Verify(token)
		if err != nil {
			g.log.Warn("Token verification failed",
				"path", r.URL.Path,
				"error", err,
			)
			writeDenied(w, http.StatusForbidden, "forbidden access")
			return
		}

		ctx := context.WithValue(r.Context(), emailKey{}, email)
		next(w, r.WithContext(ctx), ps)
	}
}

// RequireAdmin verifies the credential, then requires the stored user's role
// to be Admin. It applies RequireAuth itself; do not double-wrap.
func (g *Guard) RequireAdmin(next httprouter.Handle) httprouter.Handle {
	return g.RequireAuth(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		email := VerifiedEmail(r.Context())

		role, err := g.roles.RoleByEmail(r.Context(), email)
		if err != nil {
			g.log.Error("Role lookup failed", "email", email, "error", err)
			writeDenied(w, http.StatusForbidden, "forbidden access")
			return
		}
		if role != model.RoleAdmin {
			writeDenied(w, http.StatusForbidden, "forbidden access")
			return
		}

		next(w, r, ps)
	})
}

// VerifiedEmail returns the email placed in the context by RequireAuth, or
// empty when the request did not pass the guard.
func VerifiedEmail(ctx context.Context) string {
	if email, ok := ctx.Value(emailKey{}).(string); ok {
		return email
	}
	return ""
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

func writeDenied(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}
