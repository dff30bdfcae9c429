package middleware

import (
	"net/http"
	"strings"

	"github.com/lavka-market/lavka-backend/api/responses"
	pkgerrors "github.com/lavka-market/lavka-backend/pkg/errors"
	"github.com/lavka-market/lavka-backend/pkg/logger"
	"github.com/lavka-market/lavka-backend/pkg/security"
)

const adminKeyHeader = "X-Admin-Key"

// AdminKey guards the admin surface with a static key compared in constant
// time. An empty configured key locks the surface entirely.
func AdminKey(apiKey string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin access is not configured"))
				return
			}

			presented := strings.TrimSpace(r.Header.Get(adminKeyHeader))
			if presented == "" || !security.ConstantTimeEquals(presented, apiKey) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid admin key"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
