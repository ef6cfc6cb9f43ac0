package httpx

import (
	"net/http"
	"strings"
)

// RequireRole allows the request through only when the authenticated
// account's role is one of those listed.
func RequireRole(allowed ...string) Middleware {
	want := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		want[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := roleFromCtx(r.Context())
			if _, ok := want[role]; ok {
				next.ServeHTTP(w, r)
				return
			}
			writeBearerRoleError(w, allowed...)
		})
	}
}

// RFC 6750-style error response for an account whose role is not allowed.
func writeBearerRoleError(w http.ResponseWriter, allowed ...string) {
	w.Header().
		Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+strings.Join(allowed, " ")+`"`)
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte("insufficient_role"))
}
