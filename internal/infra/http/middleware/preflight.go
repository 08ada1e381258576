package middleware

import "net/http"

// Preflight answers every OPTIONS request with 204 and no body, whatever the
// path. It has to sit in front of the router.
func Preflight(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
