package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var allowedMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodOptions,
}

// corsHeaders are sent on every response, preflight or not, with or without
// an Origin header.
var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, POST, PUT, DELETE, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type",
	"Content-Type":                 "application/json",
}

// CORS runs go-chi/cors for Origin handling and its Vary headers, then pins
// the fixed header set over whatever it wrote, so the values are the same
// with or without an Origin header. Preflights are passed on so Preflight
// can answer them.
func CORS() func(http.Handler) http.Handler {
	negotiate := cors.Handler(cors.Options{
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     allowedMethods,
		AllowedHeaders:     []string{"Content-Type"},
		OptionsPassthrough: true,
	})

	return func(next http.Handler) http.Handler {
		return negotiate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for k, v := range corsHeaders {
				h.Set(k, v)
			}
			next.ServeHTTP(w, r)
		}))
	}
}
