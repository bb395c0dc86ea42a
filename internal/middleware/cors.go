package middleware

import (
	"net/http"
	"strings"
)

// CORSOptions — разрешённые источники и заголовки.
type CORSOptions struct {
	AllowedOrigins []string // "*" — любой источник
	AllowedMethods []string
	AllowedHeaders []string
}

// DefaultCORS разрешает API для любого источника без cookie: токен передаётся в теле запроса.
var DefaultCORS = CORSOptions{
	AllowedOrigins: []string{"*"},
	AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	AllowedHeaders: []string{"Content-Type"},
}

func (o CORSOptions) allowOrigin(origin string) string {
	for _, a := range o.AllowedOrigins {
		if a == "*" {
			return "*"
		}
		if strings.EqualFold(a, origin) {
			return origin
		}
	}
	return ""
}

// WithCORS отвечает на preflight-запросы и проставляет Access-Control-* заголовки.
func WithCORS(o CORSOptions) func(http.Handler) http.Handler {
	methods := strings.Join(o.AllowedMethods, ", ")
	headers := strings.Join(o.AllowedHeaders, ", ")
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				h.ServeHTTP(w, r)
				return
			}
			allowed := o.allowOrigin(origin)
			if allowed == "" {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				h.ServeHTTP(w, r)
				return
			}
			w.Header().Set("Access-Control-Allow-Origin", allowed)
			if allowed != "*" {
				w.Header().Add("Vary", "Origin")
			}
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", "600")
				w.WriteHeader(http.StatusNoContent)
				return
			}
			h.ServeHTTP(w, r)
		})
	}
}
