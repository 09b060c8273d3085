package middleware

import (
	"net/http"
	"strings"
)

// CORSMiddleware answers preflight requests and stamps the allow headers
// on matching origins. allowedOrigins is a comma separated list, or "*".
func CORSMiddleware(next http.Handler, allowedOrigins string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if allowed := resolveOrigin(origin, allowedOrigins); allowed != "" {
			w.Header().Set("Access-Control-Allow-Origin", allowed)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// resolveOrigin returns the value to echo back in Allow-Origin, or ""
// when the request origin is not in the allow list.
func resolveOrigin(origin, allowedOrigins string) string {
	if allowedOrigins == "*" {
		return "*"
	}
	for _, o := range strings.Split(allowedOrigins, ",") {
		if strings.TrimSpace(o) == origin {
			return origin
		}
	}
	return ""
}
