package middleware

import "net/http"

// ServerName is sent in the Server header of every response.
const ServerName = "worldbench"

// ServerHeader sets the Server response header.
func ServerHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", ServerName)
		next.ServeHTTP(w, r)
	})
}
