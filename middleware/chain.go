package middleware

import "net/http"

// Chain wraps the whole router. Recover sits inside Logging so a panic is
// logged with the 500 it turned into.
func Chain(next http.Handler) http.Handler {
	h := Recover(next)
	h = Logging(h)
	h = CORS(h)
	return RequestID(h)
}
