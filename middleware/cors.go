package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

const allowedMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Устанавливаем CORS заголовки
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID, X-Requested-With, Accept, Origin")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length, Content-Disposition, X-Request-ID")

		// Обрабатываем preflight OPTIONS запросы
		if r.Method == http.MethodOptions {
			log.Debug().Str("path", r.URL.Path).Msg("handling OPTIONS preflight request")
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
