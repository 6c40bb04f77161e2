package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Recover returns middleware that converts panics into 500 responses.
// In production the body carries a generic message; elsewhere it
// includes the panic value to speed up local debugging.
func Recover(logger *zap.Logger, production bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				logger.Error("Panic while handling request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("request_id", GetRequestID(r.Context())),
					zap.Any("panic", rec),
					zap.Stack("stack"))

				body := map[string]any{
					"success": false,
					"message": "Internal server error",
				}
				if !production {
					body["error"] = fmt.Sprintf("%v", rec)
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				if err := json.NewEncoder(w).Encode(body); err != nil {
					logger.Error("Failed to write panic response", zap.Error(err))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
