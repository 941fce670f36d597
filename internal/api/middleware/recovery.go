package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/soilscope/soilscope/internal/api/response"
)

// Recovery converts handler panics into 500 responses. The report
// pipeline runs its own panic recovery in the background task; this
// covers the synchronous request path.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				attrs := []any{
					"error", err,
					"stack", string(debug.Stack()),
					"method", r.Method,
					"path", r.URL.Path,
				}
				if userID, ok := GetUserID(r); ok {
					attrs = append(attrs, "user_id", userID)
				}
				slog.Error("panic recovered", attrs...)
				response.Error(w, http.StatusInternalServerError,
					"INTERNAL_ERROR", "An unexpected error occurred", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
