package middleware

import (
	"net/http"

	"github.com/RoketV/share-it-project/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SharerHeader carries the identity of the acting user. The surrounding
// gateway is trusted to have authenticated it.
const SharerHeader = "X-Sharer-User-Id"

// Sharer resolves the X-Sharer-User-Id header into the request context.
// Missing or malformed IDs never reach the handlers.
func Sharer(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(SharerHeader)
			if header == "" {
				utils.ResponseBadRequest(w, "Missing "+SharerHeader+" header", nil)
				return
			}

			userID, err := uuid.Parse(header)
			if err != nil {
				logger.Warn("Malformed sharer ID",
					zap.String("header", header),
					zap.String("path", r.URL.Path))
				utils.ResponseBadRequest(w, "Invalid "+SharerHeader+" header", nil)
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
