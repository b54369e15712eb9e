package wire

import (
	"github.com/RoketV/share-it-project/internal/adaptor"
	"github.com/RoketV/share-it-project/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireItemRequest(r chi.Router, requestHandler *adaptor.ItemRequestHandler, log *zap.Logger) {
	r.Route("/requests", func(r chi.Router) {
		r.Use(middleware.Sharer(log))

		// POST /requests - Ask for an item nobody has listed yet
		r.Post("/", requestHandler.CreateRequest)

		// GET /requests - The caller's own requests with answered items
		r.Get("/", requestHandler.GetOwnRequests)

		// GET /requests/all - Other users' requests, paged
		r.Get("/all", requestHandler.GetAllRequests)

		// GET /requests/{id} - Single request with answered items
		r.Get("/{id}", requestHandler.GetRequest)
	})
}
