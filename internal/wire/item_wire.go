package wire

import (
	"github.com/RoketV/share-it-project/internal/adaptor"
	"github.com/RoketV/share-it-project/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireItem(r chi.Router, itemHandler *adaptor.ItemHandler, log *zap.Logger) {
	r.Route("/items", func(r chi.Router) {
		r.Use(middleware.Sharer(log))

		// POST /items - List a new item for sharing
		r.Post("/", itemHandler.CreateItem)

		// GET /items - List the caller's items with last/next bookings
		r.Get("/", itemHandler.GetItems)

		// GET /items/search - Search available items by text
		r.Get("/search", itemHandler.SearchItems)

		// GET /items/{id} - Item detail with comments
		r.Get("/{id}", itemHandler.GetItem)

		// PATCH /items/{id} - Partially update an item (owner only)
		r.Patch("/{id}", itemHandler.UpdateItem)

		// DELETE /items/{id} - Remove an item (owner only)
		r.Delete("/{id}", itemHandler.DeleteItem)

		// POST /items/{id}/comment - Comment after a finished booking
		r.Post("/{id}/comment", itemHandler.AddComment)
	})
}
