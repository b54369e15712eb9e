package wire

import (
	"github.com/RoketV/share-it-project/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// User administration does not need the sharer identity header.
func wireUser(r chi.Router, userHandler *adaptor.UserHandler) {
	r.Route("/users", func(r chi.Router) {
		// POST /users - Register a new user
		r.Post("/", userHandler.CreateUser)

		// GET /users - List all users
		r.Get("/", userHandler.GetUsers)

		// GET /users/{id} - Get a single user
		r.Get("/{id}", userHandler.GetUser)

		// PATCH /users/{id} - Partially update a user
		r.Patch("/{id}", userHandler.UpdateUser)

		// DELETE /users/{id} - Remove a user
		r.Delete("/{id}", userHandler.DeleteUser)
	})
}
