package http

import (
	"net/http"

	"github.com/MKhiriev/go-item-keeper/internal/app"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// APIPrefix is the path prefix of every route.
const APIPrefix = "/api/v1"

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, middleware.Recoverer)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}
	router.Use(middleware.Compress(5, "application/json"))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, errorResponse{Detail: app.MsgNotFound}, http.StatusNotFound)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, errorResponse{Detail: app.MsgMethodNotAllowed}, http.StatusMethodNotAllowed)
	})

	router.Route(APIPrefix, func(r chi.Router) {
		r.Get("/version", h.getServerVersion)

		r.Route("/login", func(r chi.Router) {
			r.Post("/access-token", h.login)
			r.With(h.auth).Post("/test-token", h.testToken)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/signup", h.signup)

			r.Group(func(r chi.Router) {
				r.Use(h.auth)

				r.Get("/", h.listUsers)
				r.Post("/", h.createUser)

				r.Get("/me", h.getMe)
				r.Patch("/me", h.updateMe)
				r.Delete("/me", h.deleteMe)
				r.Patch("/me/password", h.updateMyPassword)

				r.Get("/{id}", h.getUser)
				r.Patch("/{id}", h.updateUser)
				r.Delete("/{id}", h.deleteUser)
			})
		})

		r.Route("/items", func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/", h.listItems)
			r.Post("/", h.createItem)

			r.Get("/{id}", h.getItem)
			r.Patch("/{id}", h.updateItem)
			r.Delete("/{id}", h.deleteItem)
		})
	})

	return router
}
