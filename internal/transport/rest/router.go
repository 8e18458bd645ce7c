package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/worktrack/backend/internal/auth"
	"github.com/worktrack/backend/internal/customer"
	"github.com/worktrack/backend/internal/material"
	"github.com/worktrack/backend/internal/order"
	"github.com/worktrack/backend/internal/transport/middleware"
	"github.com/worktrack/backend/internal/transport/swagger"
	"github.com/worktrack/backend/internal/user"
)

// RegisterAllRoutes wires the full HTTP surface. Everything under /api except
// /auth/login, /health and /ping requires a valid token; mutations are
// additionally guarded by role.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, allowedOrigins string, authHandler *auth.Handler, orderHandler *order.Handler, userHandler *user.Handler, customerHandler *customer.Handler, materialHandler *material.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)
	rbac := auth.NewRBACAuthorization(logger)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", authHandler.Login)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Route("/orders", func(or chi.Router) {
				or.Get("/", orderHandler.GetAllOrders)
				or.Get("/status/{status}", orderHandler.GetOrdersByStatus)
				or.Get("/{id}", orderHandler.GetOrder)
				or.Patch("/{id}/status", orderHandler.UpdateOrderStatus)

				or.Group(func(ar chi.Router) {
					ar.Use(rbac.RequireAdmin())
					ar.Post("/", orderHandler.CreateOrder)
					ar.Delete("/{id}", orderHandler.DeleteOrder)
				})

				or.Group(func(mr chi.Router) {
					mr.Use(rbac.RequireManager())
					mr.Put("/{id}", orderHandler.UpdateOrder)
				})
			})

			pr.Route("/users", func(ur chi.Router) {
				ur.Get("/operators", userHandler.GetOperators)
				ur.Get("/basic", userHandler.GetBasicUsers)

				ur.Group(func(ar chi.Router) {
					ar.Use(rbac.RequireAdmin())
					ar.Get("/", userHandler.GetAllUsers)
					ar.Get("/{id}", userHandler.GetUser)
					ar.Post("/", userHandler.CreateUser)
					ar.Put("/{id}", userHandler.UpdateUser)
					ar.Delete("/{id}", userHandler.DeleteUser)
				})
			})

			pr.Route("/customers", func(cr chi.Router) {
				cr.Get("/", customerHandler.GetAllCustomers)
				cr.Get("/{id}", customerHandler.GetCustomer)

				cr.Group(func(ar chi.Router) {
					ar.Use(rbac.RequireAdmin())
					ar.Post("/", customerHandler.CreateCustomer)
					ar.Put("/{id}", customerHandler.UpdateCustomer)
					ar.Delete("/{id}", customerHandler.DeleteCustomer)
				})
			})

			pr.Route("/materials", func(mr chi.Router) {
				mr.Get("/", materialHandler.GetAllMaterials)
				mr.Get("/{id}", materialHandler.GetMaterial)

				mr.Group(func(ar chi.Router) {
					ar.Use(rbac.RequireAdmin())
					ar.Post("/", materialHandler.CreateMaterial)
					ar.Put("/{id}", materialHandler.UpdateMaterial)
					ar.Delete("/{id}", materialHandler.DeleteMaterial)
				})
			})
		})
	})
}
