package httpserver

import (
	"net/http"
	"time"

	"evac-app-go/internal/config"
	"evac-app-go/internal/transport/httpserver/handler"
	authmw "evac-app-go/internal/transport/httpserver/middleware"
	"evac-app-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSAllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		auth := authmw.NewJWTAuth(cfg.Auth, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Post("/attendance/check-in", handlers.CheckIn)
			r.Post("/attendance/check-out", handlers.CheckOut)
			r.Post("/attendance/transfer", handlers.Transfer)

			r.Get("/individuals/{id}/status", handlers.IndividualStatus)
			r.Get("/individuals/{id}/history", handlers.IndividualHistory)

			r.Get("/centers", handlers.ListCenters)
			r.Get("/centers/{id}", handlers.GetCenter)
			r.Get("/centers/{id}/attendees", handlers.CurrentAttendees)

			// Batch movement and occupancy repair stay coordinator-only.
			r.Group(func(r chi.Router) {
				r.Use(authmw.RequireRole(authmw.RoleCoordinator))

				r.Post("/attendance/check-in/batch", handlers.CheckInBatch)
				r.Post("/attendance/check-out/batch", handlers.CheckOutBatch)
				r.Post("/attendance/transfer/batch", handlers.TransferBatch)

				r.Post("/centers/{id}/occupancy/recalculate", handlers.RecalculateOccupancy)
				r.Post("/occupancy/recalculate-all", handlers.RecalculateAllOccupancies)
			})
		})
	})

	return r
}
