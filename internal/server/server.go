package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/Animesh-Ghosh/parking-lot/internal/logging"
	"github.com/Animesh-Ghosh/parking-lot/internal/parking"
)

type Server struct {
	httpServer *http.Server
}

func NewRouter(serviceName string, handler *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(RecoveryMiddleware)
	r.Use(RequestIDMiddleware)
	r.Use(TracingMiddleware(serviceName))
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)

	r.Get("/health", handler.HealthCheck)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/parking-lot", func(r chi.Router) {
		r.Post("/", handler.CreateParkingLot)
		r.Post("/park", handler.ParkVehicle)
		r.Post("/leave", handler.LeaveSlot)
		r.Get("/status", handler.GetStatus)
		r.Get("/colours/{colour}/registrations", handler.RegistrationsByColour)
		r.Get("/colours/{colour}/slots", handler.SlotsByColour)
		r.Get("/find/{registration}", handler.FindByRegistration)
	})
	r.Post("/api/commands", handler.RunCommands)

	return r
}

func NewServer(port, serviceName string, parkingLot *parking.InstrumentedParkingLot, tracer trace.Tracer) *Server {
	handler := NewHandler(serviceName, parkingLot, tracer)

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      NewRouter(serviceName, handler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
	}
}

func (s *Server) Start() error {
	logging.Logger().Info("starting HTTP server", "addr", s.GetAddress())
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	logging.Logger().Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) GetAddress() string {
	return fmt.Sprintf("http://localhost%s", s.httpServer.Addr)
}
