package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/limbo/stride/internal/service"
)

const defaultFrontendOrigins = "http://localhost:3000,http://127.0.0.1:3000"

type Server struct {
	mx               *chi.Mux
	stepsService     service.StepsServiceI
	dashboardService service.DashboardServiceI
}

type ServicesList struct {
	StepsService     service.StepsServiceI
	DashboardService service.DashboardServiceI
}

// New builds a server with routes and middleware set up. frontendOrigins is a
// comma-separated list of origins allowed by CORS; empty falls back to the
// local dev front-end
func New(servicesOptions *ServicesList, frontendOrigins string) *Server {
	s := &Server{
		mx:               chi.NewMux(),
		stepsService:     servicesOptions.StepsService,
		dashboardService: servicesOptions.DashboardService,
	}
	if frontendOrigins == "" {
		frontendOrigins = defaultFrontendOrigins
	}
	s.mx.Use(cors.Handler(cors.Options{
		AllowedOrigins:   strings.Split(frontendOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)
	s.mx.Get("/", s.HealthCheck)
	s.mx.Post("/steps", s.AddSteps)
	s.mx.Get("/steps", s.GetSteps)
	s.mx.Get("/dashboard", s.GetDashboard)
	s.mx.Delete("/steps/{id}", s.DeleteStep)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mx
}

func (s *Server) Run(addr string) error {
	return http.ListenAndServe(addr, s.mx)
}
