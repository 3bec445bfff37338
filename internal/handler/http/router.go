package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/smbgAlokk/BharatForce-sub002/internal/handler/http/middleware"
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	registryHandler RegistryHandler,
	mappingHandler MappingHandler,
	punchHandler PunchHandler,
	attendanceHandler AttendanceHandler,
	regularisationHandler RegularisationHandler,
	periodHandler PeriodHandler,
	env string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-engine"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			// Masters, admin only.
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/shifts", func(r chi.Router) {
					r.Get("/", registryHandler.ListShifts)
					r.Post("/", registryHandler.CreateShift)
					r.Get("/{id}", registryHandler.GetShift)
					r.Put("/{id}", registryHandler.UpdateShift)
					r.Delete("/{id}", registryHandler.DeleteShift)
				})

				r.Route("/weekly-off-patterns", func(r chi.Router) {
					r.Get("/", registryHandler.ListPatterns)
					r.Post("/", registryHandler.CreatePattern)
					r.Get("/{id}", registryHandler.GetPattern)
					r.Put("/{id}", registryHandler.UpdatePattern)
					r.Delete("/{id}", registryHandler.DeletePattern)
				})

				r.Route("/policies", func(r chi.Router) {
					r.Get("/", registryHandler.ListPolicies)
					r.Post("/", registryHandler.CreatePolicy)
					r.Get("/{id}", registryHandler.GetPolicy)
					r.Put("/{id}", registryHandler.UpdatePolicy)
					r.Delete("/{id}", registryHandler.DeletePolicy)
				})

				r.Route("/geofences", func(r chi.Router) {
					r.Get("/", registryHandler.ListGeoFences)
					r.Post("/", registryHandler.CreateGeoFence)
					r.Get("/{id}", registryHandler.GetGeoFence)
					r.Put("/{id}", registryHandler.UpdateGeoFence)
					r.Delete("/{id}", registryHandler.DeleteGeoFence)
				})

				r.Route("/mappings", func(r chi.Router) {
					r.Get("/", mappingHandler.List)
					r.Post("/", mappingHandler.Create)
					r.Get("/resolve", mappingHandler.Resolve)
					r.Get("/{id}", mappingHandler.Get)
					r.Put("/{id}", mappingHandler.Update)
					r.Delete("/{id}", mappingHandler.Delete)
				})

				r.Route("/periods", func(r chi.Router) {
					r.Post("/process", periodHandler.Process)
					r.Post("/lock", periodHandler.Lock)
					r.Get("/closures", periodHandler.ListClosures)
				})
			})

			r.Route("/punches", func(r chi.Router) {
				r.Post("/", punchHandler.Record)
				r.Get("/my", punchHandler.GetMyPunches)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", punchHandler.List)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/my", attendanceHandler.GetMyAttendance)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", attendanceHandler.List)
					r.Get("/{id}", attendanceHandler.Get)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/{id}", attendanceHandler.ManualEdit)
					r.Post("/compute", attendanceHandler.Compute)
				})
			})

			r.Route("/regularisations", func(r chi.Router) {
				r.Post("/", regularisationHandler.Create)
				r.Get("/my", regularisationHandler.GetMyRequests)
				r.Post("/{id}/submit", regularisationHandler.Submit)
				r.Get("/{id}", regularisationHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/pending", regularisationHandler.ListPending)
					r.Post("/{id}/manager-action", regularisationHandler.ManagerAction)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/{id}/hr-action", regularisationHandler.HRAction)
				})
			})
		})
	})
	return r
}
