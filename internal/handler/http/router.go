package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/user"
	"github.com/wfmlabs/workforce-backend-go/internal/handler/http/middleware"
	"github.com/wfmlabs/workforce-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	punchHandler PunchHandler,
	shiftHandler ShiftHandler,
	timesheetHandler TimesheetHandler,
	notificationHandler NotificationHandler,
	employeeHandler EmployeeHandler,
	locationHandler LocationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workforce-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/punches", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionPunchCreate)).
					Post("/", punchHandler.Record)
				r.Get("/", punchHandler.List)
			})

			r.Route("/shifts", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionShiftView)).
					Get("/", shiftHandler.List)

				// Shift planning is a manager concern
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionShiftManage))
					r.Post("/", shiftHandler.Create)
					r.Put("/{id}", shiftHandler.Update)
					r.Delete("/{id}", shiftHandler.Delete)
					r.Post("/{id}/publish", shiftHandler.Publish)
				})

				r.With(middleware.RequirePermission(user.PermissionShiftView)).
					Get("/{id}", shiftHandler.Get)
			})

			r.Route("/timesheets", func(r chi.Router) {
				r.Get("/", timesheetHandler.List)
				r.With(middleware.RequirePermission(user.PermissionTimesheetExport)).
					Get("/export", timesheetHandler.Export)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionTimesheetGenerate))
					r.Post("/generate", timesheetHandler.Generate)
					r.Post("/generate/bulk", timesheetHandler.GenerateBulk)
					r.Post("/generate/period", timesheetHandler.GenerateForPeriod)
				})

				r.Get("/{id}", timesheetHandler.Get)
				r.With(middleware.RequirePermission(user.PermissionTimesheetApprove)).
					Post("/{id}/approve", timesheetHandler.Approve)
				r.With(middleware.RequirePermission(user.PermissionTimesheetLock)).
					Post("/{id}/lock", timesheetHandler.Lock)
				r.With(middleware.RequireManager).
					Patch("/{id}/notes", timesheetHandler.UpdateNotes)
			})

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequireManager).
					Get("/", employeeHandler.List)
				r.With(middleware.RequireOwner).
					Post("/", employeeHandler.Create)
			})

			r.Route("/locations", func(r chi.Router) {
				r.With(middleware.RequireManager).
					Get("/", locationHandler.List)
				r.With(middleware.RequireOwner).
					Post("/", locationHandler.Create)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Patch("/{id}/read", notificationHandler.MarkAsRead)
				r.Patch("/read-all", notificationHandler.MarkAllAsRead)
			})
		})
	})
	return r
}
