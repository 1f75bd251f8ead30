package http

import (
	"log/slog"
	"os"

	"github.com/Laredoboynvl/timecardpro-sub002/internal/handler/http/middleware"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	jwtService jwt.Service,
	vacationHandler VacationHandler,
	attendanceHandler AttendanceHandler,
	calendarHandler CalendarHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timecardpro"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
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
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/vacation", func(r chi.Router) {
				r.Get("/balance", vacationHandler.GetMyBalance)
				r.Post("/cycles", vacationHandler.EnsureMyCycle)

				r.Route("/requests", func(r chi.Router) {
					r.Get("/my", vacationHandler.GetMyRequests)
					r.Post("/", vacationHandler.CreateRequest)
					r.Post("/{id}/cancel", vacationHandler.CancelRequest)

					// Approver only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireApprover)
						r.Get("/", vacationHandler.ListOfficeRequests)
						r.Post("/{id}/approve", vacationHandler.ApproveRequest)
						r.Post("/{id}/reject", vacationHandler.RejectRequest)
					})
				})
			})

			r.Route("/calendar", func(r chi.Router) {
				r.Get("/my", calendarHandler.GetMyMonth)
			})

			r.Get("/holidays", calendarHandler.ListHolidays)

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/types", attendanceHandler.ListTypes)

				// Approver only: the grid editor is a back-office surface
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireApprover)
					r.Get("/grid", attendanceHandler.GetGrid)
					r.Post("/gesture", attendanceHandler.ApplyGesture)
					r.Post("/fill-month", attendanceHandler.FillMonth)
					r.Post("/cells", attendanceHandler.MarkCell)
					r.Delete("/cells/{employeeID}/{date}", attendanceHandler.ClearCell)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequireApprover)
				r.Get("/attendance/export", reportHandler.ExportMonth)
			})
		})
	})
	return r
}
