package http

import (
	"log/slog"
	"os"

	"github.com/caredomi/homecare-backend-go/internal/handler/http/middleware"
	"github.com/caredomi/homecare-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth         AuthHandler
	Patient      PatientHandler
	Employee     EmployeeHandler
	CarePlan     CarePlanHandler
	Medication   MedicationHandler
	Tour         TourHandler
	Prescription PrescriptionHandler
}

func NewRouter(jwtService jwt.Service, frontendURL string, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "homecare-caredomi"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Post("/forgot-password", h.Auth.ForgotPassword)
			r.Post("/reset-password", h.Auth.ResetPassword)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", h.Auth.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", h.Auth.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", h.Auth.LoginWithGoogle)
				})
			})
		})

		// SSE stream authenticates via short-lived token in the query string,
		// outside the Verifier chain.
		r.Get("/tours/{id}/stream", h.Tour.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/patients", func(r chi.Router) {
				r.Get("/", h.Patient.ListPatients)
				r.Get("/{id}", h.Patient.GetPatient)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePlanner)
					r.Post("/", h.Patient.CreatePatient)
					r.Put("/{id}", h.Patient.UpdatePatient)
					r.Delete("/{id}", h.Patient.DeletePatient)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.ListEmployees)
				r.Get("/{id}", h.Employee.GetEmployee)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", h.Employee.CreateEmployee)
					r.Put("/{id}", h.Employee.UpdateEmployee)
					r.Delete("/{id}", h.Employee.DeleteEmployee)
				})
			})

			r.Route("/care-plans", func(r chi.Router) {
				r.Get("/", h.CarePlan.ListCarePlans)
				r.Get("/{id}", h.CarePlan.GetCarePlan)
				r.Get("/{id}/duration-summary", h.CarePlan.GetDurationSummary)
				r.Post("/{id}/session-check", h.CarePlan.CheckSessionDuration)

				r.Route("/{planID}/medications", func(r chi.Router) {
					r.Get("/", h.Medication.ListMedications)
					r.Get("/dose-schedule", h.Medication.GetDoseSchedule)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePlanner)
						r.Post("/", h.Medication.CreateMedication)
					})
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePlanner)
					r.Post("/", h.CarePlan.CreateCarePlan)
					r.Put("/{id}", h.CarePlan.UpdateCarePlan)
					r.Delete("/{id}", h.CarePlan.DeleteCarePlan)
				})
			})

			r.Route("/medications", func(r chi.Router) {
				r.Get("/{id}", h.Medication.GetMedication)
				r.Get("/{id}/schedule-rules", h.Medication.ListScheduleRules)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePlanner)
					r.Put("/{id}", h.Medication.UpdateMedication)
					r.Delete("/{id}", h.Medication.DeleteMedication)
					r.Post("/{id}/schedule-rules", h.Medication.CreateScheduleRule)
					r.Put("/{id}/schedule-rules/{ruleID}", h.Medication.UpdateScheduleRule)
					r.Delete("/{id}/schedule-rules/{ruleID}", h.Medication.DeleteScheduleRule)
				})
			})

			r.Route("/events", func(r chi.Router) {
				r.Get("/", h.Tour.ListEvents)
				r.Get("/{id}/proximity", h.Tour.GetEventProximity)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePlanner)
					r.Post("/", h.Tour.CreateEvent)
					r.Put("/{id}", h.Tour.UpdateEvent)
				})
			})

			r.Route("/tours", func(r chi.Router) {
				r.Get("/", h.Tour.ListTours)
				r.Get("/{id}", h.Tour.GetTour)
				r.Get("/{id}/timeline", h.Tour.GetTimeline)
				r.Get("/sse-token", h.Tour.GetSSEToken)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePlanner)
					r.Post("/", h.Tour.CreateTour)
					r.Put("/{id}", h.Tour.UpdateTour)
					r.Delete("/{id}", h.Tour.DeleteTour)
					r.Post("/{id}/events/{eventID}", h.Tour.StageAssign)
					r.Delete("/{id}/events/{eventID}", h.Tour.StageRemove)
					r.Patch("/{id}/events", h.Tour.StageTimeChange)
					r.Post("/{id}/cancel", h.Tour.CancelChanges)
					r.Post("/{id}/save", h.Tour.SaveChanges)
					r.Post("/{id}/validate", h.Tour.ValidateTour)
				})
			})

			r.Route("/prescriptions", func(r chi.Router) {
				r.Get("/", h.Prescription.ListPrescriptions)
				r.Get("/{id}", h.Prescription.GetPrescription)
				r.Get("/{id}/document", h.Prescription.DownloadDocument)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePlanner)
					r.Post("/", h.Prescription.CreatePrescription)
					r.Delete("/{id}", h.Prescription.DeletePrescription)
					r.Post("/{id}/document", h.Prescription.UploadDocument)
					r.Delete("/{id}/document", h.Prescription.RemoveDocument)
				})
			})
		})
	})
	return r
}
