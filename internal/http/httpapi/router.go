package httpapi

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/rhrony1513/CharityPulse-Backend/internal/http/handlers"
	"github.com/rhrony1513/CharityPulse-Backend/internal/infra"
	"github.com/rhrony1513/CharityPulse-Backend/internal/middleware"
)

// Options carries the router's non-handler collaborators.
type Options struct {
	Logger      zerolog.Logger
	Config      *infra.Config
	CountryByIP middleware.CountryLookup
}

// NewRouter assembles the full HTTP surface: the /api JSON routes, the
// upload file server and the SPA fallback.
func NewRouter(app *handlers.App, opts Options) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		chimw.RealIP,
		middleware.RequestID,
		middleware.Logger(opts.Logger, opts.CountryByIP),
		chimw.Recoverer,
		middleware.CORS(opts.Config.CORSOrigin),
		middleware.Sessions(app.Sessions),
	)

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthz", app.Health)
		r.Post("/register", app.Register)
		r.Post("/login", app.Login)

		r.Get("/donations", app.DonationsList)
		r.Get("/donations/{id}", app.DonationsDetail)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/logout", app.Logout)
			r.Post("/donations", app.DonationsCreate)
			r.Post("/donations/{id}/comments", app.CommentsCreate)
			r.Get("/profile", app.Profile)
		})
	})

	r.Handle("/uploads/*", handlers.Uploads(opts.Config.UploadDir))
	r.NotFound(handlers.SPA(opts.Config.FrontendDir))

	return r
}
