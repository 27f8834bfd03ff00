package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"chatrelay/internal/pkg/auth/session"
	"chatrelay/internal/pkg/limiter"
	"chatrelay/internal/pkg/logx"
	"chatrelay/internal/pkg/resp"
)

const (
	// Login and registration share one per-IP budget.
	AuthRate  = 0.5
	AuthBurst = 5
)

// Router assembles the routing table. Every route passes the session gate;
// the gate decides per route class whether a credential is required.
func Router(deps *AppDeps) http.Handler {
	authLimiter := limiter.NewIPRateLimiter(rate.Limit(AuthRate), AuthBurst)
	gate := session.NewGate(deps.Codec)

	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Use(gate.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp.WriteOK(w, r, map[string]string{
			"status":  "ok",
			"service": "chatrelay",
		})
	})

	// Navigation targets; the gate redirects between them by route class.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/chat", http.StatusFound)
	})
	r.Get("/login", servePage("Sign in", "login"))
	r.Get("/register", servePage("Create account", "register"))
	r.Get("/chat", servePage("Chat", "chat"))

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(auth chi.Router) {
			auth.With(authLimiter.Middleware).Post("/register", HandleRegister(deps))
			auth.With(authLimiter.Middleware).Post("/login", HandleLogin(deps))
			auth.Post("/logout", HandleLogout(deps))
		})

		api.Get("/messages", HandleListMessages(deps))
		api.Post("/messages", HandlePostMessage(deps))

		api.Get("/users", HandleListUsers(deps))
		api.Put("/users", HandleUpdateProfile(deps))

		api.Get("/sync", HandleSyncContract())

		if deps.Blobs != nil {
			api.Post("/upload", HandleUpload(deps))
		}
	})

	return r
}
