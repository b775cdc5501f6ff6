package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/focusboard/focusboard-api/docs"
	"github.com/focusboard/focusboard-api/internal/api/handler"
	"github.com/focusboard/focusboard-api/internal/api/middleware"
	"github.com/focusboard/focusboard-api/internal/core/ports"
	"github.com/focusboard/focusboard-api/internal/infrastructure/realtime"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Tasks    ports.TaskService
	Notes    ports.NoteService
	Verifier ports.TokenVerifier

	// Realtime serves /ws; nil leaves the route unregistered.
	Realtime *realtime.Handler

	DB    handler.DBPinger
	Redis redis.Cmdable

	Log            zerolog.Logger
	Debug          bool
	AllowedOrigins []string

	// Registerer and Gatherer enable HTTP metrics and /metrics when set.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log, d.Debug)

	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.BodyLimit("1M"))
	if d.Registerer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "focusboard",
			Registerer: d.Registerer,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics" || c.Path() == "/ws"
			},
		}))
	}

	requireAuth := middleware.RequireAuth(d.Verifier)
	optionalAuth := middleware.OptionalAuth(d.Verifier)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth)
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, requireAuth)
	auth.GET("/me", authHandler.Me, requireAuth)
	auth.GET("/session", authHandler.Session, optionalAuth)

	// --- Profile routes ---
	userHandler := handler.NewUserHandler(d.Users)
	users := e.Group("/api/users/me", requireAuth)
	users.GET("", userHandler.Profile)
	users.PATCH("", userHandler.UpdateProfile)
	users.PUT("/password", userHandler.ChangePassword)

	// --- Task routes ---
	taskHandler := handler.NewTaskHandler(d.Tasks)
	tasks := e.Group("/api/tasks", requireAuth)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PATCH("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	// --- Note routes ---
	noteHandler := handler.NewNoteHandler(d.Notes)
	notes := e.Group("/api/notes", requireAuth)
	notes.GET("", noteHandler.List)
	notes.POST("", noteHandler.Create)
	notes.GET("/:id", noteHandler.Get)
	notes.PATCH("/:id", noteHandler.Update)
	notes.DELETE("/:id", noteHandler.Delete)

	// --- Realtime (token is presented over the socket, not the header) ---
	if d.Realtime != nil {
		e.GET("/ws", d.Realtime.ServeWS)
	}

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness) // liveness  – is the process alive?
	if d.DB != nil {
		healthDepsHandler := handler.NewHealthDependenciesHandler(d.DB, d.Redis)
		e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	}

	// --- Operations ---
	if d.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
