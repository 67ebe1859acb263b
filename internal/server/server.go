package server

import (
	"context"
	"net/http"
	"time"

	"pistas/internal/auth"
	"pistas/internal/config"
	"pistas/internal/court"
	"pistas/internal/notify"
	"pistas/internal/reservation"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, notifier *notify.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	courtHandler := court.NewHandler(db)

	reservationService := reservation.NewService(
		reservation.NewRepository(db),
		court.NewRepository(db),
		notifier,
		cfg.StoreTimeout,
	)
	reservationHandler := reservation.NewHandler(reservationService)

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	protected := router.Group("/")
	protected.Use(auth.Middleware(cfg.JWTSecret))
	{
		protected.GET("/pistas", courtHandler.ListCourts)
		protected.POST("/reservas", reservationHandler.CreateReservation)
		protected.GET("/reservas", reservationHandler.ListMyReservations)
		protected.POST("/reservas/:id/pagar", reservationHandler.MarkPaid)
		protected.POST("/reservas/:id/cancelar", reservationHandler.Cancel)
	}

	admin := router.Group("/admin")
	admin.Use(auth.Middleware(cfg.JWTSecret), auth.RequireRole("admin"))
	{
		admin.GET("/reservas", reservationHandler.AdminList)
		admin.DELETE("/reservas/:id", reservationHandler.AdminDelete)
	}

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:         ":" + port,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
