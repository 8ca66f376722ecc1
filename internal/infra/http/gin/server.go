package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"domoreserva/internal/infra/config"
	"domoreserva/internal/infra/obs"
)

type UnitHTTP interface {
	List(c *gin.Context)
}

type AvailabilityHTTP interface {
	Calendar(c *gin.Context)
}

type QuoteHTTP interface {
	Quote(c *gin.Context)
}

type ReservationHTTP interface {
	Create(c *gin.Context)
}

type AdminHTTP interface {
	Login(c *gin.Context)
	Logout(c *gin.Context)
	RequireAuth() gin.HandlerFunc
	ListReservations(c *gin.Context)
	CancelReservation(c *gin.Context)
	UpdateUnit(c *gin.Context)
	UploadUnitPhoto(c *gin.Context)
	ListHolidays(c *gin.Context)
	AddHoliday(c *gin.Context)
	RemoveHoliday(c *gin.Context)
	GetDiscounts(c *gin.Context)
	UpdateDiscounts(c *gin.Context)
}

type Handlers struct {
	Units        UnitHTTP
	Availability AvailabilityHTTP
	Quote        QuoteHTTP
	Reservation  ReservationHTTP
	Admin        AdminHTTP

	// RateLimit guards the public write endpoints; nil disables it.
	RateLimit gin.HandlerFunc
	Metrics   *obs.Metrics
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	if h.Metrics != nil {
		router.Use(h.Metrics.HTTPMiddleware())
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)
	if h.Metrics != nil {
		router.GET("/metrics", h.Metrics.Handler())
	}

	api := router.Group("/api/v1")
	if h.Units != nil {
		api.GET("/units", h.Units.List)
	}
	if h.Availability != nil {
		api.GET("/units/:id/calendar", h.Availability.Calendar)
	}

	public := api.Group("")
	if h.RateLimit != nil {
		public.Use(h.RateLimit)
	}
	if h.Quote != nil {
		public.POST("/quotes", h.Quote.Quote)
	}
	if h.Reservation != nil {
		public.POST("/reservations", h.Reservation.Create)
	}

	if h.Admin != nil {
		api.POST("/admin/login", h.Admin.Login)
		admin := api.Group("/admin")
		admin.Use(h.Admin.RequireAuth())
		admin.POST("/logout", h.Admin.Logout)
		if h.Units != nil {
			admin.GET("/units", h.Units.List)
		}
		admin.GET("/reservations", h.Admin.ListReservations)
		admin.DELETE("/reservations/:id", h.Admin.CancelReservation)
		admin.PUT("/units/:id", h.Admin.UpdateUnit)
		admin.POST("/units/:id/photo", h.Admin.UploadUnitPhoto)
		admin.GET("/holidays", h.Admin.ListHolidays)
		admin.POST("/holidays", h.Admin.AddHoliday)
		admin.DELETE("/holidays/:id", h.Admin.RemoveHoliday)
		admin.GET("/discounts", h.Admin.GetDiscounts)
		admin.PUT("/discounts", h.Admin.UpdateDiscounts)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
