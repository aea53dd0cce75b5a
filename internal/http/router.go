package api

import (
	stdhttp "net/http"

	intconfig "brooksportal/internal/config"
	h "brooksportal/internal/http/handlers"
	"brooksportal/internal/http/middleware"
	"brooksportal/internal/storage"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func NewRouter(env intconfig.Env, ref intconfig.Reference, store storage.ObjectStore) *gin.Engine {
	app := h.API{Env: env, Ref: ref, Store: store}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warnf("failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	// signature images are public objects, same as the original bucket
	r.Static("/files/signatures", env.SignatureDir)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		auth := api.Group("/auth")
		auth.POST("/login", app.Login)
		auth.POST("/driver-login", app.DriverLogin)

		secret := []byte(env.JWTSecret)

		authed := api.Group("")
		authed.Use(middleware.RequireAuth(secret))
		authed.GET("/reference", app.ReferenceData)

		staff := authed.Group("")
		staff.Use(middleware.RequireRoles(h.RoleStaff))
		{
			bookings := staff.Group("/bookings")
			bookings.POST("", app.CreateBooking)
			bookings.GET("", app.ListBookings(false))
			bookings.GET("/archived", app.ListBookings(true))
			bookings.GET("/:id", app.GetBooking)
			bookings.PATCH("/:id", app.UpdateBooking)
			bookings.POST("/:id/archive", app.ArchiveBooking)

			portaloos := staff.Group("/portaloos")
			portaloos.GET("", app.ListPortaloos)
			portaloos.POST("", app.AddPortaloo)
			portaloos.GET("/ending-today", app.PortaloosEndingToday)
			portaloos.GET("/ending-soon", app.PortaloosEndingSoon)
			portaloos.POST("/:id/book", app.BookPortaloo)
			portaloos.PATCH("/:id", app.UpdatePortaloo)
		}

		// drivers complete their own jobs and write transfer notes on site;
		// staff can do both from the office
		crew := authed.Group("")
		crew.Use(middleware.RequireRoles(h.RoleStaff, h.RoleDriver))
		{
			crew.GET("/driver/jobs", app.DriverJobs)
			crew.POST("/bookings/:id/complete", app.CompleteBooking)
			crew.POST("/bookings/:id/waste-transfer-note", app.CreateWTN)
			crew.GET("/bookings/:id/waste-transfer-note", app.GetWTN)
			crew.GET("/bookings/:id/waste-transfer-note/pdf", app.DownloadWTNPDF)
		}
	}

	h.SetRouter(r)
	return r
}
