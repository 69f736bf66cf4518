package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"hrsystem/internal/attendance"
	"hrsystem/internal/auth"
	"hrsystem/internal/config"
	"hrsystem/internal/department"
	"hrsystem/internal/employee"
	"hrsystem/internal/handler"
	"hrsystem/internal/httpmiddleware"
	"hrsystem/internal/leave"
	"hrsystem/internal/report"
	"hrsystem/internal/schedule"
	"hrsystem/internal/store"
)

func main() {
	cfg := config.Load()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	if err := runHTTP(cfg); err != nil {
		logrus.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	ctx := context.Background()

	pool, err := store.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return err
	}
	defer pool.Close()

	// Schema and seed run once, before the listener starts.
	if err := store.Migrate(cfg.DatabaseURL); err != nil {
		return err
	}
	if cfg.SeedDefaults {
		if err := store.Seed(ctx, pool); err != nil {
			return err
		}
	}

	redisClient := store.NewRedis(cfg.RedisAddr, cfg.RedisTimeout)
	defer redisClient.Close()

	var limiter httpmiddleware.Limiter
	if cfg.RateLimitBackend == "redis" {
		limiter = httpmiddleware.NewRedisWindow(redisClient.Client, cfg.RateLimitPerMin)
	} else {
		limiter = httpmiddleware.NewSimpleTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin)
	}

	h := handler.New(
		employee.NewRepository(pool),
		department.NewRepository(pool),
		schedule.NewRepository(pool),
		attendance.NewRepository(pool),
		leave.NewRepository(pool),
		report.NewRepository(pool),
		cfg.JWTSecret,
		cfg.TokenTTL,
	)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpmiddleware.RequestLog("/healthz", "/metrics", "/api/health"))
	r.Use(httpmiddleware.Metrics())
	r.Use(corsMiddleware())
	r.Use(securityHeaders())
	r.Use(httpmiddleware.RateLimit(limiter))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		redisHealthy := redisClient.Healthy(c.Request.Context())
		dbHealthy := pool.Ping(c.Request.Context()) == nil
		status := http.StatusOK
		if !dbHealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "db": dbHealthy, "redis": redisHealthy})
	})

	api := r.Group("/api")
	api.GET("/health", h.Health)
	api.POST("/auth/login", h.Login)
	api.POST("/auth/signup", h.Signup)
	api.GET("/departments", h.ListDepartments)

	authed := api.Group("", auth.Authenticate(cfg.JWTSecret))

	authed.GET("/employees", h.ListEmployees)
	authed.GET("/employees/:id", h.GetEmployee)
	authed.POST("/employees", auth.Require("employees", auth.ActionCreate), h.CreateEmployee)
	authed.PUT("/employees/:id", h.UpdateEmployee)
	authed.DELETE("/employees/:id", auth.Require("employees", auth.ActionDelete), h.DeleteEmployee)

	authed.POST("/departments", auth.Require("departments", auth.ActionCreate), h.CreateDepartment)

	authed.GET("/shift-templates", h.ListShiftTemplates)
	authed.POST("/shift-templates", auth.Require("shift-templates", auth.ActionCreate), h.CreateShiftTemplate)
	authed.PUT("/shift-templates/:id", auth.Require("shift-templates", auth.ActionUpdate), h.UpdateShiftTemplate)
	authed.DELETE("/shift-templates/:id", auth.Require("shift-templates", auth.ActionDelete), h.DeleteShiftTemplate)

	authed.GET("/shifts", h.ListShifts)
	authed.POST("/shifts", auth.Require("shifts", auth.ActionCreate), h.CreateShift)
	authed.PUT("/shifts/:id", auth.Require("shifts", auth.ActionUpdate), h.UpdateShift)
	authed.DELETE("/shifts/:id", auth.Require("shifts", auth.ActionDelete), h.DeleteShift)

	authed.GET("/holidays", h.ListHolidays)
	authed.POST("/holidays", h.CreateHoliday)
	authed.DELETE("/holidays/:id", h.DeleteHoliday)

	authed.GET("/attendance", h.ListAttendance)
	authed.POST("/attendance", h.RecordAttendance)
	authed.PUT("/attendance/:id", h.Checkout)

	authed.GET("/leave-requests", h.ListLeaveRequests)
	authed.POST("/leave-requests", h.CreateLeaveRequest)
	authed.PUT("/leave-requests/:id/approve", auth.Require("leave-requests", auth.ActionApprove), h.ApproveLeaveRequest)

	authed.GET("/reports/attendance", h.AttendanceReport)
	authed.GET("/reports/leave", h.LeaveReport)
	authed.GET("/reports/payroll", auth.Require("reports/payroll", auth.ActionRead), h.PayrollReport)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down server...")

	// Give outstanding requests 10 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Warnf("server forced shutdown: %v", err)
	}

	logrus.Info("server exited")
	return nil
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
