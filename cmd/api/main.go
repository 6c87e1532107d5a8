package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/hanbit-edu/tutoring-ledger-api/api/swagger"
	"github.com/hanbit-edu/tutoring-ledger-api/internal/handler"
	"github.com/hanbit-edu/tutoring-ledger-api/internal/middleware"
	"github.com/hanbit-edu/tutoring-ledger-api/internal/repository"
	"github.com/hanbit-edu/tutoring-ledger-api/internal/scheduler"
	"github.com/hanbit-edu/tutoring-ledger-api/internal/service"
	"github.com/hanbit-edu/tutoring-ledger-api/pkg/auth"
	"github.com/hanbit-edu/tutoring-ledger-api/pkg/config"
	"github.com/hanbit-edu/tutoring-ledger-api/pkg/database"
	"github.com/hanbit-edu/tutoring-ledger-api/pkg/export"
	"github.com/hanbit-edu/tutoring-ledger-api/pkg/logger"
	corsmiddleware "github.com/hanbit-edu/tutoring-ledger-api/pkg/middleware/cors"
	reqidmiddleware "github.com/hanbit-edu/tutoring-ledger-api/pkg/middleware/requestid"
)

// @title Tutoring Ledger API
// @version 1.0.0
// @description Attendance, tuition and commission ledger on top of the online scheduler
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()

	attendanceRepo := repository.NewAttendanceRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	pricingRepo := repository.NewPricingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	commissionRepo := repository.NewCommissionRepository(db)
	hiddenRepo := repository.NewHiddenRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)

	sched := scheduler.NewHTTPClient(cfg.Scheduler, logr)
	validate := validator.New()
	guard := auth.NewGuard(cfg.Admin.Secret)

	metricsSvc := service.NewMetricsService()
	sched.SetMetrics(metricsSvc)
	rosterSvc := service.NewRosterService(sched, hiddenRepo, pricingRepo, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, noteRepo, sched, validate, logr)
	billingSvc := service.NewBillingService(rosterSvc, attendanceRepo, pricingRepo, paymentRepo, sched, validate, logr)
	commissionSvc := service.NewCommissionService(sched, attendanceRepo, commissionRepo, validate, logr)
	classCountSvc := service.NewClassCountService(attendanceRepo, sched, metricsSvc, logr)
	exportSvc := service.NewExportService(billingSvc, commissionSvc, export.NewCSVExporter(), export.NewPDFExporter(), logr)
	holidaySvc := service.NewHolidayService(holidayRepo, validate, logr)
	hiddenSvc := service.NewHiddenRowService(hiddenRepo, sched, validate, logr)

	attendanceHandler := handler.NewAttendanceHandler(rosterSvc, attendanceSvc)
	billingHandler := handler.NewBillingHandler(billingSvc, exportSvc, guard)
	commissionHandler := handler.NewCommissionHandler(commissionSvc, exportSvc, guard)
	adminHandler := handler.NewAdminHandler(holidaySvc, guard)
	hiddenHandler := handler.NewHiddenHandler(hiddenSvc)
	classCountHandler := handler.NewClassCountHandler(classCountSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/students", attendanceHandler.Students)
		api.GET("/monthly", attendanceHandler.Monthly)
		api.POST("", attendanceHandler.Set)
		api.POST("/toggle", attendanceHandler.Toggle)
		api.DELETE("", attendanceHandler.Clear)
		api.GET("/summary", attendanceHandler.Summary)
		api.GET("/summary/:studentId", attendanceHandler.StudentSummary)
		api.GET("/notes", attendanceHandler.Notes)
		api.POST("/notes", attendanceHandler.SetNote)

		api.POST("/admin/verify", adminHandler.Verify)
		api.GET("/holidays", adminHandler.Holidays)
		api.GET("/holidays/monthly", adminHandler.MonthlyHolidays)
		api.POST("/holidays", adminHandler.AddHoliday)
		api.DELETE("/holidays/:id", adminHandler.DeleteHoliday)

		api.GET("/subjects", billingHandler.Subjects)
		api.GET("/tuition/subjects", billingHandler.Tuition)
		api.GET("/tuition/subjects/summary", billingHandler.Summary)
		api.GET("/tuition/subjects/export", billingHandler.Export)
		api.POST("/tuition/subjects", billingHandler.SetPrice)
		api.POST("/tuition/subjects/payment/toggle", billingHandler.TogglePayment)
		api.POST("/tuition/subjects/add", billingHandler.AddSubject)
		api.DELETE("/tuition/subjects", billingHandler.DeleteSubject)

		api.GET("/commission", commissionHandler.List)
		api.GET("/commission/teachers", commissionHandler.Teachers)
		api.GET("/commission/summary", commissionHandler.Summary)
		api.GET("/commission/export", commissionHandler.Export)
		api.POST("/commission", commissionHandler.Set)
		api.POST("/commission/payment/toggle", commissionHandler.TogglePayment)

		api.GET("/hidden", hiddenHandler.List)
		api.POST("/hidden", hiddenHandler.Hide)
		api.DELETE("/hidden", hiddenHandler.Unhide)

		api.GET("/class-counts", classCountHandler.Counts)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "prefix", cfg.APIPrefix)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
