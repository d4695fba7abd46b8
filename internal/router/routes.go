package router

import (
	"github.com/dojolanza/cuotas/go-api-server/internal/alert"
	"github.com/dojolanza/cuotas/go-api-server/internal/auth"
	"github.com/dojolanza/cuotas/go-api-server/internal/config"
	"github.com/dojolanza/cuotas/go-api-server/internal/mail"
	"github.com/dojolanza/cuotas/go-api-server/internal/member"
	"github.com/dojolanza/cuotas/go-api-server/internal/meta"
	"github.com/dojolanza/cuotas/go-api-server/internal/payment"
	"github.com/dojolanza/cuotas/go-api-server/internal/receipt"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/crypto"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/database"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/middleware"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/token"
	"github.com/gin-gonic/gin"
)

// Setup configures all application-specific routes using dependency injection.
// Returns the scheduler so the caller controls its lifecycle.
func Setup(router *gin.Engine, cfg *config.Config, db *database.DB) *alert.Scheduler {
	// Meta handler (health check)
	metaHandler := meta.NewHandler(cfg, db)
	router.GET("/health", metaHandler.Health)

	// shared services
	tokenManager := token.NewJWTManager(cfg)
	codec := crypto.NewAESCodec(cfg.Crypto.EncryptionKey)
	mailer := mail.NewSMTPMailer(cfg)
	renderer := receipt.NewPDFRenderer()

	// repository
	userRepository := auth.NewUserRepository()
	memberRepository := member.NewMemberRepository(codec)
	paymentRepository := payment.NewPaymentRepository(memberRepository)

	// alerts
	resolver := alert.NewResolver(db.DB, memberRepository)
	dispatcher := alert.NewDispatcher(mailer, cfg.Alerts.SendPause)
	scheduler := alert.NewScheduler(resolver, dispatcher, cfg.Alerts)

	// service
	authService := auth.NewAuthService(db.DB, userRepository, tokenManager)
	memberService := member.NewMemberService(db.DB, memberRepository)
	paymentService := payment.NewPaymentService(db.DB, paymentRepository, memberRepository, renderer)

	// handler
	authHandler := auth.NewAuthHandler(authService)
	memberHandler := member.NewMemberHandler(memberService)
	paymentHandler := payment.NewPaymentHandler(paymentService, resolver)
	alertHandler := alert.NewAlertHandler(resolver, dispatcher, scheduler, mailer)

	// API v1 routes
	authV1 := router.Group("/api/v1/auth")
	{
		authV1.POST("/login", authHandler.Login)
	}

	authProtectedV1 := router.Group("/api/v1/auth")
	authProtectedV1.Use(middleware.JWT(cfg))
	{
		authProtectedV1.GET("/profile", authHandler.Profile)
	}

	memberV1 := router.Group("/api/v1/members")
	memberV1.Use(middleware.JWT(cfg))
	{
		memberV1.GET("", memberHandler.List)
		memberV1.POST("", memberHandler.Create)
		memberV1.GET("/:id", memberHandler.Get)
		memberV1.PUT("/:id", memberHandler.Update)
		memberV1.DELETE("/:id", memberHandler.Delete)
	}

	paymentV1 := router.Group("/api/v1/payments")
	paymentV1.Use(middleware.JWT(cfg))
	{
		paymentV1.GET("", paymentHandler.List)
		paymentV1.POST("", paymentHandler.Create)
		paymentV1.GET("/overdue", paymentHandler.Overdue)
		paymentV1.GET("/:id/receipt", paymentHandler.Receipt)
	}

	alertV1 := router.Group("/api/v1/alerts")
	alertV1.Use(middleware.JWT(cfg))
	{
		alertV1.POST("/send", alertHandler.SendAlerts)
		alertV1.POST("/schedule", alertHandler.Schedule)
		alertV1.GET("/status", alertHandler.Status)
		alertV1.GET("/test-email", alertHandler.TestEmail)
	}

	return scheduler
}
