package handler

import (
	"payment-resolver/internal/adapter/http/middleware"
	"payment-resolver/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	ResolverSvc     ports.ResolverService
	PaymentSvc      ports.PaymentService
	StoreForwardSvc ports.StoreForwardService
	PRRSvc          ports.PRRService
	AdminSvc        ports.AdminService
	AuthSvc         ports.AuthService
	AuditSvc        ports.AuditService // nil = audit logging disabled
	TokenSvc        ports.TokenService
	SigSvc          ports.SignatureService
	Repo            ports.IdentityRepository
	RateLimiter     middleware.Limiter // nil = rate limiting disabled
	RateLimitRules  map[string]middleware.RateLimitRule
	HealthCheckers  []ports.HealthChecker
	AdminPublicKey  string
	SiteURL         string
	MaxBodyBytes    int64
	Logger          zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(deps.MaxBodyBytes))
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	r.GET("/", Index(deps.SiteURL))
	r.GET("/index.html", Index(deps.SiteURL))

	rl := func(group string) gin.HandlerFunc {
		rule, ok := deps.RateLimitRules[group]
		if deps.RateLimiter == nil || !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimiter, group, rule, deps.Logger)
	}
	def := rl(middleware.GroupDefault)

	signed := middleware.RequireValidSignature(deps.SigSvc)
	owner := middleware.RequirePublicKey(deps.Repo, deps.Logger)

	resolveHandler := NewResolveHandler(deps.ResolverSvc, deps.PRRSvc, deps.AdminPublicKey, deps.SiteURL)
	r.GET("/resolve/:id", rl(middleware.GroupResolve), resolveHandler.Resolve)
	r.POST("/resolve/:id", def, signed, resolveHandler.SubmitPRR)
	r.GET("/branches/:id", def, signed, resolveHandler.Branches)

	paymentHandler := NewPaymentHandler(deps.PaymentSvc)
	r.POST("/payment/:id", def, paymentHandler.SubmitPayment)
	r.GET("/payment/:id/refund/:tx", def, owner, signed, paymentHandler.RefundAddress)

	sfHandler := NewStoreForwardHandler(deps.StoreForwardSvc)
	r.POST("/sf", def, signed, sfHandler.Register)
	sf := r.Group("/sf/:id", def, owner, signed)
	{
		sf.GET("", sfHandler.Count)
		sf.PUT("", sfHandler.Add)
		sf.DELETE("", sfHandler.Delete)
	}

	prrHandler := NewPRRHandler(deps.PRRSvc)
	prr := r.Group("/prr/:id", def, owner, signed)
	{
		prr.GET("", prrHandler.List)
		prr.POST("", prrHandler.SubmitReturns)
	}
	r.GET("/pr/:id", def, prrHandler.GetReturn)

	authHandler := NewAuthHandler(deps.AuthSvc)
	adminHandler := NewAdminHandler(deps.AdminSvc)
	api := r.Group("/api")
	{
		api.POST("/login", def, authHandler.Login)

		admin := api.Group("", def, middleware.JWTAuth(deps.TokenSvc))
		admin.GET("", adminHandler.List)
		admin.POST("", adminHandler.Create)
		admin.GET("/:id", adminHandler.Get)
		admin.PUT("/:id", adminHandler.Update)
		admin.DELETE("/:id", adminHandler.Delete)
		admin.DELETE("/:id/privkey", adminHandler.DeletePrivateKey)
	}

	return r
}
