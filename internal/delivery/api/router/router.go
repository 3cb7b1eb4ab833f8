// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/config"
	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router/handler"
	"storefront/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DocumentUploadPath gets its own body limit sized for verification documents.
const DocumentUploadPath = "/api/v1/documents"

type RouterParams struct {
	fx.In

	AuthHandler        *handler.AuthHandler
	ReferenceHandler   *handler.ReferenceHandler
	DocumentHandler    *handler.DocumentHandler
	ApplicationHandler *handler.ApplicationHandler
	StoreHandler       *handler.StoreHandler
	AdminHandler       *handler.AdminHandler
	HealthHandler      *handler.HealthHandler
	AuthMiddleware     *middleware.AuthMiddleware
	Config             *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler        *handler.AuthHandler
	referenceHandler   *handler.ReferenceHandler
	documentHandler    *handler.DocumentHandler
	applicationHandler *handler.ApplicationHandler
	storeHandler       *handler.StoreHandler
	adminHandler       *handler.AdminHandler
	healthHandler      *handler.HealthHandler
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:        params.AuthHandler,
		referenceHandler:   params.ReferenceHandler,
		documentHandler:    params.DocumentHandler,
		applicationHandler: params.ApplicationHandler,
		storeHandler:       params.StoreHandler,
		adminHandler:       params.AdminHandler,
		healthHandler:      params.HealthHandler,
		authMiddleware:     params.AuthMiddleware,
		config:             params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", r.healthHandler.Check)

	authn := r.authMiddleware.Authenticate
	limited := middleware.NewRateLimiter(r.config)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", r.authHandler.Signup, limited)
		authGroup.POST("/login", r.authHandler.Login, limited)
		authGroup.POST("/admin/login", r.authHandler.AdminLogin, limited)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.POST("/password/setup", r.authHandler.SetupPassword, limited)
		authGroup.POST("/admin/recover", r.authHandler.RecoverAdmin, limited)
		authGroup.GET("/me", r.authHandler.Me, authn)
	}

	apiV1 := e.Group("/api/v1")

	// Public catalog and storefront routes
	apiV1.GET("/categories", r.referenceHandler.ListCategories)
	apiV1.GET("/plans", r.referenceHandler.ListPlans)
	apiV1.GET("/slugs/check", r.referenceHandler.CheckSlug)
	apiV1.GET("/stores/:slug", r.storeHandler.GetBySlug)
	apiV1.GET("/stores/:slug/qrcode", r.storeHandler.QRCode)

	// Anonymous writes
	apiV1.POST("/documents", r.documentHandler.Upload, limited)
	apiV1.POST("/applications", r.applicationHandler.Submit, limited)

	// Any storefront user may open a store; the first one makes them a merchant.
	merchantGroup := apiV1.Group("/merchant", authn, r.authMiddleware.RequireRole(entity.RoleCustomer))
	{
		merchantGroup.POST("/stores", r.storeHandler.CreateStore)
		merchantGroup.GET("/stores", r.storeHandler.ListMine)
	}

	adminGroup := apiV1.Group("/admin", authn, r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		applications := adminGroup.Group("/applications")
		applications.GET("", r.applicationHandler.List)
		applications.GET("/:id", r.applicationHandler.Get)
		applications.POST("/:id/approve", r.applicationHandler.Approve)
		applications.POST("/:id/reject", r.applicationHandler.Reject)
		applications.DELETE("/:id", r.applicationHandler.Purge)

		restricted := adminGroup.Group("/restricted-slugs")
		restricted.GET("", r.referenceHandler.ListRestrictedSlugs)
		restricted.POST("", r.referenceHandler.AddRestrictedSlug)
		restricted.DELETE("/:word", r.referenceHandler.RemoveRestrictedSlug)

		// super_admin checks live in the use case; admins may list and rotate their own recovery code.
		admins := adminGroup.Group("/admins")
		admins.GET("", r.adminHandler.List)
		admins.POST("", r.adminHandler.Create)
		admins.PATCH("/:id/status", r.adminHandler.UpdateStatus)
		admins.PATCH("/:id/role", r.adminHandler.UpdateRole)
		admins.POST("/:id/recovery-code", r.adminHandler.IssueRecoveryCode)
	}
}
