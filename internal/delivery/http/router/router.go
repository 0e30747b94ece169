// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"vendorwatch/internal/delivery/http/middleware"
	"vendorwatch/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	UserHandler      *handler.UserHandler
	PortfolioHandler *handler.PortfolioHandler
	PropertyHandler  *handler.PropertyHandler
	WizardHandler    *handler.WizardHandler
	DocumentHandler  *handler.DocumentHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	p := r.params

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", p.AuthHandler.Register)
		authGroup.POST("/login", p.AuthHandler.Login)
		authGroup.POST("/refresh", p.AuthHandler.Refresh)
	}

	// Everything below requires an authenticated session.
	api := e.Group("", p.AuthMiddleware.Authenticate)

	// Session routes
	api.GET("/session/profile", p.UserHandler.GetProfile)
	api.GET("/session/watch", p.UserHandler.WatchSession)

	// Roster routes; the usecase enforces the admin gate.
	userGroup := api.Group("/users")
	{
		userGroup.GET("", p.UserHandler.Roster)
		userGroup.PUT("/:email/role", p.UserHandler.SetRole)
		userGroup.DELETE("/:email", p.UserHandler.DeleteUser)
	}

	// Portfolio grid and spreadsheet round-trip
	portfolioGroup := api.Group("/portfolio")
	{
		portfolioGroup.POST("/query", p.PortfolioHandler.Query)
		portfolioGroup.POST("/import", p.PortfolioHandler.Import)
		portfolioGroup.GET("/template", p.PortfolioHandler.Template)
		portfolioGroup.GET("/export", p.PortfolioHandler.Export)
		portfolioGroup.DELETE("", p.PortfolioHandler.Clear)
	}

	// Single-property routes
	propertyGroup := api.Group("/properties")
	{
		propertyGroup.POST("", p.PropertyHandler.Create)
		propertyGroup.GET("/:id", p.PropertyHandler.Get)
		propertyGroup.PATCH("/:id", p.PropertyHandler.Update)
		propertyGroup.DELETE("/:id", p.PropertyHandler.Delete)
		propertyGroup.PUT("/:id/status", p.PropertyHandler.SetStatus)
		propertyGroup.GET("/:id/tag.png", p.PropertyHandler.Tag)

		propertyGroup.POST("/:id/contacts", p.PropertyHandler.AddContact)
		propertyGroup.PUT("/:id/contacts/:contactId", p.PropertyHandler.UpdateContact)
		propertyGroup.DELETE("/:id/contacts/:contactId", p.PropertyHandler.DeleteContact)

		propertyGroup.POST("/:id/contracts", p.PropertyHandler.AddContract)
		propertyGroup.PUT("/:id/contracts/:contractId", p.PropertyHandler.UpdateContract)
		propertyGroup.DELETE("/:id/contracts/:contractId", p.PropertyHandler.DeleteContract)

		propertyGroup.POST("/:id/documents", p.DocumentHandler.Upload)
		propertyGroup.GET("/:id/documents", p.DocumentHandler.List)
		propertyGroup.GET("/:id/documents/:documentId", p.DocumentHandler.Download)
		propertyGroup.DELETE("/:id/documents/:documentId", p.DocumentHandler.Delete)

		propertyGroup.POST("/:id/wizard/complete", p.WizardHandler.Complete)
	}

	// Wizard step metadata and probes are property-independent.
	wizardGroup := api.Group("/wizard")
	{
		wizardGroup.GET("/steps", p.WizardHandler.Steps)
		wizardGroup.POST("/check", p.WizardHandler.CheckStep)
	}
}
