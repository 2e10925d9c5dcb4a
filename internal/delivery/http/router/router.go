// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"contacts/internal/delivery/http/middleware"
	"contacts/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	ContactHandler *handler.ContactHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	contactHandler *handler.ContactHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		contactHandler: params.ContactHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
	}

	// Contact routes require authentication
	contactGroup := api.Group("/contacts")
	contactGroup.Use(r.authMiddleware.Authenticate)
	{
		contactGroup.GET("", r.contactHandler.List)
		contactGroup.POST("", r.contactHandler.Create)
		contactGroup.GET("/:id", r.contactHandler.Get)
		contactGroup.PUT("/:id", r.contactHandler.Update)
		contactGroup.DELETE("/:id", r.contactHandler.Delete)
	}
}
