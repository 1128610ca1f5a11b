package main

import (
	"github.com/gin-gonic/gin"
	"shopgate.backend/internal/domain/entities"
	"shopgate.backend/internal/interfaces/http/handlers"
	"shopgate.backend/internal/interfaces/http/middleware"
	"shopgate.backend/internal/usecases"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	userHandler    *handlers.UserHandler
	apiKeyHandler  *handlers.ApiKeyHandler
	productHandler *handlers.ProductHandler
	authzUsecase   *usecases.AuthzUsecase
	authenticate   gin.HandlerFunc
	loginLimit     gin.HandlerFunc
}

// registerAPIV1Routes wires the route table. Each protected route names its
// gate list inline; the first matching entry grants access.
func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	gate := func(requirements ...string) gin.HandlerFunc {
		return middleware.RequireAny(d.authzUsecase, requirements...)
	}
	perm := func(p entities.Permission) string { return string(p) }

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.loginLimit, d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.Refresh)
			auth.GET("/me", d.authenticate, gate(perm(entities.PermGetMyUser)), d.authHandler.GetMe)
			auth.POST("/change-password", d.authenticate, d.authHandler.ChangePassword)
		}

		users := v1.Group("/users")
		users.Use(d.authenticate)
		{
			users.GET("", gate(perm(entities.PermGetUsers), "role:admin"), d.userHandler.ListUsers)
			users.PUT("/:id/role", gate("role:admin"), d.userHandler.ChangeRole)
		}

		products := v1.Group("/products")
		products.Use(d.authenticate)
		{
			products.POST("", gate(perm(entities.PermPostProducts)), d.productHandler.CreateProduct)
			products.GET("", gate(perm(entities.PermGetProducts)), d.productHandler.ListProducts)
			products.GET("/mine", gate(perm(entities.PermGetMyProducts)), d.productHandler.ListMyProducts)
			products.GET("/bestsellers", gate(perm(entities.PermGetBestsellers)), d.productHandler.ListBestsellers)
		}

		apiKeys := v1.Group("/api-keys")
		apiKeys.Use(d.authenticate)
		{
			apiKeys.POST("", gate(perm(entities.PermCreateAPIKeys)), d.apiKeyHandler.CreateKeys)
			apiKeys.GET("", gate(perm(entities.PermReadAPIKeys)), d.apiKeyHandler.ListKeys)
			apiKeys.PUT("/:id/disable", gate(perm(entities.PermDeleteAPIKeys)), d.apiKeyHandler.DisableKey)
			apiKeys.DELETE("/:id", gate(perm(entities.PermDeleteAPIKeys)), d.apiKeyHandler.DeleteKey)
		}
	}
}
