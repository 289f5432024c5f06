// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"creamery/internal/core/security"
	"creamery/internal/infrastructure/http/v1/middleware"
)

// CatalogRouteHandler defines the interface for catalog handlers.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Deactivate(c *gin.Context)
}

// RegisterCatalogRoutes registers standard CRUD routes for a catalog.
// Reads require the scope's read access, mutations read-write.
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler, scope string) {
	group.GET("", middleware.RequirePermission(scope, security.AccessRead), handler.List)
	group.GET("/:id", middleware.RequirePermission(scope, security.AccessRead), handler.Get)
	group.POST("", middleware.RequirePermission(scope, security.AccessReadWrite), handler.Create)
	group.PUT("/:id", middleware.RequirePermission(scope, security.AccessReadWrite), handler.Update)
	group.DELETE("/:id", middleware.RequirePermission(scope, security.AccessReadWrite), handler.Deactivate)
}
