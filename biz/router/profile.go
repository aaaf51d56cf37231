package router

import (
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/yi-nology/envprofile/biz/handler"
	"github.com/yi-nology/envprofile/biz/middleware"
	"github.com/yi-nology/envprofile/pkg/lock"
)

// RegisterProfileRoutes configures HTTP routes for profile APIs under basePath.
// Writes require an authenticated caller and go through locker when one is set.
func RegisterProfileRoutes(r *route.Engine, basePath string, h *handler.ProfileHandler, locker lock.Locker) {
	if h == nil {
		return
	}

	root := r.Group(basePath)
	root.GET("/ping", handler.Ping)

	v1 := root.Group("/api/v1")
	v1.GET("/version", handler.GetVersion)
	v1.GET("/environment", h.GetEnvironment)
	v1.GET("/environment/endpoints", h.GetEndpoints)
	v1.GET("/published/:key/:file", h.GetPublished)

	profiles := v1.Group("/profiles")
	profiles.GET("", h.ListProfiles)
	profiles.GET("/:key", h.GetProfile)
	profiles.GET("/:key/publications", h.ListPublications)

	writes := profiles.Group("", middleware.RequireAuth())
	writes.Use(middleware.WriteLock(locker)...)
	writes.POST("", h.CreateProfile)
	writes.PUT("/:key", h.UpdateProfile)
	writes.DELETE("/:key", h.DeleteProfile)
	writes.POST("/:key/publish", h.PublishProfile)
}
