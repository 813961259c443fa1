package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Page shells rendered behind the route guard. The real UI is a separate
// frontend; these exist so every guarded navigation resolves to a page
// the guard can gate.

func page(title string) gin.HandlerFunc {
	body := []byte("<!doctype html><html><head><title>NutriFlow -" + title + "</title></head><body><div id=\"app\" data-page=\"" + title + "\"></div></body></html>")
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", body)
	}
}

// RegisterPages wires the guarded page routes. The guard middleware is
// installed on this group only; API routes, the auth callback and the
// favicon are registered elsewhere and never pass through it.
func RegisterPages(router *gin.Engine, guard gin.HandlerFunc) {
	pages := router.Group("/")
	pages.Use(guard)
	{
		pages.GET("", page("home"))
		pages.GET("/login", page("login"))
		pages.GET("/signup", page("signup"))
		pages.GET("/onboarding", page("onboarding"))
		pages.GET("/dashboard", page("dashboard"))
		pages.GET("/dashboard/recipes", page("recipes"))
		pages.GET("/dashboard/water", page("water"))
		pages.GET("/dashboard/settings", page("settings"))
	}
}
