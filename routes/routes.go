// Package routes wires every handler into the router. Per-ID routes use the
// singular resource name so literal sub-paths on the plural never collide.
package routes

import (
	"milonga/auth"
	"milonga/authz"
	"milonga/catalog"
	"milonga/entitlement"
	"milonga/events"
	"milonga/infopages"
	"milonga/middleware"
	"milonga/notices"
	"milonga/pay"
	"milonga/pricing"
	"milonga/purchases"
	"milonga/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/v1/auth/register", rl.Limit(auth.Register))
	router.POST("/api/v1/auth/login", rl.Limit(auth.Login))
	router.POST("/api/v1/auth/logout", auth.Logout)
	router.POST("/api/v1/auth/token/refresh", rl.Limit(auth.RefreshToken))
	router.GET("/api/v1/auth/me", middleware.Authenticate(auth.Me))
}

func AddEventRoutes(router *httprouter.Router) {
	adminWrite := middleware.Chain(middleware.Authenticate, authz.Require(authz.ActionWrite, authz.ResourceEvents))

	router.GET("/api/v1/events", events.ListEvents)
	router.GET("/api/v1/events/month/:year/:month", events.GetMonthEvents)
	router.GET("/api/v1/events/stats", middleware.Chain(
		middleware.Authenticate, authz.Require(authz.ActionManage, authz.ResourceEvents),
	)(events.GetEventStats))
	router.POST("/api/v1/events", adminWrite(events.CreateEvent))
	router.GET("/api/v1/event/:id", events.GetEvent)
	router.PUT("/api/v1/event/:id", adminWrite(events.UpdateEvent))
	router.DELETE("/api/v1/event/:id", adminWrite(events.DeleteEvent))
}

func AddNoticeRoutes(router *httprouter.Router) {
	userRead := middleware.Chain(middleware.Authenticate, authz.Require(authz.ActionRead, authz.ResourceNotices))
	adminWrite := middleware.Chain(middleware.Authenticate, authz.Require(authz.ActionWrite, authz.ResourceNotices))
	adminManage := middleware.Chain(middleware.Authenticate, authz.Require(authz.ActionManage, authz.ResourceNotices))

	router.GET("/api/v1/notices", adminManage(notices.ListNotices))
	router.GET("/api/v1/notices/active", userRead(notices.GetActiveNotices))
	router.GET("/api/v1/notices/urgent", userRead(notices.GetUrgentNotices))
	router.GET("/api/v1/notices/stats", adminManage(notices.GetNoticeStats))
	router.POST("/api/v1/notices/cleanup", adminManage(notices.CleanupExpiredNotices))
	router.POST("/api/v1/notices", adminWrite(notices.CreateNotice))
	router.GET("/api/v1/notice/:id", adminManage(notices.GetNotice))
	router.PUT("/api/v1/notice/:id", adminWrite(notices.UpdateNotice))
	router.PATCH("/api/v1/notice/:id/toggle", adminWrite(notices.ToggleNotice))
	router.DELETE("/api/v1/notice/:id", adminWrite(notices.DeleteNotice))
}

func AddInfoPageRoutes(router *httprouter.Router) {
	adminWrite := middleware.Chain(middleware.Authenticate, authz.Require(authz.ActionWrite, authz.ResourceInfoPages))

	router.GET("/api/v1/info-pages/:slug", infopages.GetInfoPage)
	router.PUT("/api/v1/info-pages/:slug", adminWrite(infopages.UpdateInfoPage))
}

func AddCatalogRoutes(router *httprouter.Router) {
	adminWrite := middleware.Chain(middleware.Authenticate, authz.Require(authz.ActionWrite, authz.ResourceCatalog))

	router.GET("/api/v1/modules", middleware.OptionalAuth(catalog.ListModules))
	router.POST("/api/v1/modules", adminWrite(catalog.CreateModule))
	router.GET("/api/v1/module/:id", catalog.GetModule)
	router.PUT("/api/v1/module/:id", adminWrite(catalog.UpdateModule))
	router.DELETE("/api/v1/module/:id", adminWrite(catalog.DeleteModule))
	router.POST("/api/v1/module/:id/image", adminWrite(catalog.UploadModuleImage))
	router.GET("/api/v1/module/:id/calculate-price", middleware.Authenticate(pricing.CalculateModulePrice))

	router.GET("/api/v1/videos", middleware.OptionalAuth(catalog.ListVideos))
	router.GET("/api/v1/videos/module/:moduleId", catalog.ModuleVideos)
	router.POST("/api/v1/videos/module/:moduleId", adminWrite(catalog.CreateVideo))
	router.GET("/api/v1/video/:id", catalog.GetVideo)
	router.PUT("/api/v1/video/:id", adminWrite(catalog.UpdateVideo))
	router.DELETE("/api/v1/video/:id", adminWrite(catalog.DeleteVideo))
}

func AddPaymentRoutes(router *httprouter.Router, h *pay.Handlers, rl *ratelim.RateLimiter) {
	router.POST("/api/v1/create-video-order", middleware.Chain(middleware.Authenticate, rl.Limit)(h.CreateVideoOrder))
	router.POST("/api/v1/create-video-preference", middleware.Chain(middleware.Authenticate, rl.Limit)(h.CreateVideoPreference))

	// Gateway redirects: identity travels in the state parameter, not a header.
	router.GET("/api/v1/capture-video-order", h.CaptureVideoOrder)
	router.GET("/api/v1/capture-video-preference", h.CaptureVideoPreference)
}

func AddAccessRoutes(router *httprouter.Router) {
	router.GET("/api/v1/video-access", middleware.Authenticate(entitlement.GetVideoAccess))
	router.GET("/api/v1/check-video-access/:id", middleware.Authenticate(entitlement.CheckVideoAccess))
	router.GET("/api/v1/check-module-access/:id", middleware.Authenticate(entitlement.CheckModuleAccess))
	router.GET("/api/v1/user-modules", middleware.Authenticate(entitlement.GetUserModules))
	router.GET("/api/v1/user-modules/:id/videos", middleware.Authenticate(entitlement.GetUserVideosInModule))
	router.GET("/api/v1/user-purchases-summary", middleware.Authenticate(entitlement.GetPurchasesSummary))
}

func AddPurchaseRoutes(router *httprouter.Router) {
	adminManage := middleware.Chain(middleware.Authenticate, authz.Require(authz.ActionManage, authz.ResourcePurchases))

	router.GET("/api/v1/purchases", middleware.Authenticate(purchases.ListMyPurchases))
	router.GET("/api/v1/purchase/:paymentid/receipt", middleware.Authenticate(purchases.PrintReceipt))
	router.PUT("/api/v1/purchase/:paymentid/status", adminManage(purchases.UpdatePurchaseStatus))
}
