package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"retail-hub/controllers"
	"retail-hub/libs"
	"retail-hub/middleware"
)

type Handlers struct {
	Auth       *controllers.AuthController
	Products   *controllers.ProductController
	Campaigns  *controllers.CampaignController
	Storefront *controllers.StorefrontController
	Health     *controllers.HealthController

	Authenticator middleware.Authenticator
	UploadDir     string
}

func SetupRoutes(router *gin.Engine, h Handlers) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", h.Health.Health)
	router.GET("/health/store", h.Health.Store)

	router.POST("/auth/login", h.Auth.Login)

	router.GET("/products", h.Products.ListProducts)
	router.GET("/products/:sku", h.Products.GetProduct)
	router.GET("/campaigns", h.Campaigns.ListCampaigns)
	router.GET("/campaigns/:campaignID", h.Campaigns.GetCampaign)

	router.GET("/storefront/products", h.Storefront.Browse)
	router.GET("/storefront/products/:sku", h.Storefront.Detail)
	router.GET("/storefront/featured", h.Storefront.Featured)
	router.GET("/storefront/categories", h.Storefront.Categories)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware(h.Authenticator))
	{
		auth.GET("/auth/me", h.Auth.Me)
	}

	admin := router.Group("/")
	admin.Use(middleware.AuthMiddleware(h.Authenticator), middleware.AdminMiddleware())
	{
		admin.POST("/products", h.Products.CreateProduct)
		admin.PUT("/products/:sku", h.Products.UpdateProduct)
		admin.DELETE("/products/:sku", h.Products.DeleteProduct)
		admin.POST("/products/:sku/image", h.Products.UploadImage)

		admin.POST("/campaigns", h.Campaigns.CreateCampaign)
		admin.PUT("/campaigns/:campaignID", h.Campaigns.UpdateCampaign)

		admin.POST("/admin/products/workspace", h.Products.SaveProduct)
		admin.GET("/admin/campaigns/workspace", h.Campaigns.Workspace)
		admin.POST("/admin/campaigns/workspace", h.Campaigns.SaveCampaign)
	}

	if h.UploadDir != "" {
		router.Static(libs.PublicUploadPath, h.UploadDir)
	}
}
