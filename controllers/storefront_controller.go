package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"retail-hub/models"
	"retail-hub/services"
)

type StorefrontController struct {
	storefront *services.StorefrontService
	log        *zap.Logger
}

func NewStorefrontController(storefront *services.StorefrontService, log *zap.Logger) *StorefrontController {
	return &StorefrontController{storefront: storefront, log: log}
}

func priceQuery(c *gin.Context, key string) (*decimal.Decimal, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, models.NewValidationError(key, "must be a number")
	}
	return &value, nil
}

// @Summary Browse products
// @Description Products priced against the active campaign, filtered and sorted
// @Tags Storefront
// @Produce json
// @Param search query string false "Search by product name"
// @Param category query []string false "Filter by category"
// @Param min_price query number false "Minimum effective price"
// @Param max_price query number false "Maximum effective price"
// @Param price_range query string false "Named price range" Enums(any, 0-100, 100-500, 500-1000, 1000+)
// @Param sort query string false "Sort order" Enums(newest, price_asc, price_desc, name_asc, name_desc)
// @Param campaign query string false "Active campaign name"
// @Success 200 {object} models.ListResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /storefront/products [get]
func (ctrl *StorefrontController) Browse(c *gin.Context) {
	var filter models.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err)
		return
	}

	var err error
	if filter.MinPrice, err = priceQuery(c, "min_price"); err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	if filter.MaxPrice, err = priceQuery(c, "max_price"); err != nil {
		respondError(c, ctrl.log, err)
		return
	}

	res, err := ctrl.storefront.Browse(c.Request.Context(), filter)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}

	meta := models.ListMeta{Total: len(res.Products)}
	if res.Campaign != nil {
		meta.Campaign = res.Campaign.Name
	}
	c.JSON(http.StatusOK, models.ListResponse{
		Success: true,
		Message: "Products retrieved",
		Data:    res,
		Meta:    meta,
	})
}

// @Summary Featured products
// @Description The most recently added products with the active campaign
// @Tags Storefront
// @Produce json
// @Param limit query int false "Number of products" default(6)
// @Success 200 {object} models.Response
// @Router /storefront/featured [get]
func (ctrl *StorefrontController) Featured(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(services.DefaultFeaturedCount)))

	res, err := ctrl.storefront.Featured(c.Request.Context(), limit)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Featured products retrieved",
		Data:    res,
	})
}

// @Summary Product detail
// @Tags Storefront
// @Produce json
// @Param sku path string true "Product SKU"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /storefront/products/{sku} [get]
func (ctrl *StorefrontController) Detail(c *gin.Context) {
	product, err := ctrl.storefront.Detail(c.Request.Context(), c.Param("sku"))
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product retrieved",
		Data:    product,
	})
}

// @Summary Get all categories
// @Description Distinct product categories, sorted
// @Tags Storefront
// @Produce json
// @Success 200 {object} models.Response
// @Router /storefront/categories [get]
func (ctrl *StorefrontController) Categories(c *gin.Context) {
	categories, err := ctrl.storefront.Categories(c.Request.Context())
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Categories retrieved",
		Data:    categories,
	})
}
