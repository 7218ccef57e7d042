package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"retail-hub/middleware"
	"retail-hub/models"
	"retail-hub/services"
)

type ProductController struct {
	products *services.ProductService
	admin    *services.AdminService
	log      *zap.Logger
}

func NewProductController(products *services.ProductService, admin *services.AdminService, log *zap.Logger) *ProductController {
	return &ProductController{products: products, admin: admin, log: log}
}

// @Summary Get all products
// @Description Get every product in the catalog
// @Tags Products
// @Produce json
// @Success 200 {object} models.Response
// @Failure 503 {object} models.ErrorResponse
// @Router /products [get]
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	products, err := ctrl.products.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Products retrieved",
		Data:    products,
	})
}

// @Summary Get product by SKU
// @Tags Products
// @Produce json
// @Param sku path string true "Product SKU"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{sku} [get]
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	product, err := ctrl.products.GetProduct(c.Request.Context(), c.Param("sku"))
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

// @Summary Create product
// @Description Create a product. A SKU is generated from the name when none is given.
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateProductRequest true "Product"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	principal, _ := middleware.GetPrincipal(c)
	product, err := ctrl.admin.CreateProduct(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Product created",
		Data:    product,
	})
}

// @Summary Update product
// @Description Partially update a product. The SKU in the body is ignored.
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sku path string true "Product SKU"
// @Param request body models.UpdateProductRequest true "Fields to change"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /products/{sku} [put]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	principal, _ := middleware.GetPrincipal(c)
	product, err := ctrl.admin.UpdateProduct(c.Request.Context(), principal, c.Param("sku"), req)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product updated",
		Data:    product,
	})
}

// @Summary Delete product
// @Description Hard-delete a product. Requires confirm=true.
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param sku path string true "Product SKU"
// @Param confirm query bool true "Confirm deletion"
// @Success 200 {object} models.DeleteResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 428 {object} models.ErrorResponse
// @Router /products/{sku} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)
	confirmed := c.Query("confirm") == "true"

	deleted, err := ctrl.admin.DeleteProduct(c.Request.Context(), principal, c.Param("sku"), confirmed)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}

	c.JSON(http.StatusOK, models.DeleteResponse{
		Success:      true,
		DeletedCount: deleted,
	})
}

// @Summary Upload product image
// @Tags Products
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param sku path string true "Product SKU"
// @Param image formData file true "Product image"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{sku}/image [post]
func (ctrl *ProductController) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		badRequest(c, err)
		return
	}

	principal, _ := middleware.GetPrincipal(c)
	product, err := ctrl.admin.UploadProductImage(c.Request.Context(), principal, c.Param("sku"), file)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product image uploaded",
		Data:    product,
	})
}

// @Summary Save product from the admin editor
// @Description Create when editing is empty, otherwise update, and return the refreshed catalog.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param editing query string false "SKU being edited"
// @Param request body models.UpdateProductRequest true "Product form"
// @Success 200 {object} models.Response
// @Router /admin/products/workspace [post]
func (ctrl *ProductController) SaveProduct(c *gin.Context) {
	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	principal, _ := middleware.GetPrincipal(c)
	workspace, err := ctrl.admin.SaveProduct(c.Request.Context(), principal, c.Query("editing"), req)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product saved",
		Data:    workspace,
	})
}
