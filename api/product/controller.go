package product

import (
	"net/http"

	"github.com/turkcell/product-service/api/response"
	productapp "github.com/turkcell/product-service/application/product"

	"github.com/gin-gonic/gin"
)

// Controller exposes the product catalog over REST.
type Controller struct {
	commandService *productapp.CommandService
	queryService   *productapp.QueryService
}

func NewController(commandService *productapp.CommandService, queryService *productapp.QueryService) *Controller {
	return &Controller{
		commandService: commandService,
		queryService:   queryService,
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	productGroup := router.Group("/products")
	{
		productGroup.POST("", c.CreateProduct)
		productGroup.GET("", c.ListProducts)
		productGroup.GET("/:id", c.GetProduct)
		productGroup.PUT("/:id", c.UpdateProduct)
		productGroup.DELETE("/:id", c.DeleteProduct)
	}
}

// CreateProduct handles POST /products.
func (c *Controller) CreateProduct(ctx *gin.Context) {
	var req productapp.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	resp, err := c.commandService.CreateProduct(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, resp, "Product created successfully")
}

// GetProduct handles GET /products/:id.
func (c *Controller) GetProduct(ctx *gin.Context) {
	resp, err := c.queryService.GetProductByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, resp, "Product retrieved successfully")
}

// ListProducts handles GET /products with page, size, sort_by and
// sort_dir query parameters.
func (c *Controller) ListProducts(ctx *gin.Context) {
	var req productapp.ListProductsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleError(ctx, err, "Invalid pagination parameters", http.StatusBadRequest)
		return
	}

	page, err := c.queryService.ListProducts(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, page.Items, response.Pagination{
		Page:       page.Page,
		PageSize:   page.Size,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}, "Products retrieved successfully")
}

// UpdateProduct handles PUT /products/:id. The payload must carry the
// version the client last read; a stale version yields 409.
func (c *Controller) UpdateProduct(ctx *gin.Context) {
	var req productapp.UpdateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	resp, err := c.commandService.UpdateProduct(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, resp, "Product updated successfully")
}

// DeleteProduct handles DELETE /products/:id.
func (c *Controller) DeleteProduct(ctx *gin.Context) {
	if err := c.commandService.DeleteProduct(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleNoContent(ctx)
}
