package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/gql"
)

// ProductHandler serves the same reads as the GraphQL schema over plain REST.
type ProductHandler struct {
	Products gql.ProductSource
}

func NewProductHandler(products gql.ProductSource) *ProductHandler {
	return &ProductHandler{Products: products}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.Products.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream failure: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProductById(c *gin.Context) {
	id := c.Param("id")

	product, err := h.Products.GetProduct(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream failure: " + err.Error()})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}
