package httpserver

import (
	"net/http"
	"strconv"

	"storefront/internal/domain"
	catalogsvc "storefront/internal/service/catalog"

	"github.com/gin-gonic/gin"
)

func handleListProducts(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		in := catalogsvc.ListInput{
			Category: c.Query("category"),
			Search:   c.Query("search"),
			Ordering: c.Query("ordering"),
		}
		if v := c.Query("min_price"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				in.MinPrice = &f
			}
		}
		if v := c.Query("max_price"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				in.MaxPrice = &f
			}
		}

		products, err := catalog.List(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		out := make([]gin.H, 0, len(products))
		for i := range products {
			out = append(out, productJSON(&products[i]))
		}
		c.JSON(http.StatusOK, out)
	}
}

func handleGetProduct(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := catalog.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, productJSON(product))
	}
}

func handleCreateProduct(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalogsvc.UpsertInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
			return
		}
		product, err := catalog.Create(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, productJSON(product))
	}
}

func handleUpdateProduct(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalogsvc.UpsertInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
			return
		}
		product, err := catalog.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, productJSON(product))
	}
}

func handleDeleteProduct(catalog catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted."})
	}
}

func productJSON(p *domain.Product) gin.H {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return gin.H{
		"id":          p.ID,
		"title":       p.Title,
		"description": p.Description,
		"price":       domain.Amount(p.PriceCents),
		"category":    p.Category,
		"image":       p.ImageURL,
		"rating":      p.Rating,
		"images":      images,
	}
}
