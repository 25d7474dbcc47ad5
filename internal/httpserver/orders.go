package httpserver

import (
	"net/http"

	"storefront/internal/domain"
	ordersvc "storefront/internal/service/order"

	"github.com/gin-gonic/gin"
)

func handleOrderHistory(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := orders.History(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		out := make([]gin.H, 0, len(list))
		for i := range list {
			o := &list[i]
			items := make([]gin.H, 0, len(o.Items))
			for _, item := range o.Items {
				items = append(items, gin.H{
					"product_name":  item.Name,
					"product_price": domain.Amount(item.PriceCents),
					"quantity":      item.Quantity,
					"item_total":    domain.Amount(item.PriceCents * int64(item.Quantity)),
				})
			}
			out = append(out, gin.H{
				"id":             o.ID,
				"transaction_id": o.TransactionID,
				"total_amount":   domain.Amount(o.TotalCents),
				"status":         o.Status,
				"created_at":     formatTimestamp(o.CreatedAt),
				"items":          items,
			})
		}
		c.JSON(http.StatusOK, out)
	}
}

type orderCreateRequest struct {
	TransactionID string              `json:"transaction_id"`
	TotalAmount   float64             `json:"total_amount"`
	Items         []submitItemRequest `json:"items"`
}

func handleOrderCreate(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orderCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
			return
		}

		in := ordersvc.CreateInput{
			UserID:        currentUser(c).ID,
			TransactionID: req.TransactionID,
			TotalAmount:   req.TotalAmount,
			Items:         make([]ordersvc.CreateItem, 0, len(req.Items)),
		}
		for _, item := range req.Items {
			norm := item.normalize()
			in.Items = append(in.Items, ordersvc.CreateItem{
				ProductID: norm.ProductID,
				Name:      norm.Name,
				Price:     norm.Price,
				Quantity:  norm.Quantity,
			})
		}

		order, err := orders.Create(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message":  "Order created successfully.",
			"order_id": order.ID,
		})
	}
}

func handleOrdersAll(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := orders.All(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		out := make([]gin.H, 0, len(list))
		for i := range list {
			o := &list[i]
			out = append(out, gin.H{
				"id":             o.ID,
				"username":       o.Username,
				"transaction_id": o.TransactionID,
				"total_amount":   domain.Amount(o.TotalCents),
				"status":         o.Status,
				"item_count":     o.ItemCount,
				"created_at":     formatTimestamp(o.CreatedAt),
			})
		}
		c.JSON(http.StatusOK, out)
	}
}

func handleOrderStatus(orders orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
			return
		}
		if err := orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Order status updated.",
			"status":  req.Status,
		})
	}
}
