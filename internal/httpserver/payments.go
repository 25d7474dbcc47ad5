package httpserver

import (
	"net/http"

	"storefront/internal/domain"
	checkoutsvc "storefront/internal/service/checkout"

	"github.com/gin-gonic/gin"
)

// submitItemRequest accepts the two payload shapes the frontend sends: flat
// snapshot fields, or a nested product object.
type submitItemRequest struct {
	ProductID    string  `json:"product_id"`
	ID           string  `json:"id"`
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	Quantity     int     `json:"quantity"`
	Product      *struct {
		Title string  `json:"title"`
		Price float64 `json:"price"`
	} `json:"product"`
}

func (r submitItemRequest) normalize() checkoutsvc.SubmitItem {
	item := checkoutsvc.SubmitItem{
		ProductID: r.ProductID,
		Name:      r.ProductName,
		Price:     r.ProductPrice,
		Quantity:  r.Quantity,
	}
	if item.ProductID == "" {
		item.ProductID = r.ID
	}
	if r.Product != nil {
		if item.Name == "" {
			item.Name = r.Product.Title
		}
		if item.Price == 0 {
			item.Price = r.Product.Price
		}
	}
	return item
}

type paymentSubmitRequest struct {
	TransactionID string              `json:"transaction_id"`
	TotalAmount   float64             `json:"total_amount"`
	Items         []submitItemRequest `json:"items"`
}

func handlePaymentSubmit(checkout checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req paymentSubmitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
			return
		}

		in := checkoutsvc.SubmitInput{
			UserID:        currentUser(c).ID,
			TransactionID: req.TransactionID,
			TotalAmount:   req.TotalAmount,
			Items:         make([]checkoutsvc.SubmitItem, 0, len(req.Items)),
		}
		for _, item := range req.Items {
			in.Items = append(in.Items, item.normalize())
		}

		res, err := checkout.Submit(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message":    "Order placed! Verification takes 5-10 minutes.",
			"payment_id": res.PaymentID,
			"order_id":   res.OrderID,
			"status":     res.Status,
		})
	}
}

func handlePaymentHistory(checkout checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		payments, err := checkout.History(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		out := make([]gin.H, 0, len(payments))
		for i := range payments {
			out = append(out, paymentJSON(&payments[i], true))
		}
		c.JSON(http.StatusOK, out)
	}
}

func handlePaymentsAll(checkout checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		payments, err := checkout.All(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		out := make([]gin.H, 0, len(payments))
		for i := range payments {
			entry := paymentJSON(&payments[i], false)
			entry["username"] = payments[i].Username
			out = append(out, entry)
		}
		c.JSON(http.StatusOK, out)
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

func handlePaymentStatus(checkout checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
			return
		}
		if err := checkout.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Payment status updated.",
			"status":  req.Status,
		})
	}
}

func paymentJSON(p *domain.Payment, withItems bool) gin.H {
	out := gin.H{
		"id":             p.ID,
		"transaction_id": p.TransactionID,
		"total_amount":   domain.Amount(p.TotalCents),
		"status":         p.Status,
		"created_at":     formatTimestamp(p.CreatedAt),
	}
	if withItems {
		items := make([]gin.H, 0, len(p.Items))
		for _, item := range p.Items {
			items = append(items, gin.H{
				"product_name":  item.Name,
				"product_price": domain.Amount(item.PriceCents),
				"quantity":      item.Quantity,
				"item_total":    domain.Amount(item.PriceCents * int64(item.Quantity)),
			})
		}
		out["items"] = items
	}
	return out
}
