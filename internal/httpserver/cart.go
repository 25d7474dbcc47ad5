package httpserver

import (
	"net/http"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"

	"github.com/gin-gonic/gin"
)

const sessionCookieMaxAge = 30 * 24 * 60 * 60

// resolveCart maps the request identity onto its cart. For guests the cart's
// anonymous id is written back as the session cookie so the cart survives
// across requests.
func resolveCart(c *gin.Context, carts cartService, cookieName string) (*domain.Cart, error) {
	ident := cartsvc.Identity{}
	if user := currentUser(c); user != nil {
		ident.UserID = user.ID
	}
	if sessionID, err := c.Cookie(cookieName); err == nil {
		ident.SessionID = sessionID
	}

	cart, err := carts.Resolve(c.Request.Context(), ident)
	if err != nil {
		return nil, err
	}
	if ident.UserID == "" && cart.AnonymousID != nil && *cart.AnonymousID != ident.SessionID {
		c.SetCookie(cookieName, *cart.AnonymousID, sessionCookieMaxAge, "/", "", false, true)
	}
	return cart, nil
}

type cartAddRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func handleCartAdd(carts cartService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cartAddRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}

		cart, err := resolveCart(c, carts, cookieName)
		if err != nil {
			respondError(c, err)
			return
		}
		product, count, err := carts.AddItem(c.Request.Context(), cart, req.ProductID, req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":    "Added " + product.Title + " to cart!",
			"cart_count": count,
		})
	}
}

func handleCartView(carts cartService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := resolveCart(c, carts, cookieName)
		if err != nil {
			respondError(c, err)
			return
		}
		view, err := carts.View(c.Request.Context(), cart)
		if err != nil {
			respondError(c, err)
			return
		}

		items := make([]gin.H, 0, len(view.Items))
		for _, line := range view.Items {
			items = append(items, gin.H{
				"id":            line.ItemID,
				"product_id":    line.ProductID,
				"product_name":  line.ProductTitle,
				"product_price": domain.Amount(line.PriceCents),
				"quantity":      line.Quantity,
				"item_total":    domain.Amount(line.PriceCents * int64(line.Quantity)),
			})
		}
		c.JSON(http.StatusOK, gin.H{
			"items":       items,
			"grand_total": domain.Amount(view.GrandTotalCents),
			"cart_count":  view.Count,
		})
	}
}

type cartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func handleCartItemUpdate(carts cartService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cartQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
			return
		}
		cart, err := resolveCart(c, carts, cookieName)
		if err != nil {
			respondError(c, err)
			return
		}
		count, err := carts.UpdateItem(c.Request.Context(), cart, c.Param("id"), req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":    "Item updated",
			"cart_count": count,
		})
	}
}

func handleCartItemDelete(carts cartService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := resolveCart(c, carts, cookieName)
		if err != nil {
			respondError(c, err)
			return
		}
		count, err := carts.RemoveItem(c.Request.Context(), cart, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":    "Item removed",
			"cart_count": count,
		})
	}
}

func handleCartClear(carts cartService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := resolveCart(c, carts, cookieName)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := carts.Clear(c.Request.Context(), cart); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":    "Cart cleared",
			"cart_count": 0,
		})
	}
}

type cartMergeRequest struct {
	Items []cartsvc.MergeLine `json:"items"`
}

func handleCartMerge(carts cartService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cartMergeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
			return
		}
		cart, err := resolveCart(c, carts, cookieName)
		if err != nil {
			respondError(c, err)
			return
		}
		merged, err := carts.Merge(c.Request.Context(), cart, req.Items)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":      "Cart merged",
			"merged_count": merged,
		})
	}
}
