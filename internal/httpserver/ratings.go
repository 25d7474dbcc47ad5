package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func handleProductRatings(ratings ratingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := ratings.ProductRatings(c.Request.Context(), c.Param("productID"))
		if err != nil {
			respondError(c, err)
			return
		}
		entries := make([]gin.H, 0, len(summary.Ratings))
		for _, r := range summary.Ratings {
			entries = append(entries, gin.H{
				"id":         r.ID,
				"username":   r.Username,
				"score":      r.Score,
				"review":     r.Review,
				"created_at": formatDate(r.CreatedAt),
			})
		}
		c.JSON(http.StatusOK, gin.H{
			"average": summary.Average,
			"count":   summary.Count,
			"ratings": entries,
		})
	}
}

func handleMyRating(ratings ratingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		mine, err := ratings.Mine(c.Request.Context(), c.Param("productID"), currentUser(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		out := gin.H{"has_purchased": mine.HasPurchased}
		if mine.Rating != nil {
			out["rating"] = gin.H{
				"score":  mine.Rating.Score,
				"review": mine.Rating.Review,
			}
		} else {
			out["rating"] = nil
		}
		c.JSON(http.StatusOK, out)
	}
}

type ratingRequest struct {
	Score  int    `json:"score"`
	Review string `json:"review"`
}

func handleSubmitRating(ratings ratingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ratingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
			return
		}
		res, err := ratings.Submit(c.Request.Context(), c.Param("productID"), currentUser(c).ID, req.Score, req.Review)
		if err != nil {
			respondError(c, err)
			return
		}

		status := http.StatusOK
		message := "Rating updated!"
		if res.Created {
			status = http.StatusCreated
			message = "Rating submitted!"
		}
		c.JSON(status, gin.H{
			"message":     message,
			"score":       res.Score,
			"review":      res.Review,
			"new_average": res.NewAverage,
		})
	}
}

func handleDeleteRating(ratings ratingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ratings.Delete(c.Request.Context(), c.Param("productID"), currentUser(c).ID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Rating removed."})
	}
}
