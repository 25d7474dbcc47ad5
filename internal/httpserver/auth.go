package httpserver

import (
	"net/http"
	"strings"

	"storefront/internal/domain"
	accountsvc "storefront/internal/service/account"

	"github.com/gin-gonic/gin"
)

const userContextKey = "authenticatedUser"

// authenticate resolves the Bearer token, if any, into the current user. An
// absent or invalid token leaves the request anonymous; route groups that
// need an identity layer requireAuth or requireAdmin on top.
func authenticate(accounts accountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}
		user, err := accounts.LookupByToken(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

func requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required."})
			return
		}
		c.Next()
	}
}

func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required."})
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required."})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, ok := v.(*domain.User)
	if !ok {
		return nil
	}
	return user
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func handleRegister(accounts accountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req accountsvc.RegisterInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
			return
		}
		user, err := accounts.Register(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message":  "User created successfully.",
			"username": user.Username,
			"email":    user.Email,
		})
	}
}

func handleLogin(accounts accountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
			return
		}
		user, token, err := accounts.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			if err == accountsvc.ErrInvalidCredentials {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password."})
				return
			}
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":  "Login successful.",
			"token":    token,
			"username": user.Username,
			"is_admin": user.IsAdmin,
		})
	}
}

func handleLogout(accounts accountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := accounts.Logout(c.Request.Context(), bearerToken(c)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out."})
	}
}

func handleProfile(accounts accountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		profile, err := accounts.Profile(c.Request.Context(), user.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profileJSON(profile))
	}
}

func handleUpdateProfile(accounts accountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		var req accountsvc.UpdateProfileInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
			return
		}
		profile, err := accounts.UpdateProfile(c.Request.Context(), user.ID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Profile updated.",
			"profile": profileJSON(profile),
		})
	}
}

func profileJSON(u *domain.User) gin.H {
	return gin.H{
		"username":    u.Username,
		"email":       u.Email,
		"first_name":  u.FirstName,
		"last_name":   u.LastName,
		"is_admin":    u.IsAdmin,
		"date_joined": u.CreatedAt.Format(joinedLayout),
	}
}
