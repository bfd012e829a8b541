package controllers

import (
	"MindWellGo/config"
	"MindWellGo/models"
	"MindWellGo/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthController issues development tokens. Real sign-in lives in the
// identity provider.
type AuthController struct {
	secret []byte
}

func NewAuthController(secret []byte) *AuthController {
	return &AuthController{secret: secret}
}

// CreateTestToken signs a token for the requested user id
func (ac *AuthController) CreateTestToken(c *gin.Context) {
	var req models.TestTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := utils.GenerateToken(ac.secret, req.UserID)
	if err != nil {
		config.Logger.Errorw("token generation failed", "error", err, "userId", req.UserID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	config.Logger.Infow("issued test token", "userId", req.UserID)
	c.JSON(http.StatusOK, models.TestTokenResponse{Token: token})
}
