package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Nshuti7/wholesome-ug-bn/internal/middleware"
	"github.com/Nshuti7/wholesome-ug-bn/internal/models"
)

func claimsFromContext(c *gin.Context) *models.SessionClaims {
	return middleware.CurrentClaims(c)
}

func requestMeta(c *gin.Context) models.RequestMeta {
	return models.RequestMeta{
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}
}
