package api

import (
	"net/http"

	"github.com/dryack/gDiceTable/core/utils"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleEncodeExpression(c *gin.Context) {
	expression := c.Query("expression")
	if expression == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing dice expression"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"original": expression,
		"encoded":  utils.EncodeExpression(expression),
	})
}
