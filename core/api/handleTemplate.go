package api

import (
	"net/http"

	"github.com/dryack/gDiceTable/core/diag"
	"github.com/dryack/gDiceTable/core/template"
	"github.com/gin-gonic/gin"
)

type templateRequest struct {
	Text   string         `json:"text" binding:"required"`
	Values map[string]any `json:"values"`
	// Strict fails the request on the first unresolved statement instead of
	// rendering a placeholder.
	Strict bool `json:"strict"`
}

func (s *Server) handleTemplate(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tmpl, err := template.Parse(req.Text)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	warnings := &diag.Collector{}
	ctx := template.Context{
		Values:   req.Values,
		Tables:   s.holder.Load(),
		Source:   s.source,
		Reporter: warnings,
	}
	if req.Strict {
		ctx.Reporter = diag.Raiser{}
	}

	out, err := tmpl.Evaluate(ctx)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"text":     out,
		"warnings": errorStrings(warnings.Errors),
	})
}
