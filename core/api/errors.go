package api

import (
	"errors"
	"net/http"

	"github.com/dryack/gDiceTable/core/dsl"
	"github.com/dryack/gDiceTable/core/table"
	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case dsl.IsParseError(err):
		return http.StatusBadRequest
	case errors.Is(err, table.ErrTableNotFound):
		return http.StatusNotFound
	case dsl.IsEvalError(err), errors.Is(err, table.ErrSubtableDepth), errors.Is(err, table.ErrEmptyTable):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func errorStrings(errs []error) []string {
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}
