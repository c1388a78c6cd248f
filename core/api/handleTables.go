package api

import (
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/dryack/gDiceTable/core/diag"
	"github.com/dryack/gDiceTable/core/table"
	"github.com/dryack/gDiceTable/core/template"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleListTables(c *gin.Context) {
	reg := s.holder.Load()
	names := make([]string, 0, len(reg))
	for name := range reg {
		names = append(names, name)
	}
	sort.Strings(names)
	c.JSON(http.StatusOK, gin.H{"tables": names})
}

func (s *Server) handlePickTable(c *gin.Context) {
	name := c.Param("name")
	reg := s.holder.Load()

	pick, err := reg.Pick(name, s.source)
	if err != nil {
		abortWithError(c, err)
		return
	}

	warnings := &diag.Collector{}
	rows := make([]gin.H, 0, len(pick.Rows))
	rendered := make([]string, 0, len(pick.Rows))
	for _, row := range pick.Rows {
		text := row.Description
		if tmpl, err := template.Parse(row.Description); err != nil {
			warnings.Errors = append(warnings.Errors, err)
		} else if text, err = tmpl.Evaluate(template.Context{Tables: reg, Source: s.source, Reporter: warnings}); err != nil {
			abortWithError(c, err)
			return
		}
		rows = append(rows, gin.H{"description": row.Description, "rendered": text, "subtable": row.Subtable})
		rendered = append(rendered, text)
	}

	c.JSON(http.StatusOK, gin.H{
		"table":    pick.Table,
		"rows":     rows,
		"text":     strings.Join(rendered, " "),
		"warnings": errorStrings(warnings.Errors),
	})
}

func (s *Server) handleUploadTables(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	problems := &diag.Collector{}
	tables, err := table.Decode(data, problems, s.holder.Load())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(problems.Errors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table document", "problems": errorStrings(problems.Errors)})
		return
	}

	ids := make([]string, 0, len(tables))
	for _, t := range tables {
		if s.tables != nil {
			if err := s.tables.Save(c.Request.Context(), t); err != nil {
				log.Printf("Error saving table %q: %v", t.ID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save table " + t.ID})
				return
			}
		}
		s.holder.Upsert(t)
		ids = append(ids, t.ID)
	}

	log.Printf("%s uploaded tables %v", c.GetString("subject"), ids)
	c.JSON(http.StatusCreated, gin.H{"tables": ids})
}
