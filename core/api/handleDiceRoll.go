package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/dryack/gDiceTable/core/dsl"
	"github.com/dryack/gDiceTable/core/statistics"
	"github.com/dryack/gDiceTable/core/store"
	"github.com/dryack/gDiceTable/core/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultIterations = 100000
	defaultStatsWait  = 2 * time.Second
)

func (s *Server) handleDiceRoll(c *gin.Context) {
	start := time.Now()

	encodedExpression := c.Query("expr")
	if encodedExpression == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing encoded dice expression"})
		return
	}

	expression, err := utils.DecodeExpression(encodedExpression)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expr, err := dsl.Parse(expression)
	if err != nil {
		abortWithError(c, err)
		return
	}

	roll, err := expr.Roll(s.source)
	if err != nil {
		abortWithError(c, err)
		return
	}

	stats, source := s.lookupStatistics(c.Request.Context(), expr)
	s.sendRollResponse(c, expr, roll, stats, source, time.Since(start))
}

// lookupStatistics serves the distribution of expr from the cache, then the
// database, then a fresh simulation, writing through on the way back.
func (s *Server) lookupStatistics(ctx context.Context, expr *dsl.Expression) (*statistics.Result, string) {
	key := expr.String()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err == nil {
			return cached.Statistics, "cache"
		}
		if !errors.Is(err, store.ErrMiss) {
			log.Printf("Cache error: %v", err)
		}
	}

	if s.db != nil {
		stored, err := s.db.Get(ctx, key)
		if err == nil {
			s.cacheResult(ctx, key, stored)
			return stored.Statistics, "database"
		}
		if !errors.Is(err, store.ErrMiss) {
			log.Printf("Database error: %v", err)
		}
	}

	iterations := s.config.Int("statistics.iterations")
	if iterations <= 0 {
		iterations = defaultIterations
	}
	wait := s.config.Duration("statistics.timeout")
	if wait <= 0 {
		wait = defaultStatsWait
	}
	seed := s.config.Int64("rng.seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	simCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()
	stats := statistics.MonteCarloSimulation(simCtx, statistics.ExpressionSimulation(expr), iterations, seed)

	// A cut-short run is served but not kept
	if stats.Samples+stats.Failed == iterations {
		result := &store.CachedResult{Expression: key, Statistics: stats}
		s.cacheResult(ctx, key, result)
		if s.db != nil {
			if err := s.db.Set(ctx, key, result); err != nil {
				log.Printf("Error setting database: %v", err)
			}
		}
	}
	return stats, "calculation"
}

func (s *Server) cacheResult(ctx context.Context, key string, result *store.CachedResult) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, result); err != nil {
		log.Printf("Error setting cache: %v", err)
	}
}

func (s *Server) sendRollResponse(c *gin.Context, expr *dsl.Expression, roll *dsl.Result, stats *statistics.Result, source string, duration time.Duration) {
	body := gin.H{
		"roll_id":          uuid.NewString(),
		"expression":       expr.Source,
		"canonical":        expr.String(),
		"result":           roll.Value,
		"breakdown":        roll.Breakdown(),
		"statistics":       stats,
		"source":           source,
		"request_duration": utils.FormatDuration(duration),
	}
	if lo, hi, ok := expr.Bounds(); ok {
		body["bounds"] = gin.H{"min": lo, "max": hi}
	}
	c.JSON(http.StatusOK, body)
}
