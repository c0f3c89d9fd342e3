package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pharmacare/showcase/internal/catalog"
	"github.com/pharmacare/showcase/internal/model"
)

func (s *Server) handleHealth(c *gin.Context) {
	counts, err := s.store.TableRowCounts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read health metrics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"uptime":     time.Since(s.startTime).String(),
		"products":   counts["products"],
		"categories": counts["categories"],
	})
}

func (s *Server) handleSchema(c *gin.Context) {
	tables, err := s.store.ExecuteQuery(
		"SELECT table_name, column_name, data_type FROM information_schema.columns WHERE table_schema = 'main' ORDER BY table_name, ordinal_position",
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read schema metadata"})
		return
	}

	schema := make(map[string][]map[string]string)
	for _, row := range tables {
		tableName := fmt.Sprintf("%v", row["table_name"])
		schema[tableName] = append(schema[tableName], map[string]string{
			"column": fmt.Sprintf("%v", row["column_name"]),
			"type":   fmt.Sprintf("%v", row["data_type"]),
		})
	}

	counts, err := s.store.TableRowCounts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read table row counts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"description": s.store.GetSchemaDescription(),
		"tables":      schema,
		"row_counts":  counts,
	})
}

func (s *Server) handleQuery(c *gin.Context) {
	var req struct {
		SQL string `json:"sql" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body or missing sql field"})
		return
	}

	results, err := s.store.ExecuteQuery(req.SQL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var columns []string
	if len(results) > 0 {
		for col := range results[0] {
			columns = append(columns, col)
		}
		sort.Strings(columns)
	}

	c.JSON(http.StatusOK, gin.H{
		"columns":   columns,
		"rows":      results,
		"row_count": len(results),
	})
}

func (s *Server) handleCategories(c *gin.Context) {
	cats, err := s.store.Categories()
	if err != nil {
		s.internalError(c, "Categories", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

func (s *Server) handleProducts(c *gin.Context) {
	q := model.ProductQuery{
		Category: c.Query("category"),
		Search:   c.Query("q"),
	}
	products, err := s.store.Products(q)
	if err != nil {
		s.internalError(c, "Products", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

func (s *Server) handleFeatured(c *gin.Context) {
	products, err := s.store.Featured()
	if err != nil {
		s.internalError(c, "Featured", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

func (s *Server) handleTrending(c *gin.Context) {
	s.handleLane(c, "Trending", s.store.Trending)
}

func (s *Server) handleDiscounted(c *gin.Context) {
	s.handleLane(c, "Discounted", s.store.Discounted)
}

func (s *Server) handleLane(c *gin.Context, op string, fetch func(limit int) ([]model.Product, error)) {
	limit := model.DefaultLaneSize
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	products, err := fetch(limit)
	if err != nil {
		s.internalError(c, op, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

func (s *Server) handleProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product id must be an integer"})
		return
	}
	p, err := s.store.Product(id)
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		s.internalError(c, "Product", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": p})
}

func (s *Server) internalError(c *gin.Context, op string, err error) {
	s.log.Error().Err(err).Str("op", op).Msg("Catalog query failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog query failed"})
}
