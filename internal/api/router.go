package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lm16688/AI-DAILY/internal/logger"
	"github.com/lm16688/AI-DAILY/internal/news"
	"github.com/lm16688/AI-DAILY/internal/publisher"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DigestSource 提供最近一次运行的结果
type DigestSource interface {
	Latest(ctx context.Context) (*news.Digest, error)
}

type Server struct {
	source DigestSource
	logger *slog.Logger
}

func NewServer(source DigestSource, l *slog.Logger) *Server {
	return &Server{source: source, logger: logger.OrDefault(l)}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/news", s.listNews)
		v1.GET("/meta", s.meta)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listNews(c *gin.Context) {
	category := news.Category(c.Query("category"))
	if category != "" && !category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "invalid_category",
			"message": "category must be one of research, tools, industry, safety, news",
		})
		return
	}
	hotOnly, _ := strconv.ParseBool(c.DefaultQuery("hot", "false"))

	limit := 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	d, ok := s.latest(c)
	if !ok {
		return
	}
	items := d.Filter(category, hotOnly)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    items,
	})
}

func (s *Server) meta(c *gin.Context) {
	d, ok := s.latest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    d.Meta,
	})
}

func (s *Server) latest(c *gin.Context) (*news.Digest, bool) {
	d, err := s.source.Latest(c.Request.Context())
	if errors.Is(err, publisher.ErrNoDigest) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"code":    "not_ready",
			"message": "no digest has been published yet",
		})
		return nil, false
	}
	if err != nil {
		s.logger.Error("read latest digest failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return nil, false
	}
	return d, true
}
