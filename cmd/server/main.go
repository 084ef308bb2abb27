// Package main implements the golden ratio HTTP service: constants, Fibonacci
// computation, design scales, level analysis, and multi-symbol scans.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/consigcody94/golden-ratio-compendium/services/arrowexport"
	"github.com/consigcody94/golden-ratio-compendium/services/clickhouse"
	"github.com/consigcody94/golden-ratio-compendium/services/design"
	"github.com/consigcody94/golden-ratio-compendium/services/fibonacci"
	"github.com/consigcody94/golden-ratio-compendium/services/levels"
	"github.com/consigcody94/golden-ratio-compendium/services/phi"
	"github.com/consigcody94/golden-ratio-compendium/services/scanner"
)

const version = "1.0.0"

// Config via env
type serverCfg struct {
	Port          int
	Workers       int
	SwingLookback int
	CandleLimit   int
}

func mustEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v, err := strconv.Atoi(mustEnv(k, strconv.Itoa(def)))
	if err != nil {
		return def
	}
	return v
}

func loadCfg() serverCfg {
	return serverCfg{
		Port:          envInt("HTTP_PORT", 8080),
		Workers:       envInt("SCAN_WORKERS", 0),
		SwingLookback: envInt("SWING_LOOKBACK", 100),
		CandleLimit:   envInt("CANDLE_LIMIT", 500),
	}
}

// service wires the HTTP handlers to the scanner and candle store. The
// store is optional: without it the scan endpoints answer 503 while the
// pure-math endpoints keep working.
type service struct {
	cfg     serverCfg
	logger  *zap.Logger
	store   *clickhouse.Store
	scanner *scanner.Service
	started time.Time
}

func newService(cfg serverCfg, logger *zap.Logger) *service {
	s := &service{cfg: cfg, logger: logger, started: time.Now()}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := clickhouse.Open(ctx, clickhouse.FromEnv())
	if err != nil {
		logger.Warn("candle store unavailable, scan endpoints disabled",
			zap.String("reason", clickhouse.ExplainError(err)),
		)
		return s
	}
	if err := store.EnsureSchema(ctx); err != nil {
		logger.Warn("schema setup failed, scan endpoints disabled",
			zap.String("reason", clickhouse.ExplainError(err)),
		)
		store.Close()
		return s
	}

	s.store = store
	s.scanner = scanner.New(scanner.Config{
		Workers:       cfg.Workers,
		SwingLookback: cfg.SwingLookback,
		CandleLimit:   cfg.CandleLimit,
	}, store, logger)
	return s
}

func (s *service) setupHTTPRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/info", s.handleInfo)
		api.GET("/fibonacci", s.handleFibonacci)
		api.POST("/levels", s.handleLevels)
		api.GET("/scale", s.handleScale)
		api.POST("/scan", s.handleScan)
		api.GET("/scan/:job_id", s.handleScanResult)
		api.GET("/export/levels", s.handleExportLevels)
		api.GET("/health", s.handleHealthCheck)
		api.GET("/metrics", s.handleMetrics)
	}
}

func (s *service) handleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"phi":              phi.Phi,
		"psi":              phi.Psi,
		"inverse_phi":      phi.InvPhi,
		"golden_angle_rad": phi.GoldenAngle,
		"golden_angle_deg": phi.GoldenAngleDegrees,
	})
}

func (s *service) handleFibonacci(c *gin.Context) {
	n, err := strconv.Atoi(c.Query("n"))
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "n must be a non-negative integer"})
		return
	}

	algorithm := c.DefaultQuery("algorithm", "iterative")
	var value string
	switch algorithm {
	case "iterative":
		if n > 93 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "n above 93 overflows 64 bits; use algorithm=matrix or doubling"})
			return
		}
		value = strconv.FormatUint(fibonacci.Iterative(n), 10)
	case "binet":
		if n > 70 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "binet is exact only up to n=70"})
			return
		}
		value = strconv.FormatUint(fibonacci.NthBinet(n), 10)
	case "matrix":
		value = fibonacci.Matrix(n).String()
	case "doubling":
		value = fibonacci.FastDoubling(n).String()
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown algorithm %q", algorithm)})
		return
	}

	resp := gin.H{
		"n":         n,
		"algorithm": algorithm,
		"value":     value,
		"digits":    len(value),
	}
	if c.Query("sequence") == "true" {
		if n > 93 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sequence output is limited to n <= 93"})
			return
		}
		resp["sequence"] = fibonacci.Sequence(n)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *service) handleLevels(c *gin.Context) {
	var req struct {
		High  decimal.Decimal `json:"high"`
		Low   decimal.Decimal `json:"low"`
		Trend string          `json:"trend"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trend := levels.TrendUp
	if req.Trend != "" {
		var err error
		trend, err = levels.ParseTrend(req.Trend)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	analysis, err := levels.AllLevels(req.High, req.Low, trend)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (s *service) handleScale(c *gin.Context) {
	base, err := strconv.ParseFloat(c.DefaultQuery("base", "16"), 64)
	if err != nil || base <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "base must be a positive number"})
		return
	}
	width, err := strconv.ParseFloat(c.DefaultQuery("width", "1200"), 64)
	if err != nil || width <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "width must be a positive number"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"base":        base,
		"typography":  design.TypeScale(base, 6),
		"spacing":     design.SpacingScale(base, 4, 3),
		"layout":      design.LayoutDivisions(width),
		"line_height": design.LineHeight(base, 65),
	})
}

func (s *service) handleScan(c *gin.Context) {
	if s.scanner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "candle store unavailable"})
		return
	}

	var req scanner.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := s.scanner.Submit(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"job_id": id})
}

func (s *service) handleScanResult(c *gin.Context) {
	if s.scanner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "candle store unavailable"})
		return
	}

	jobID := c.Param("job_id")
	job, ok := s.scanner.Get(jobID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown job %q", jobID)})
		return
	}
	c.JSON(http.StatusOK, job)
}

func (s *service) handleExportLevels(c *gin.Context) {
	high, err := decimal.NewFromString(c.Query("high"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid high"})
		return
	}
	low, err := decimal.NewFromString(c.Query("low"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid low"})
		return
	}
	trend := levels.TrendUp
	if t := c.Query("trend"); t != "" {
		trend, err = levels.ParseTrend(t)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	analysis, err := levels.AllLevels(high, low, trend)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	symbol := c.DefaultQuery("symbol", "UNKNOWN")
	data, err := arrowexport.EncodeIPC(arrowexport.LevelsRecord(symbol, analysis))
	if err != nil {
		s.logger.Error("arrow export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/vnd.apache.arrow.stream", data)
}

func (s *service) handleHealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"version":   version,
	})
}

func (s *service) handleMetrics(c *gin.Context) {
	resp := gin.H{
		"uptime_seconds": int64(time.Since(s.started).Seconds()),
		"store":          s.store != nil,
	}
	if s.scanner != nil {
		resp["jobs"] = s.scanner.Stats()
	}
	c.JSON(http.StatusOK, resp)
}

func main() {
	cfg := loadCfg()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting golden ratio service",
		zap.String("version", version),
		zap.Int("port", cfg.Port),
	)

	svc := newService(cfg, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	svc.setupHTTPRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to serve HTTP", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
	if svc.store != nil {
		svc.store.Close()
	}
	logger.Info("Server stopped")
}
