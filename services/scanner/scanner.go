// Package scanner runs golden-ratio level analysis across many symbols
// with a worker pool and in-memory job tracking.
package scanner

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/consigcody94/golden-ratio-compendium/services/levels"
	"github.com/consigcody94/golden-ratio-compendium/services/market"
)

// CandleSource supplies the most recent candles for a symbol in ascending
// timestamp order.
type CandleSource interface {
	Candles(ctx context.Context, symbol string, limit int) ([]market.Candle, error)
}

// Config holds scanner tuning knobs. Zero values fall back to defaults.
type Config struct {
	Workers       int // worker goroutines per job, defaults to NumCPU
	SwingLookback int // swing window when a request omits one, defaults to 100
	CandleLimit   int // candles fetched per symbol, defaults to 500
}

// Service fans symbol scans out to a worker pool and tracks jobs in memory.
type Service struct {
	cfg    Config
	source CandleSource
	logger *zap.Logger

	mu   sync.RWMutex
	jobs map[string]*Job
}

// New creates a scanner backed by the given candle source.
func New(cfg Config, source CandleSource, logger *zap.Logger) *Service {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.SwingLookback < 2 {
		cfg.SwingLookback = 100
	}
	if cfg.CandleLimit <= 0 {
		cfg.CandleLimit = 500
	}
	return &Service{
		cfg:    cfg,
		source: source,
		logger: logger,
		jobs:   make(map[string]*Job),
	}
}

// Submit queues a scan and returns its job ID. Symbols are scanned
// asynchronously; poll Get for completion.
func (s *Service) Submit(req ScanRequest) (string, error) {
	if len(req.Symbols) == 0 {
		return "", fmt.Errorf("no symbols to scan")
	}

	job := &Job{
		ID:        uuid.New().String(),
		Status:    JobPending,
		Submitted: time.Now().UTC(),
	}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	s.logger.Info("scan submitted",
		zap.String("job_id", job.ID),
		zap.Strings("symbols", req.Symbols),
		zap.Int("lookback", req.Lookback),
	)

	go s.runJob(job, req)
	return job.ID, nil
}

// Get returns a copy of the job with the given ID.
func (s *Service) Get(id string) (*Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, false
	}
	cp := *job
	cp.Results = append([]SymbolResult(nil), job.Results...)
	return &cp, true
}

// Stats counts jobs by status.
func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var st Stats
	for _, job := range s.jobs {
		switch job.Status {
		case JobPending:
			st.Pending++
		case JobRunning:
			st.Running++
		case JobCompleted:
			st.Completed++
		case JobFailed:
			st.Failed++
		}
	}
	return st
}

// runJob executes a scan with parallel symbol processing.
func (s *Service) runJob(job *Job, req ScanRequest) {
	started := time.Now().UTC()
	s.mu.Lock()
	job.Status = JobRunning
	job.Started = started
	s.mu.Unlock()

	ctx := context.Background()
	lookback := req.Lookback
	if lookback < 2 {
		lookback = s.cfg.SwingLookback
	}

	// Channel for distributing symbols to workers
	symbolChan := make(chan string, len(req.Symbols))
	resultChan := make(chan SymbolResult, len(req.Symbols))

	var wg sync.WaitGroup
	for i := 0; i < s.cfg.Workers; i++ {
		wg.Add(1)
		go s.worker(ctx, i, lookback, symbolChan, resultChan, &wg)
	}

	for _, symbol := range req.Symbols {
		symbolChan <- symbol
	}
	close(symbolChan)

	wg.Wait()
	close(resultChan)

	results := make([]SymbolResult, 0, len(req.Symbols))
	failures := 0
	for r := range resultChan {
		if r.Error != "" {
			failures++
		}
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Symbol < results[j].Symbol })

	s.mu.Lock()
	job.Results = results
	job.Completed = time.Now().UTC()
	job.Status = JobCompleted
	if failures > 0 && failures == len(results) {
		job.Status = JobFailed
		job.Error = fmt.Sprintf("all %d symbols failed", failures)
	}
	s.mu.Unlock()

	s.logger.Info("scan completed",
		zap.String("job_id", job.ID),
		zap.Int("symbols", len(results)),
		zap.Int("failures", failures),
		zap.Duration("elapsed", time.Since(started)),
	)
}

// worker processes symbols until the channel drains. Per-symbol failures
// are recorded on the result, not returned.
func (s *Service) worker(ctx context.Context, workerID, lookback int, symbolChan <-chan string, resultChan chan<- SymbolResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for symbol := range symbolChan {
		s.logger.Debug("worker scanning symbol",
			zap.Int("worker_id", workerID),
			zap.String("symbol", symbol),
		)

		result, err := s.ScanSymbol(ctx, symbol, lookback)
		if err != nil {
			resultChan <- SymbolResult{Symbol: symbol, Error: err.Error()}
			continue
		}
		resultChan <- result
	}
}

// ScanSymbol loads candles for one symbol, detects its swing, and computes
// the full level analysis against the latest close.
func (s *Service) ScanSymbol(ctx context.Context, symbol string, lookback int) (SymbolResult, error) {
	if lookback < 2 {
		lookback = s.cfg.SwingLookback
	}

	candles, err := s.source.Candles(ctx, symbol, s.cfg.CandleLimit)
	if err != nil {
		return SymbolResult{Symbol: symbol}, fmt.Errorf("failed to load candles for %s: %w", symbol, err)
	}

	swing, err := market.DetectSwing(candles, lookback)
	if err != nil {
		return SymbolResult{Symbol: symbol}, fmt.Errorf("failed to detect swing for %s: %w", symbol, err)
	}

	analysis, err := levels.AllLevels(swing.High, swing.Low, swing.Trend)
	if err != nil {
		return SymbolResult{Symbol: symbol}, fmt.Errorf("failed to compute levels for %s: %w", symbol, err)
	}

	lastClose := candles[len(candles)-1].Close
	result := SymbolResult{
		Symbol:         symbol,
		Swing:          swing,
		Analysis:       analysis,
		LastClose:      lastClose,
		InGoldenPocket: analysis.Pocket.Contains(lastClose),
	}
	if nearest, dist, ok := levels.Nearest(lastClose, analysis.Retracements); ok {
		result.NearestLabel = nearest.Label
		result.NearestDistance = dist
	}
	return result, nil
}
