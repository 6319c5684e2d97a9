package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var loadRegions = []models.Region{
	models.RegionEAP, models.RegionECA, models.RegionHIC, models.RegionLAC,
	models.RegionMENA, models.RegionSA, models.RegionSSA,
}

type loadOptions struct {
	apiURL      string
	username    string
	requests    int
	workers     int
	rps         int
	burst       int
	cards       int
	ips         int
	minAmount   int64
	maxAmount   int64
	httpTimeout time.Duration
}

type loadTxn struct {
	Amount int64  `json:"amount"`
	IP     string `json:"ip"`
	Number string `json:"number"`
	Region string `json:"region"`
	Date   string `json:"date"`
}

// loadGenerator replays synthetic transactions against a running API at a bounded rate.
// Small card and IP pools make correlation verdicts appear under load.
type loadGenerator struct {
	opts    loadOptions
	limiter *rate.Limiter
	client  *http.Client
	logger  *zap.Logger
	cards   []string
	ips     []string

	sent    int64
	ok      int64
	fail    int64
	results sync.Map // verdict -> *int64
}

func loadCmd(logger *zap.Logger) *cobra.Command {
	var opts loadOptions
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Send synthetic transactions to a running API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.rps <= 0 {
				return fmt.Errorf("rps must be positive")
			}
			if opts.minAmount > opts.maxAmount {
				opts.minAmount, opts.maxAmount = opts.maxAmount, opts.minAmount
			}
			if opts.minAmount <= 0 {
				return fmt.Errorf("min amount must be positive")
			}
			if opts.burst <= 0 {
				opts.burst = opts.rps
			}
			g := newLoadGenerator(logger, opts)

			start := time.Now()
			g.Run(cmd.Context())
			logger.Info("load_completed",
				zap.Duration("duration", time.Since(start)),
				zap.Int64("sent", g.sent),
				zap.Int64("success", g.ok),
				zap.Int64("failed", g.fail),
			)
			g.results.Range(func(k, v any) bool {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%d\n", k, atomic.LoadInt64(v.(*int64)))
				return true
			})
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.apiURL, "url", "http://localhost:8080", "anti-fraud API base URL")
	cmd.Flags().StringVar(&opts.username, "username", "merchant_1", "value sent in the X-Username header")
	cmd.Flags().IntVar(&opts.requests, "requests", 100, "total number of transactions")
	cmd.Flags().IntVar(&opts.workers, "workers", 10, "max in-flight requests")
	cmd.Flags().IntVar(&opts.rps, "rps", 50, "global requests-per-second limit")
	cmd.Flags().IntVar(&opts.burst, "burst", 0, "limiter burst (0 => equals rps)")
	cmd.Flags().IntVar(&opts.cards, "cards", 20, "distinct card numbers")
	cmd.Flags().IntVar(&opts.ips, "ips", 50, "distinct client IPs")
	cmd.Flags().Int64Var(&opts.minAmount, "min-amount", 1, "minimum transaction amount")
	cmd.Flags().Int64Var(&opts.maxAmount, "max-amount", 2000, "maximum transaction amount")
	cmd.Flags().DurationVar(&opts.httpTimeout, "timeout", 4*time.Second, "HTTP client timeout")
	return cmd
}

func newLoadGenerator(logger *zap.Logger, opts loadOptions) *loadGenerator {
	g := &loadGenerator{
		opts:    opts,
		limiter: rate.NewLimiter(rate.Limit(opts.rps), opts.burst),
		logger:  logger,
		client: &http.Client{
			Timeout: opts.httpTimeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConnsPerHost: opts.workers,
				IdleConnTimeout:     30 * time.Second,
				DialContext: (&net.Dialer{
					Timeout:   3 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
			},
		},
	}
	for i := 0; i < max(opts.cards, 1); i++ {
		g.cards = append(g.cards, luhnComplete(fmt.Sprintf("400000%09d", rand.Intn(1_000_000_000))))
	}
	for i := 0; i < max(opts.ips, 1); i++ {
		g.ips = append(g.ips, fmt.Sprintf("10.%d.%d.%d", rand.Intn(256), rand.Intn(256), 1+rand.Intn(254)))
	}
	return g
}

func (g *loadGenerator) Run(ctx context.Context) {
	jobs := make(chan loadTxn, min(g.opts.requests, 10000))

	stopProg := make(chan struct{})
	var progWG sync.WaitGroup
	progWG.Add(1)
	go func() {
		defer progWG.Done()
		t := time.NewTicker(time.Second)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-stopProg:
				return
			case <-t.C:
				g.logger.Info("progress_tick",
					zap.Int64("sent", atomic.LoadInt64(&g.sent)),
					zap.Int64("success", atomic.LoadInt64(&g.ok)),
					zap.Int64("failed", atomic.LoadInt64(&g.fail)),
				)
			}
		}
	}()

	var workersWG sync.WaitGroup
	workersWG.Add(g.opts.workers)
	for i := 0; i < g.opts.workers; i++ {
		go func() {
			defer workersWG.Done()
			for j := range jobs {
				if err := g.limiter.Wait(ctx); err != nil {
					g.logger.Warn("limiter_wait_interrupted", zap.Error(err))
					return
				}
				g.send(ctx, j)
			}
		}()
	}

	// transactions move forward in time so the correlation window slides
	clock := time.Now().UTC().Add(-time.Hour)
enqueue:
	for i := 0; i < g.opts.requests; i++ {
		clock = clock.Add(time.Duration(rand.Intn(60)) * time.Second)
		txn := loadTxn{
			Amount: g.opts.minAmount + rand.Int63n(g.opts.maxAmount-g.opts.minAmount+1),
			IP:     g.ips[rand.Intn(len(g.ips))],
			Number: g.cards[rand.Intn(len(g.cards))],
			Region: string(loadRegions[rand.Intn(len(loadRegions))]),
			Date:   clock.Format("2006-01-02T15:04:05"),
		}
		select {
		case <-ctx.Done():
			break enqueue
		case jobs <- txn:
		}
	}

	close(jobs)
	workersWG.Wait()
	close(stopProg)
	progWG.Wait()
}

func (g *loadGenerator) send(ctx context.Context, txn loadTxn) {
	start := time.Now()
	atomic.AddInt64(&g.sent, 1)

	body, _ := json.Marshal(txn)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.opts.apiURL+"/api/antifraud/transaction", bytes.NewReader(body))
	if err != nil {
		atomic.AddInt64(&g.fail, 1)
		g.logger.Error("build_request_failed", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(pkg.HeaderRequestId, uuid.New().String())
	req.Header.Set(pkg.HeaderUsername, g.opts.username)

	resp, err := g.client.Do(req)
	if err != nil {
		atomic.AddInt64(&g.fail, 1)
		g.logger.Error("api_call_failed", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	traceID := resp.Header.Get(pkg.HeaderTraceId)
	if resp.StatusCode != http.StatusOK {
		atomic.AddInt64(&g.fail, 1)
		g.logger.Error("api_call_failed",
			zap.String(pkg.TraceId, traceID),
			zap.Int("status_code", resp.StatusCode),
			zap.Duration("latency", time.Since(start)),
		)
		return
	}

	var verdict struct {
		Result string `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		atomic.AddInt64(&g.fail, 1)
		g.logger.Error("decode_response_failed", zap.String(pkg.TraceId, traceID), zap.Error(err))
		return
	}
	atomic.AddInt64(&g.ok, 1)
	counter, _ := g.results.LoadOrStore(verdict.Result, new(int64))
	atomic.AddInt64(counter.(*int64), 1)
}

// luhnComplete appends the check digit that makes prefix pass the Luhn check.
func luhnComplete(prefix string) string {
	sum := 0
	double := true
	for i := len(prefix) - 1; i >= 0; i-- {
		d := int(prefix[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return prefix + strconv.Itoa((10-sum%10)%10)
}
