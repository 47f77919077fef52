package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go-exchange-rates-api"
	"go-exchange-rates-api/bucket"
	"go-exchange-rates-api/config"
	"go-exchange-rates-api/ecb"
	"go-exchange-rates-api/exchange"
	"go-exchange-rates-api/http"
	"go-exchange-rates-api/lru"
	"go-exchange-rates-api/metrics"
	"os"
	"os/signal"
	"syscall"
	"time"

	nhttp "net/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, config.Usage())
		os.Exit(2)
	}

	logger, logFile := newLogger(os.Stderr, cfg.Log)
	if logFile != nil {
		defer logFile.Close()
	}

	zone, err := cfg.Location()
	if err != nil {
		level.Error(logger).Log("msg", "invalid reference zone", "err", err)
		os.Exit(2)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	ecbService := ecb.NewService(cfg.Upstream.URL, cfg.Upstream.Timeout)
	ecbService = ecb.NewLoggingService(log.With(logger, "component", "ecb"), ecbService)
	ecbService = ecb.NewInstrumentingService(m, ecbService)

	cache := lru.New[string, *rates.ExchangeRate](cfg.Cache.Capacity)
	schedule := bucket.New(zone, cfg.Cache.Cutoff)

	exchangeService := exchange.NewService(ecbService)
	exchangeService = exchange.NewInstrumentingService(m, exchangeService)
	exchangeService = exchange.NewCachingService(cache, schedule, m, log.With(logger, "component", "exchange_cache"), exchangeService)
	exchangeService = exchange.NewLoggingService(log.With(logger, "component", "exchange"), exchangeService)

	handler := http.NewServer(exchangeService,
		http.WithLogger(log.With(logger, "component", "http")),
		http.WithMetrics(m, reg),
		http.WithFavicon(cfg.Server.FaviconPath),
		http.WithRateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst),
	)

	srv := &nhttp.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	level.Info(logger).Log(
		"msg", "listening",
		"addr", cfg.Server.Addr,
		"upstream", cfg.Upstream.URL,
		"cache_capacity", cfg.Cache.Capacity,
		"zone", zone,
		"cutoff", cfg.Cache.Cutoff,
		"rate_limit", cfg.Server.RateLimit,
	)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nhttp.ErrServerClosed) {
		level.Error(logger).Log("msg", "server error", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log("msg", "stopped")
}
