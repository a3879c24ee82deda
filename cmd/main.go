package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"marketd/internal/config"
	"marketd/internal/exchange"
	httpserver "marketd/internal/server/http"
	"marketd/pkg/cfg"
	"marketd/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	env := cfg.String("APP_ENV", "dev")

	cleanup := logger.Setup(env)
	defer cleanup()

	configPath := cfg.String("APP_CONFIG", "config.yaml")

	conf, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if cfg.Bool("LOG_CONFIG", env == "dev") {
		if pretty, err := conf.Pretty(); err == nil {
			log.Printf("[marketd] config:\n%s", pretty)
		}
	}

	if conf.Exchange.ID != "binance" {
		log.Fatalf("unsupported exchange id %q (only binance is wired)", conf.Exchange.ID)
	}

	// single shared upstream client for the process lifetime
	client := exchange.NewBinance(conf.Exchange.BaseURL, conf.Exchange.Timeout())
	defer func() { _ = client.Close() }()

	cacheCleanup, err := httpserver.SetupCache(conf.Cache)
	if err != nil {
		log.Fatalf("failed to init cache: %v", err)
	}
	defer cacheCleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// optional cache warmup, e.g. WARMUP_SYMBOLS=BTC/USDT,ETH/USDT
	go httpserver.WarmupTickers(ctx, client, cfg.CSV("WARMUP_SYMBOLS", nil))

	srv := httpserver.New(conf, client)

	go func() {
		if err := srv.Start(ctx); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// wait for signal
	<-ctx.Done()
	// give some time for graceful shutdown
	time.Sleep(time.Second)
}
