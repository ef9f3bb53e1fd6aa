package main

import (
	"context"
	"log"
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"crosswarped.com/wordbrain/internal/config"
	"crosswarped.com/wordbrain/internal/dictstore"
	"crosswarped.com/wordbrain/internal/function"
)

func main() {
	cfg, err := config.Load(os.Getenv("WORDBRAIN_CONFIG"))
	if err != nil {
		log.Fatalf("config.Load: %v\n", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("zap.NewProduction: %v\n", err)
	}
	defer logger.Sync()

	store := dictstore.New()
	defer store.Close()

	ctx := context.Background()
	handler := function.NewHandler(cfg, store, logger)
	if err := funcframework.RegisterHTTPFunctionContext(ctx, "/solve-puzzle", handler.ServeHTTP); err != nil {
		log.Fatalf("funcframework.RegisterHTTPFunctionContext: %v\n", err)
	}
	if err := funcframework.RegisterHTTPFunctionContext(ctx, "/metrics", promhttp.Handler().ServeHTTP); err != nil {
		log.Fatalf("funcframework.RegisterHTTPFunctionContext: %v\n", err)
	}

	hostname := ""
	if cfg.Function.LocalOnly {
		hostname = "127.0.0.1"
	}
	logger.Info("serving", zap.String("port", cfg.Function.Port), zap.String("dictionary", cfg.Dictionary))
	if err := funcframework.StartHostPort(hostname, cfg.Function.Port); err != nil {
		log.Fatalf("funcframework.StartHostPort: %v\n", err)
	}
}
