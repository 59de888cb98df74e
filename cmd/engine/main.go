package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/waypointx/pkg/engine"
	"github.com/lintang-b-s/waypointx/pkg/http"
	"github.com/lintang-b-s/waypointx/pkg/logger"
	"github.com/lintang-b-s/waypointx/pkg/util"
	"go.uber.org/zap"
)

var (
	useRateLimit = flag.Bool("rate_limit", true, "limit incoming requests to RATE_LIMIT_RPS")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	routingEngine, err := engine.NewEngine(logger, false)
	if err != nil {
		panic(err)
	}

	api := http.NewServer(logger)

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	if _, err := api.Use(ctx, logger, *useRateLimit, routingEngine.GetRoutingService()); err != nil {
		panic(err)
	}

	signal := http.GracefulShutdown()

	logger.Info("Waypointx Server Stopped", zap.String("signal", signal.String()))
	cleanup()
	if err := api.Wait(); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
	}
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
