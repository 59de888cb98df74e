package http

import (
	"context"
	"errors"
	"net/http"

	http_router "github.com/lintang-b-s/waypointx/pkg/http/router"
	"github.com/lintang-b-s/waypointx/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/waypointx/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
	g   *errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use starts the API in the background. It stops when ctx is cancelled.
func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,

	useRateLimit bool,
	routingService controllers.RoutingService,

) (*Server, error) {
	config := http_server.Config{
		Port:           viper.GetInt("API_PORT"),
		Timeout:        viper.GetDuration("API_TIMEOUT"),
		RateLimitRPS:   viper.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: viper.GetInt("RATE_LIMIT_BURST"),
	}

	server := http_router.NewAPI(log)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(
			gctx, config, log,
			useRateLimit, routingService,
		)
	})

	s.g = g
	return s, nil
}

// Wait blocks until the API started by Use has shut down. A shutdown caused by
// cancelling the context is not an error.
func (s *Server) Wait() error {
	if s.g == nil {
		return nil
	}
	err := s.g.Wait()
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
