package engine

import (
	"fmt"
	"strings"

	"github.com/lintang-b-s/waypointx/pkg/http/usecases"
	"github.com/lintang-b-s/waypointx/pkg/mapbox"
	"github.com/lintang-b-s/waypointx/pkg/offline"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Engine struct {
	routingService *usecases.RoutingService
	online         bool
}

func (e *Engine) GetRoutingService() *usecases.RoutingService {
	return e.routingService
}

// IsOnline reports whether the engine talks to Mapbox.
func (e *Engine) IsOnline() bool {
	return e.online
}

// NewEngine wires the routing service from the current viper configuration.
// With MAPBOX_ACCESS_TOKEN set the Mapbox collaborators are used, otherwise
// the offline ones. withImage asks the Mapbox renderer for a static map too.
func NewEngine(logger *zap.Logger, withImage bool) (*Engine, error) {
	var (
		geocoder       usecases.Geocoder
		matrixProvider usecases.MatrixProvider
		renderer       usecases.PathRenderer
	)

	token := strings.TrimSpace(viper.GetString("MAPBOX_ACCESS_TOKEN"))
	online := token != ""
	if online {
		logger.Info("Using Mapbox collaborators", zap.String("base_url", viper.GetString("MAPBOX_BASE_URL")),
			zap.String("profile", viper.GetString("MAPBOX_PROFILE")))
		client := mapbox.NewClient(
			viper.GetString("MAPBOX_BASE_URL"),
			token,
			viper.GetString("MAPBOX_PROFILE"),
			viper.GetDuration("MAPBOX_TIMEOUT"),
			viper.GetFloat64("MAPBOX_REQUESTS_PER_SECOND"),
			logger,
		)
		geocoder = mapbox.NewGeocoder(client)
		matrixProvider = mapbox.NewMatrixProvider(client)
		renderer = mapbox.NewPathRenderer(client, withImage, viper.GetInt("STATIC_MAP_ZOOM"),
			viper.GetString("STATIC_MAP_SIZE"))
	} else {
		logger.Warn("MAPBOX_ACCESS_TOKEN is not set, using offline collaborators",
			zap.Float64("speed_kmh", viper.GetFloat64("OFFLINE_SPEED_KMH")))
		geocoder = offline.NewStaticGeocoder()
		matrixProvider = offline.NewHaversineMatrixProvider(viper.GetFloat64("OFFLINE_SPEED_KMH"))
		renderer = offline.NewPolylineRenderer()
	}

	if size := viper.GetInt("GEOCODE_CACHE_SIZE"); size > 0 {
		cached, err := usecases.NewCachedGeocoder(geocoder, size)
		if err != nil {
			return nil, fmt.Errorf("create geocode cache: %w", err)
		}
		geocoder = cached
	}

	routingService := usecases.NewRoutingService(logger, geocoder, matrixProvider, renderer,
		viper.GetInt("SEARCH_WORKERS"), viper.GetInt("MAX_WAYPOINTS"))

	return &Engine{routingService: routingService, online: online}, nil
}
