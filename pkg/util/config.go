package util

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

// ReadConfig loads ./data/config.* when present and falls back to defaults
// and environment variables otherwise.
func ReadConfig() error {
	SetConfigDefaults()

	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

func SetConfigDefaults() {
	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "60s")
	viper.SetDefault("HTTP_SERVER_READ_TIMEOUT", 30*time.Second)
	viper.SetDefault("HTTP_SERVER_WRITE_TIMEOUT", 30*time.Second)
	viper.SetDefault("HTTP_SERVER_IDLE_TIMEOUT", 120*time.Second)
	viper.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", 10*time.Second)
	viper.SetDefault("RATE_LIMIT_RPS", 20.0)
	viper.SetDefault("RATE_LIMIT_BURST", 40)

	viper.SetDefault("MAPBOX_ACCESS_TOKEN", "")
	viper.SetDefault("MAPBOX_BASE_URL", "https://api.mapbox.com")
	viper.SetDefault("MAPBOX_PROFILE", "driving")
	viper.SetDefault("MAPBOX_REQUESTS_PER_SECOND", 5.0)
	viper.SetDefault("MAPBOX_TIMEOUT", 10*time.Second)
	viper.SetDefault("STATIC_MAP_ZOOM", 8)
	viper.SetDefault("STATIC_MAP_SIZE", "1000x1000")

	viper.SetDefault("GEOCODE_CACHE_SIZE", 1024)
	viper.SetDefault("SEARCH_WORKERS", runtime.NumCPU())
	viper.SetDefault("MAX_WAYPOINTS", 10)
	viper.SetDefault("OFFLINE_SPEED_KMH", 50.0)
}
