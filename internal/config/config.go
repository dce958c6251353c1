package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	configMutex   sync.RWMutex
	currentConfig *Config
)

type VehicleConfig struct {
	MaxRangeMiles  float64 `mapstructure:"max_range_miles"`
	MilesPerGallon float64 `mapstructure:"miles_per_gallon"`
}

type PlannerConfig struct {
	FallbackPrice      float64 `mapstructure:"fallback_price"`
	SnapToleranceMiles float64 `mapstructure:"snap_tolerance_miles"`
	SampleSpacingMiles float64 `mapstructure:"sample_spacing_miles"`
	Strategy           string  `mapstructure:"strategy"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type RouteCacheConfig struct {
	TTL        time.Duration `mapstructure:"ttl"`
	MaxEntries int           `mapstructure:"max_entries"`
}

type BaseURLConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type NominatimConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	CountryCodes string `mapstructure:"country_codes"`
}

type ORSConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type MapsConfig struct {
	Dir    string        `mapstructure:"dir"`
	MaxAge time.Duration `mapstructure:"max_age"`
}

type StationsConfig struct {
	Path string `mapstructure:"path"`
}

// Config holds the whole service configuration.
type Config struct {
	Port       string           `mapstructure:"port"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	RouteCache RouteCacheConfig `mapstructure:"route_cache"`
	OSRM       BaseURLConfig    `mapstructure:"osrm"`
	Nominatim  NominatimConfig  `mapstructure:"nominatim"`
	ORS        ORSConfig        `mapstructure:"ors"`
	Maps       MapsConfig       `mapstructure:"maps"`
	Stations   StationsConfig   `mapstructure:"stations"`
	Vehicle    VehicleConfig    `mapstructure:"vehicle"`
	Planner    PlannerConfig    `mapstructure:"planner"`
}

var defaults = map[string]any{
	"port":                         "8080",
	"database.url":                 "data/app.db",
	"redis.url":                    "",
	"route_cache.ttl":              "24h",
	"route_cache.max_entries":      1000,
	"osrm.base_url":                "https://router.project-osrm.org",
	"nominatim.base_url":           "https://nominatim.openstreetmap.org",
	"nominatim.country_codes":      "us",
	"ors.api_key":                  "",
	"maps.dir":                     "data/maps",
	"maps.max_age":                 "24h",
	"stations.path":                "",
	"vehicle.max_range_miles":      500.0,
	"vehicle.miles_per_gallon":     10.0,
	"planner.fallback_price":       3.50,
	"planner.snap_tolerance_miles": 10.0,
	"planner.sample_spacing_miles": 0.5,
	"planner.strategy":             "greedy",
}

// Load reads .env, environment variables and, when path is not empty, a
// YAML config file. With a file, changes to it are picked up while running
// and exposed through Current.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("load config: read %q: %w", path, err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	setCurrent(cfg)

	if path != "" {
		v.OnConfigChange(func(e fsnotify.Event) {
			next, err := decode(v)
			if err != nil {
				log.Printf("op=config.reload file=%s err=%v", e.Name, err)
				return
			}
			setCurrent(next)
			log.Printf("op=config.reload file=%s", e.Name)
		})
		v.WatchConfig()
	}

	return cfg, nil
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("load config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Vehicle.MaxRangeMiles <= 0 {
		return fmt.Errorf("vehicle.max_range_miles must be positive, got %v", c.Vehicle.MaxRangeMiles)
	}
	if c.Vehicle.MilesPerGallon <= 0 {
		return fmt.Errorf("vehicle.miles_per_gallon must be positive, got %v", c.Vehicle.MilesPerGallon)
	}
	if c.Planner.FallbackPrice <= 0 {
		return fmt.Errorf("planner.fallback_price must be positive, got %v", c.Planner.FallbackPrice)
	}
	if strings.TrimSpace(c.Database.URL) == "" {
		return errors.New("database.url is required")
	}
	return nil
}

func setCurrent(cfg *Config) {
	configMutex.Lock()
	currentConfig = cfg
	configMutex.Unlock()
}

// Current returns the most recently loaded configuration, or nil before Load.
func Current() *Config {
	configMutex.RLock()
	defer configMutex.RUnlock()
	return currentConfig
}

// Get returns the environment variable key, or fallback when it is unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
