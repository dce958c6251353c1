package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"fuel-route-service/internal/adapters/cache"
	"fuel-route-service/internal/adapters/mapfile"
	"fuel-route-service/internal/adapters/repositories"
	"fuel-route-service/internal/adapters/routing"
	"fuel-route-service/internal/api"
	"fuel-route-service/internal/config"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/db"
	"fuel-route-service/internal/ports"
	"fuel-route-service/internal/services"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

const (
	geocodeCacheMaxAge      = 30 * 24 * time.Hour
	routeCacheSweepInterval = 10 * time.Minute
	mapsSweepInterval       = time.Hour
)

// main is the application composition root.
// It wires concrete adapters (SQL, Redis, OSRM/Nominatim or ORS) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, dialect, err := db.Open(cfg.Database.URL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := repositories.InitSchemaFor(ctx, conn, dialect); err != nil {
		log.Fatal(err)
	}

	store := repositories.NewStationStore(conn, dialect)

	// Import the configured station file on startup for local runs.
	if err := importStations(ctx, store, cfg.Stations.Path); err != nil {
		log.Fatal(err)
	}

	catalog := services.NewStationCatalog(cfg.Planner.SnapToleranceMiles)
	idx, err := catalog.Reload(ctx, store)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Station catalog loaded stations=%d skipped=%d", idx.Len(), idx.Skipped())

	planner := &services.Planner{
		Catalog:            catalog,
		SnapToleranceMiles: cfg.Planner.SnapToleranceMiles,
		SampleSpacingMiles: cfg.Planner.SampleSpacingMiles,
		FallbackPrice:      cfg.Planner.FallbackPrice,
	}

	geocoder, routes, err := providers(ctx, cfg, conn, dialect)
	if err != nil {
		log.Fatal(err)
	}

	maps, err := mapfile.NewWriter(cfg.Maps.Dir, "/maps/")
	if err != nil {
		log.Fatal(err)
	}
	maps.MaxAge = cfg.Maps.MaxAge
	maps.StartPruner(ctx, mapsSweepInterval)

	router := api.NewRouter(api.Dependencies{
		Catalog:  catalog,
		Planner:  planner,
		Stations: store,
		Geocoder: geocoder,
		Routes:   routes,
		Maps:     maps,
		MapsDir:  cfg.Maps.Dir,
		Defaults: planDefaults,
	})

	// Timeouts are tuned for cold-cache planning (external API latency).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("Server listening addr=:%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// planDefaults reads the latest configuration so edits to the config file
// apply to the next request.
func planDefaults() (domain.Vehicle, services.Strategy) {
	v := domain.DefaultVehicle()
	strategy := services.StrategyGreedy

	cfg := config.Current()
	if cfg == nil {
		return v, strategy
	}

	v.MaxRangeMiles = cfg.Vehicle.MaxRangeMiles
	v.MilesPerGallon = cfg.Vehicle.MilesPerGallon
	if s, err := services.ParseStrategy(cfg.Planner.Strategy); err == nil {
		strategy = s
	} else {
		log.Printf("config: %v, using %s", err, strategy)
	}
	return v, strategy
}

func importStations(ctx context.Context, store repositories.StationStore, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}

	stations, unparsed, err := repositories.LoadStationsFile(path)
	if err != nil {
		return fmt.Errorf("import stations: %w", err)
	}

	written, skipped, err := repositories.ImportStations(ctx, store, stations)
	if err != nil {
		return fmt.Errorf("import stations: %w", err)
	}

	log.Printf("Stations imported path=%s written=%d skipped=%d", path, written, skipped+unparsed)
	return nil
}

// providers builds the geocoder and route provider. OpenRouteService is
// used for both when an API key is configured, otherwise Nominatim and OSRM.
func providers(
	ctx context.Context,
	cfg *config.Config,
	conn *sql.DB,
	dialect db.Dialect,
) (ports.Geocoder, ports.RouteProvider, error) {
	var geocoder ports.Geocoder
	var routes ports.RouteProvider

	if key := strings.TrimSpace(cfg.ORS.APIKey); key != "" {
		ors, err := routing.NewORSClient(key, "")
		if err != nil {
			return nil, nil, err
		}
		geocoder, routes = ors, ors
	} else {
		geocoder = routing.NewNominatimClient(cfg.Nominatim.BaseURL, cfg.Nominatim.CountryCodes)
		routes = routing.NewOSRMClient(cfg.OSRM.BaseURL)
	}

	var geocodeCache ports.GeocodeCache
	if dialect == db.Postgres {
		geocodeCache = cache.NewSQLGeocodeCache(conn, geocodeCacheMaxAge)
	} else {
		geocodeCache = cache.NewSqliteGeocodeCache(conn, geocodeCacheMaxAge)
	}

	var routeCache ports.RouteCache
	if url := strings.TrimSpace(cfg.Redis.URL); url != "" {
		rc, err := cache.NewRedisRouteCacheFromURL(ctx, url, cfg.RouteCache.TTL)
		if err != nil {
			return nil, nil, err
		}
		routeCache = rc
	} else {
		mc := cache.NewMemoryRouteCache(cfg.RouteCache.TTL, cfg.RouteCache.MaxEntries)
		mc.StartSweeper(ctx, routeCacheSweepInterval)
		routeCache = mc
	}

	return routing.NewCachedGeocoder(geocoder, geocodeCache), routing.NewCachedRouteProvider(routes, routeCache), nil
}
