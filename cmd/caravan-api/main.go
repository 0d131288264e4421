// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"caravan/internal/ai"
	"caravan/internal/config"
	httptransport "caravan/internal/http"
	"caravan/internal/infra"
	mapsadapter "caravan/internal/maps"
	"caravan/internal/modules/aiusage"
	"caravan/internal/modules/batch"
	"caravan/internal/modules/carpool"
	"caravan/internal/modules/costs"
	"caravan/internal/modules/geo"
	"caravan/internal/modules/trips"
	"caravan/internal/types"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = infra.NewRedis(cfg.Redis.Addr)
	}

	// Every provider is individually optional: a missing API key leaves that
	// call type in permanent local-fallback mode.
	var geocoder geo.Geocoder
	var matrixProvider costs.MatrixProvider
	var directions carpool.DirectionsProvider
	if cfg.Maps.APIKey != "" {
		geocodeSvc, err := mapsadapter.NewGeocodeService(cfg.Maps.APIKey, cfg.Maps.Region)
		if err != nil {
			log.Fatalf("geocode service init: %v", err)
		}
		geocoder = geocodeSvc

		matrixSvc, err := mapsadapter.NewMatrixService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("matrix service init: %v", err)
		}
		matrixProvider = matrixSvc

		routeSvc, err := mapsadapter.NewRouteService(cfg.Maps.APIKey, cfg.Maps.Region)
		if err != nil {
			log.Fatalf("route service init: %v", err)
		}
		directions = routeSvc
	} else {
		log.Println("GOOGLE_MAPS_API_KEY not set; running in local approximation mode")
	}

	var summarizer carpool.Summarizer
	var quota carpool.SummaryQuota
	if cfg.AI.GeminiKey != "" {
		gemini, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		defer gemini.Close()
		summarizer = gemini
		quota = aiusage.NewService(aiusage.NewStore(dbPool))
	}

	anchor := types.Point{Lat: cfg.Geo.AnchorLat, Lng: cfg.Geo.AnchorLng}
	resolver := geo.NewService(geocoder, geo.NewStore(redisClient), anchor, cfg.Maps.Region)
	estimator := costs.NewEstimator(matrixProvider, resolver)
	carpoolSvc := carpool.NewService(directions, summarizer, quota)
	tripStore := trips.NewStore(dbPool)
	batchSvc := batch.NewService(estimator, cfg.Batch.Concurrency)

	handler := httptransport.NewRouter(estimator, carpoolSvc, tripStore, batchSvc)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
