package startup

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casbin/casbin"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/cache"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/casbinAuthorization"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/domain"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/handlers"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/realtime"
	application "github.com/pawanbishnoiii/bnoy-rooms-sub000/service"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/startup/config"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/storage"
	"github.com/pawanbishnoiii/bnoy-rooms-sub000/store"
)

type Server struct {
	config *config.Config
}

func NewServer(config *config.Config) *Server {
	return &Server{
		config: config,
	}
}

func (server *Server) Start() {
	httpClient := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			MaxConnsPerHost:     10,
		},
	}

	ctx := context.Background()
	exp, err := newExporter(server.config.JaegerAddress)
	if err != nil {
		log.Fatalf("Failed to Initialize Exporter: %v", err)
	}

	tp := newTraceProvider(exp)
	defer func() { _ = tp.Shutdown(ctx) }()
	otel.SetTracerProvider(tp)
	tracer := tp.Tracer("bnoy_rooms")

	storageLogger := log.New(os.Stdout, "[bnoy-rooms] ", log.LstdFlags)
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	profileClient := server.initMongoClient(server.config.ProfileDBHost, server.config.ProfileDBPort, httpClient)
	defer func() { _ = profileClient.Disconnect(ctx) }()
	propertyClient := server.initMongoClient(server.config.PropertyDBHost, server.config.PropertyDBPort, httpClient)
	defer func() { _ = propertyClient.Disconnect(ctx) }()

	tokenRedis, err := store.GetRedisClient(server.config.TokenCacheHost, server.config.TokenCachePort)
	if err != nil {
		log.Fatal(err)
	}
	defer tokenRedis.Close()

	authStore := store.NewAuthMongoDBStore(profileClient, tracer)
	profileStore := store.NewProfileMongoDBStore(profileClient, tracer)
	propertyStore := store.NewPropertyMongoDBStore(propertyClient, tracer)
	reviewStore := store.NewReviewMongoDBStore(propertyClient, tracer)
	favoriteStore := store.NewFavoriteMongoDBStore(propertyClient, tracer)
	tokenCache := store.NewTokenRedisCache(tokenRedis, tracer)

	bookingStore, err := store.NewBookingCassandraStore(tracer, storageLogger)
	if err != nil {
		log.Fatal(err)
	}
	defer bookingStore.CloseSession()
	bookingStore.CreateTables()

	recommendationStore := server.initRecommendationStore(tracer)

	imageStorage, err := storage.New(logger, tracer)
	if err != nil {
		log.Fatal(err)
	}
	imageCache, err := cache.New(storageLogger, tracer)
	if err != nil {
		log.Fatal(err)
	}
	imageCache.Ping()

	feed := realtime.NewFeed(tokenRedis, storageLogger)

	// Property changes invalidate the cached image URL list.
	propertyChanges, err := feed.Subscribe("properties", func(event realtime.ChangeEvent) {
		if id, ok := event.Record["id"].(string); ok {
			if err := imageCache.DelUrls(id); err != nil {
				storageLogger.Println("url cache invalidate error:", err)
			}
		}
	})
	if err != nil {
		log.Fatal(err)
	}
	defer propertyChanges.Unsubscribe()

	authService := application.NewAuthService(authStore, profileStore, tokenCache)
	profileService := application.NewProfileService(profileStore, tracer)
	propertyService := application.NewPropertyService(propertyStore, imageStorage, imageCache, feed, tracer)
	bookingService := application.NewBookingService(bookingStore, propertyStore, recommendationStore, feed, tracer)
	reviewService := application.NewReviewService(reviewStore, feed, tracer)
	favoriteService := application.NewFavoriteService(favoriteStore, tracer)
	recommendationService := application.NewRecommendationService(recommendationStore, tracer)
	insightsService := application.NewInsightsService(tracer)

	authHandler := handlers.NewAuthHandler(authService, tracer)
	profileHandler := handlers.NewProfileHandler(profileService, tracer)
	propertyHandler := handlers.NewPropertyHandler(propertyService, tracer)
	bookingHandler := handlers.NewBookingHandler(bookingService, tracer)
	reviewHandler := handlers.NewReviewHandler(reviewService, tracer)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService, tracer)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService, tracer)
	insightsHandler := handlers.NewInsightsHandler(insightsService, propertyService, tracer)

	server.start(logger,
		authHandler, profileHandler, propertyHandler, bookingHandler,
		reviewHandler, favoriteHandler, recommendationHandler, insightsHandler)
}

func (server *Server) initMongoClient(host, port string, httpClient *http.Client) *mongo.Client {
	client, err := store.GetClientWithHTTPConfig(host, port, httpClient)
	if err != nil {
		log.Fatal(err)
	}
	return client
}

func (server *Server) initRecommendationStore(tracer trace.Tracer) domain.RecommendationStore {
	driver, err := store.GetNeo4JClient(server.config.RecommendationDBHost, server.config.RecommendationDBPort,
		server.config.RecommendationDBUser, server.config.RecommendationDBPass)
	if err != nil {
		log.Fatal(err)
	}
	return store.NewRecommendationNeo4JStore(driver, tracer)
}

type routeHandler interface {
	Init(router *mux.Router)
}

func (server *Server) start(logger *logrus.Logger, routeHandlers ...routeHandler) {
	enforcer, err := casbin.NewEnforcerSafe("./rbac_model.conf", "./policy.csv")
	if err != nil {
		log.Fatal(err)
	}

	router := mux.NewRouter()
	router.Use(handlers.MiddlewareContentTypeSet)
	router.Use(handlers.ExtractTraceInfoMiddleware)
	router.Use(casbinAuthorization.CasbinMiddleware(enforcer, logger))
	for _, handler := range routeHandlers {
		handler.Init(router)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", server.config.Port),
		Handler: router,
	}

	wait := time.Second * 15
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Println(err)
		}
	}()

	c := make(chan os.Signal, 1)

	signal.Notify(c, os.Interrupt)
	signal.Notify(c, syscall.SIGTERM)

	<-c

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Error Shutting Down Server %s", err)
	}
	log.Println("Server Gracefully Stopped")
}

func newExporter(address string) (*jaeger.Exporter, error) {
	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(address)))
	if err != nil {
		return nil, err
	}
	return exp, nil
}

func newTraceProvider(exp sdktrace.SpanExporter) *sdktrace.TracerProvider {
	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("bnoy_rooms"),
		),
	)

	if err != nil {
		panic(err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(r),
	)
}
