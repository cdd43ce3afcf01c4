package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"omnipost/domain/repository"
	"omnipost/infrastructure/ai"
	"omnipost/infrastructure/cache"
	facebookclient "omnipost/infrastructure/clients/facebook"
	instagramclient "omnipost/infrastructure/clients/instagram"
	twitterclient "omnipost/infrastructure/clients/twitter"
	youtubeclient "omnipost/infrastructure/clients/youtube"
	"omnipost/infrastructure/configuration"
	"omnipost/infrastructure/logger"
	"omnipost/infrastructure/persistence"
	"omnipost/infrastructure/pubsub"
	"omnipost/infrastructure/worker"
	"omnipost/server"
	"omnipost/usecase"

	httpHandler "omnipost/interfaces/http"

	"golang.org/x/sync/errgroup"
)

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")

	app := configuration.C.App

	// Mongo holds credentials and connected accounts; without it nothing works.
	mongoClient, err := persistence.NewMongoDb(
		configuration.C.Database.Mongo.Host,
		configuration.C.Database.Mongo.Port,
		configuration.C.Database.Mongo.User,
		configuration.C.Database.Mongo.Password,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Cannot connect to MongoDB")
		os.Exit(1)
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		logger.GetLogger().WithField("error", err).Error("MongoDB ping failed")
		os.Exit(1)
	}
	mongoDb := mongoClient.Database(configuration.C.Database.Mongo.Name)
	logger.GetLogger().Info("MongoDB connected successfully")

	// PostgreSQL backs the publish audit trail and user accounts. The service
	// still publishes without it; history endpoints return 503.
	var publishRecordRepository repository.IPublishRecord
	var userRepository repository.IUser
	psqlDb, err := persistence.NewPostgreSQLDB()
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("PostgreSQL not available - publish history and login disabled")
	} else {
		if err := persistence.EnsurePublishSchema(psqlDb); err != nil {
			logger.GetLogger().WithField("error", err).Error("failed ensuring publish schema")
		}
		publishRecordRepository = persistence.NewPublishRecordRepository(psqlDb)
		userRepository = persistence.NewUserRepository(psqlDb)
	}

	// Redis binds OAuth state nonces to users across instances. Single-node
	// deployments fall back to process memory.
	var stateStore cache.IStateStore
	redisClient, err := cache.NewCache(
		ctx,
		fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
		configuration.C.RedisClient.Username,
		configuration.C.RedisClient.Password,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - using in-memory oauth state store")
		stateStore = cache.NewMemoryStateStore()
	} else {
		stateStore = cache.NewRedisStateStore(redisClient)
		logger.GetLogger().Info("Redis client initialized successfully.")
	}

	var eventPublisher *pubsub.EventPublisher
	if configuration.C.Pubsub.ProjectID != "" {
		eventPublisher, err = pubsub.NewEventPublisher(ctx, configuration.C.Pubsub.ProjectID, configuration.C.Pubsub.Topic)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Pub/Sub not available - post events disabled")
			eventPublisher = nil
		} else {
			defer eventPublisher.Close()
		}
	}

	credentialsRepository := persistence.NewPlatformCredentialsRepository(mongoDb)
	accountRepository := persistence.NewSocialAccountRepository(mongoDb)

	notifier := worker.NewTokenRefreshNotifier(accountRepository)
	g.Go(func() error { return notifier.Start(ctx) })

	youtubeOAuth := youtubeclient.NewOAuthClient()
	youtubeUploader := youtubeclient.NewUploader(notifier.Notify)
	instagramClient := instagramclient.NewClient()
	facebookClient := facebookclient.NewClient()
	twitterClient := twitterclient.NewClient()

	generator := ai.NewGeminiGenerator(configuration.C.AI.GeminiAPIKey, configuration.C.AI.BaseURL)

	accountUsecase := usecase.NewAccountUsecase(credentialsRepository, accountRepository, stateStore, youtubeOAuth, instagramClient)
	publishUsecase := usecase.NewPublishUsecase(credentialsRepository, accountRepository, publishRecordRepository,
		facebookClient, instagramClient, twitterClient, youtubeUploader, eventPublisher)
	aiUsecase := usecase.NewAIUsecase(generator)
	userUsecase := usecase.NewUserUsecase(userRepository)

	userHandler := httpHandler.NewUserHandler(userUsecase)
	accountHandler := httpHandler.NewAccountHandler(accountUsecase)
	publishHandler := httpHandler.NewPublishHandler(publishUsecase)
	aiHandler := httpHandler.NewAIHandler(aiUsecase)
	youtubeOAuthHandler := httpHandler.NewYouTubeOAuthHandler(accountUsecase, stateStore)
	instagramOAuthHandler := httpHandler.NewInstagramOAuthHandler(accountUsecase, stateStore)

	router := server.InitiateRouter(userHandler, accountHandler, publishHandler, aiHandler,
		youtubeOAuthHandler, instagramOAuthHandler)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", app.Port),
		Handler: router,
	}
	logger.GetLogger().WithField("port", app.Port).Info("Starting application")
	g.Go(func() error {
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = httpServer.Shutdown(shutdownCtx)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}
