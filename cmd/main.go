package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/events"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/internal/command"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/internal/config"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/internal/handler"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/internal/notify"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/internal/query"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/internal/repository"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/internal/storage"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/middleware"
	redisClient "github.com/LauElToro/intercambius-el-club-de-confianza-sub000/redis"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load(log)

	// Database connection (write store)
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.WithError(err).Fatal("failed to ping database")
	}

	// Redis connection (read model store + event streaming)
	redis, err := redisClient.NewClient(redisClient.Config{Addr: cfg.RedisAddr}, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}
	defer redis.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	media, err := storage.NewMediaStore(ctx, storage.MediaStoreConfig{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		PublicURL: cfg.MinioPublicURL,
		UseSSL:    cfg.MinioUseSSL,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to connect to object storage")
	}

	// --- CQRS wiring ---
	publisher := events.NewPublisher(redis.Client)

	listingWriteRepo := repository.NewListingWriteRepository(db)
	listingReadRepo := repository.NewListingReadRepository(db, redis.Client)
	userRepo := repository.NewUserRepository(db, redis.Client)
	txRepo := repository.NewTransactionRepository(db, redis.Client)
	favoriteRepo := repository.NewFavoriteRepository(db, redis.Client)
	convRepo := repository.NewConversationRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	listingCmd := command.NewListingCommandService(listingWriteRepo, listingReadRepo, media, publisher, log)
	checkoutCmd := command.NewCheckoutCommandService(listingWriteRepo, listingReadRepo, userRepo, txRepo, convRepo, publisher, log)
	favoriteCmd := command.NewFavoriteCommandService(favoriteRepo, listingWriteRepo, publisher, log)
	userCmd := command.NewUserCommandService(userRepo, publisher, log)
	convCmd := command.NewConversationCommandService(convRepo)

	marketQry := query.NewMarketQueryService(listingReadRepo)
	userQry := query.NewUserQueryService(userRepo, txRepo, favoriteRepo, notificationRepo)
	authQry := query.NewAuthQueryService(userRepo)
	convQry := query.NewConversationQueryService(convRepo)

	marketHandler := handler.NewMarketHandler(marketQry)
	listingHandler := handler.NewListingHandler(listingCmd)
	checkoutHandler := handler.NewCheckoutHandler(checkoutCmd)
	favoriteHandler := handler.NewFavoriteHandler(favoriteCmd, userQry)
	userHandler := handler.NewUserHandler(userCmd, userQry)
	authHandler := handler.NewAuthHandler(userCmd, authQry)
	convHandler := handler.NewConversationHandler(convCmd, convQry)

	// Setup router
	router := gin.Default()
	router.Use(middleware.LoggingMiddleware(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	market := api.Group("/market",
		middleware.OptionalAuthMiddleware(),
		middleware.RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))
	{
		market.GET("", marketHandler.ListMarket)
		market.GET("/schema/:rubro", marketHandler.GetSchema)
		market.GET("/:listingId", marketHandler.GetListing)
	}

	listings := api.Group("/listings", middleware.AuthMiddleware())
	{
		listings.POST("", listingHandler.CreateListing)
		listings.PUT("/:listingId", listingHandler.UpdateListing)
		listings.DELETE("/:listingId", listingHandler.DeleteListing)
		listings.POST("/:listingId/media", listingHandler.AttachMedia)
	}

	checkoutGroup := api.Group("/checkout", middleware.AuthMiddleware())
	{
		checkoutGroup.POST("/:listingId", checkoutHandler.Checkout)
	}

	favoritos := api.Group("/favoritos", middleware.AuthMiddleware())
	{
		favoritos.GET("", favoriteHandler.ListFavorites)
		favoritos.GET("/:listingId", favoriteHandler.GetFavorite)
		favoritos.POST("/:listingId", favoriteHandler.Toggle)
	}

	users := api.Group("/users", middleware.AuthMiddleware())
	{
		users.GET("/me", userHandler.GetProfile)
		users.PUT("/me", userHandler.UpdateProfile)
		users.GET("/me/transactions", userHandler.ListTransactions)
		users.GET("/me/notifications", userHandler.ListNotifications)
	}

	conversations := api.Group("/conversations", middleware.AuthMiddleware())
	{
		conversations.GET("", convHandler.ListConversations)
		conversations.GET("/:conversationId/messages", convHandler.ListMessages)
		conversations.POST("/:conversationId/messages", convHandler.PostMessage)
	}

	// Seller notifications are produced from the checkout stream.
	go func() {
		notifier := notify.NewNotifier(notificationRepo, log)
		subscriber := events.NewSubscriber(redis.Client, log, events.SubscriberConfig{
			Group:    "notifier-group",
			Consumer: "notifier-1",
			Stream:   events.CheckoutEventsStream,
			Handler:  notifier.Handle,
		})
		if err := subscriber.Start(ctx); err != nil {
			log.WithError(err).Info("subscriber stopped")
		}
	}()

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Info("shutting down")
		cancel()
	}()

	log.WithField("port", cfg.Port).Info("intercambius service starting")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}
