package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"reclaim/internal/adapter/api"
	"reclaim/internal/adapter/api/handler"
	apimiddleware "reclaim/internal/adapter/api/middleware"
	"reclaim/internal/adapter/api/router"
	"reclaim/internal/adapter/repository"
	"reclaim/internal/infrastructure/eventbus"
	"reclaim/internal/infrastructure/firebase"
	"reclaim/internal/infrastructure/ratelimit"
	"reclaim/internal/infrastructure/storage"
	"reclaim/internal/infrastructure/websocket"
	"reclaim/internal/usecase"
	"reclaim/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	credentialsPath := ""

	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		credentialsPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if credentialsPath == "" {
			log.Fatalf("FIREBASE_SERVICE_ACCOUNT_JSON or FIREBASE_SERVICE_ACCOUNT_PATH must be set")
		}
		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", credentialsPath)
		}
		opt = option.WithCredentialsFile(credentialsPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, cfg.FirebaseProject, credentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	itemRepo := repository.NewFirestoreItemRepository(firestoreClient)
	messageRepo := repository.NewFirestoreMessageRepository(firestoreClient)
	sightingRepo := repository.NewFirestoreSightingRepository(firestoreClient)
	rewardRepo := repository.NewFirestoreRewardRepository(firestoreClient)
	notificationRepo := repository.NewFirestoreNotificationRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient)

	bus := eventbus.NewBus()

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	userUseCase := usecase.NewUserUseCase(userRepo, firebaseAuthClient, storageClient, bus)
	itemUseCase := usecase.NewItemUseCase(itemRepo, messageRepo, sightingRepo, rewardRepo, notificationRepo, storageClient, bus)
	messagingUseCase := usecase.NewMessagingUseCase(messageRepo, userRepo, itemRepo, bus, wsManager)
	sightingUseCase := usecase.NewSightingUseCase(sightingRepo, itemRepo, notificationRepo, rateLimiter)
	rewardUseCase := usecase.NewRewardUseCase(rewardRepo, itemRepo, notificationRepo, rateLimiter)
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo)

	attachments := usecase.NewAttachmentPipeline(storageClient, usecase.AttachmentPolicy{
		MaxBytes:     cfg.MaxAttachmentBytes,
		AllowedTypes: cfg.AllowedImageTypes,
	})

	handler.Setup(userUseCase, itemUseCase, messagingUseCase, attachments, sightingUseCase, rewardUseCase, notificationUseCase)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(firebaseAuthClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)

	router.Setup(e, authMiddleware, adminMiddleware)
	router.SetupWebSocketRouter(e, wsManager, messageRepo, bus, cfg.InboxPollInterval, cfg.BadgePollInterval, authMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
