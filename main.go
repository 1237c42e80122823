package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"freelancehub/config"
	"freelancehub/cron"
	"freelancehub/database"
	accountRepo "freelancehub/database/repository/account"
	ledgerRepo "freelancehub/database/repository/ledger"
	memoryRepo "freelancehub/database/repository/memory"
	profileRepo "freelancehub/database/repository/profile"
	projectRepo "freelancehub/database/repository/project"
	"freelancehub/handlers"
	"freelancehub/routes"
	"freelancehub/services/account"
	"freelancehub/services/bidding"
	"freelancehub/services/hiring"
	"freelancehub/services/profile"
	"freelancehub/services/project"
	"freelancehub/services/storage"
	"freelancehub/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// repositories is the storage backend selected by DATABASE_URL.
type repositories struct {
	Accounts accountRepo.AccountRepository
	Profiles profileRepo.ProfileRepository
	Hires    ledgerRepo.HireRepository
	Ratings  ledgerRepo.RatingRepository
	Projects projectRepo.ProjectRepository
	Bids     projectRepo.BidRepository
}

func memoryRepositories() repositories {
	store := memoryRepo.NewStore()
	return repositories{
		Accounts: store.Accounts,
		Profiles: store.Profiles,
		Hires:    store.Hires,
		Ratings:  store.Ratings,
		Projects: store.Projects,
		Bids:     store.Bids,
	}
}

// mongoRepositories connects and ensures every collection's indexes.
func mongoRepositories(logger *zap.Logger) repositories {
	database.InitDB()
	var (
		repos repositories
		err   error
	)
	must := func(name string) {
		if err != nil {
			logger.Fatal("main: failed to initialize repository", zap.String("repository", name), zap.Error(err))
		}
	}
	repos.Accounts, err = accountRepo.NewMongoAccountRepo()
	must("accounts")
	repos.Profiles, err = profileRepo.NewMongoProfileRepo()
	must("profiles")
	repos.Hires, err = ledgerRepo.NewMongoHireRepo()
	must("hires")
	repos.Ratings, err = ledgerRepo.NewMongoRatingRepo()
	must("ratings")
	repos.Projects, err = projectRepo.NewMongoProjectRepo()
	must("projects")
	repos.Bids, err = projectRepo.NewMongoBidRepo()
	must("bids")
	return repos
}

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Storage backend.
	var repos repositories
	healthChecks := map[string]utils.HealthCheck{}
	if config.UsesMemoryStore() {
		logger.Warn("main: using the in-memory store; data will not survive a restart")
		repos = memoryRepositories()
	} else {
		repos = mongoRepositories(logger)
		healthChecks["mongo"] = database.Ping
	}

	// Redis backs the auth cache and the task queue. The in-memory mode runs
	// without it.
	var (
		authCache  utils.AuthCache
		dispatcher cron.Dispatcher
		queue      *asynq.Client
	)
	useRedis := cfg.RedisAddr != "" && !config.UsesMemoryStore()
	if useRedis {
		authClient := utils.GetAuthCacheClient()
		authCache = utils.NewRedisAuthCache(authClient)
		healthChecks["redis"] = utils.RedisHealthCheck(authClient)

		queue = asynq.NewClient(cron.RedisOpt())
		dispatcher = cron.NewAsynqDispatcher(queue, cfg.RatingReconcileDelay)
	} else {
		authCache = utils.NewLocalAuthCache()
	}

	// services.
	profileService, err := profile.NewDefaultProfileService(repos.Profiles, logger)
	if err != nil {
		logger.Fatal("main: failed to initialize profile service", zap.Error(err))
	}
	accountService, err := account.NewDefaultAccountService(repos.Accounts, profileService, authCache, account.Settings{
		TokenTTL:       cfg.TokenTTL,
		AdminSignupKey: cfg.AdminSignupKey,
	}, logger)
	if err != nil {
		logger.Fatal("main: failed to initialize account service", zap.Error(err))
	}
	hiringService, err := hiring.NewDefaultHiringService(repos.Profiles, repos.Hires, repos.Ratings, dispatcher, logger)
	if err != nil {
		logger.Fatal("main: failed to initialize hiring service", zap.Error(err))
	}
	biddingService, err := bidding.NewDefaultBiddingService(repos.Projects, repos.Bids, dispatcher, logger)
	if err != nil {
		logger.Fatal("main: failed to initialize bidding service", zap.Error(err))
	}
	projectService, err := project.NewDefaultProjectService(repos.Projects, logger)
	if err != nil {
		logger.Fatal("main: failed to initialize project service", zap.Error(err))
	}

	var imageStorage storage.StorageService
	if cld, err := utils.Cloudinary(); err != nil {
		logger.Warn("main: image uploads disabled", zap.Error(err))
	} else {
		imageStorage = cld
	}

	var worker *asynq.Server
	if useRedis {
		worker = cron.InitWorker(hiringService, biddingService)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	handlerBundle := &handlers.HandlerBundle{
		Verifier:          accountService,
		Account:           handlers.NewAccountHandler(accountService),
		Freelancer:        handlers.NewFreelancerHandler(profileService, hiringService),
		Hiring:            handlers.NewHiringHandler(hiringService),
		Bids:              handlers.NewBidHandler(biddingService),
		Projects:          handlers.NewProjectHandler(projectService),
		Storage:           handlers.NewStorageHandler(imageStorage, cfg.CloudinaryFolder),
		Admin:             handlers.NewAdminHandler(accountService, profileService),
		MaxRequestsPerMin: cfg.MaxRequestsPerMin,
		CORSOrigins:       cfg.CORSOrigins,
	}
	routes.RegisterRoutes(router, handlerBundle)
	utils.StartHealthMonitor(ctx, time.Minute, healthChecks)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if worker != nil {
		worker.Shutdown()
	}
	if queue != nil {
		if err := queue.Close(); err != nil {
			logger.Warn("main: failed to close task queue client", zap.Error(err))
		}
	}
	if err := database.Disconnect(shutdownCtx); err != nil {
		logger.Warn("main: failed to disconnect from MongoDB", zap.Error(err))
	}
	_ = logger.Sync()

	logger.Info("main: server stopped gracefully")
}
