package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"okclinic/config"
	"okclinic/cron"
	"okclinic/database"
	bookingRepo "okclinic/database/repository/booking"
	catalogRepo "okclinic/database/repository/catalog"
	feedbackRepo "okclinic/database/repository/feedback"
	invoiceRepo "okclinic/database/repository/invoice"
	"okclinic/database/repository/memory"
	petRepo "okclinic/database/repository/pet"
	userRepoPkg "okclinic/database/repository/user"
	"okclinic/handlers"
	"okclinic/middleware"
	"okclinic/routes"
	"okclinic/services/booking"
	"okclinic/services/catalog"
	"okclinic/services/feedback"
	"okclinic/services/invoice"
	"okclinic/services/notification"
	"okclinic/services/pet"
	"okclinic/services/user"
	"okclinic/utils"
	"okclinic/utils/clock"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// memoryDatabaseURL selects the in-process stores instead of MongoDB.
const memoryDatabaseURL = "memory://"

type repositories struct {
	users    userRepoPkg.UserRepository
	pets     petRepo.PetRepository
	bookings bookingRepo.BookingRepository
	invoices invoiceRepo.InvoiceRepository
	feedback feedbackRepo.FeedbackRepository
	catalog  catalogRepo.ServiceRepository
}

func memoryRepositories() *repositories {
	return &repositories{
		users:    memory.NewUserStore(),
		pets:     memory.NewPetStore(),
		bookings: memory.NewBookingStore(),
		invoices: memory.NewInvoiceStore(),
		feedback: memory.NewFeedbackStore(),
		catalog:  memory.NewServiceStore(),
	}
}

func mongoRepositories(logger *zap.Logger) *repositories {
	database.InitDB()
	db := database.DB()

	users, err := userRepoPkg.NewMongoUserRepo(db)
	if err != nil {
		logger.Fatal("main: failed to initialize user repository", zap.Error(err))
	}
	pets, err := petRepo.NewMongoPetRepo(db)
	if err != nil {
		logger.Fatal("main: failed to initialize pet repository", zap.Error(err))
	}
	bookings, err := bookingRepo.NewMongoBookingRepo(db)
	if err != nil {
		logger.Fatal("main: failed to initialize booking repository", zap.Error(err))
	}
	invoices, err := invoiceRepo.NewMongoInvoiceRepo(db)
	if err != nil {
		logger.Fatal("main: failed to initialize invoice repository", zap.Error(err))
	}
	fb, err := feedbackRepo.NewMongoFeedbackRepo(db)
	if err != nil {
		logger.Fatal("main: failed to initialize feedback repository", zap.Error(err))
	}
	services, err := catalogRepo.NewMongoServiceRepo(db)
	if err != nil {
		logger.Fatal("main: failed to initialize service repository", zap.Error(err))
	}
	return &repositories{users: users, pets: pets, bookings: bookings, invoices: invoices, feedback: fb, catalog: services}
}

// codeStore picks Redis for verification codes, falling back to process
// memory outside production.
func codeStore(logger *zap.Logger) (utils.CodeStore, *redis.Client) {
	if err := utils.InitRedis(); err != nil {
		if config.IsProduction() {
			logger.Fatal("main: redis is required in production", zap.Error(err))
		}
		logger.Warn("main: redis unavailable, keeping verification codes in memory", zap.Error(err))
		return utils.NewMemoryCodeStore(clock.NewRealClock()), nil
	}
	return utils.NewRedisCodeStore(utils.GetCodeCacheClient()), utils.GetAuthCacheClient()
}

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	var repos *repositories
	if strings.HasPrefix(config.AppConfig.DatabaseURL, memoryDatabaseURL) {
		logger.Warn("main: using in-memory stores, data will not survive a restart")
		repos = memoryRepositories()
	} else {
		repos = mongoRepositories(logger)
	}

	codes, authCache := codeStore(logger)
	notifier := notification.NewNotifier(notification.MailConfigFromApp())
	loc := config.ClinicLocation()
	realClock := clock.NewRealClock()

	// services.
	userService := user.NewUserService(
		repos.users,
		codes,
		notifier,
		config.Duration(config.AppConfig.VerificationCodeTTL, 10*time.Minute),
		config.Duration(config.AppConfig.JWTTTL, 2*time.Hour),
	)
	petService := pet.NewPetService(repos.pets, repos.users)
	bookingService := booking.NewBookingService(repos.bookings, repos.pets, repos.users, loc)
	invoiceService := invoice.NewInvoiceService(repos.invoices, repos.users, realClock)
	feedbackService := feedback.NewFeedbackService(repos.feedback, realClock)
	catalogService := catalog.NewCatalogService(repos.catalog)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if email := config.AppConfig.AdminEmail; email != "" {
		if _, err := userService.SeedAdmin(ctx, email, config.AppConfig.AdminPassword); err != nil {
			logger.Error("main: failed to seed admin account", zap.String("email", email), zap.Error(err))
		} else {
			logger.Info("main: admin account ready", zap.String("email", email))
		}
	}

	sweeper := cron.NewReminderSweeper(repos.bookings, repos.users, repos.pets, notifier, cron.SweeperConfig{
		Interval:   config.Duration(config.AppConfig.ReminderInterval, cron.DefaultReminderInterval),
		LeadTime:   config.Duration(config.AppConfig.ReminderLeadTime, cron.DefaultReminderLeadTime),
		ClinicName: config.AppConfig.ClinicName,
		Location:   loc,
		Clock:      realClock,
		Logger:     logger,
	})
	sweeper.Start(ctx)

	var redisClients []*redis.Client
	if authCache != nil {
		redisClients = []*redis.Client{utils.GetAuthCacheClient(), utils.GetCodeCacheClient()}
	}
	utils.StartHealthMonitor(ctx, redisClients, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:  repos.users,
		AuthCache: authCache,

		Auth:     handlers.NewAuthHandler(userService, authCache),
		Pets:     handlers.NewPetHandler(petService),
		Bookings: handlers.NewBookingHandler(bookingService),
		Invoices: handlers.NewInvoiceHandler(invoiceService),
		Feedback: handlers.NewFeedbackHandler(feedbackService),
		Catalog:  handlers.NewCatalogHandler(catalogService),
		Admin:    handlers.NewAdminHandler(userService, petService, authCache),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	sweeper.Stop()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if err := database.CloseDB(shutdownCtx); err != nil {
		logger.Sugar().Warnf("main: failed to close MongoDB: %v", err)
	}
	utils.CloseRedis()

	logger.Sugar().Info("main: server stopped gracefully")
	_ = logger.Sync()
}
