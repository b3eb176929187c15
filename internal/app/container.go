package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/nekogravitycat/condo-backend/internal/announcement"
	"github.com/nekogravitycat/condo-backend/internal/api"
	"github.com/nekogravitycat/condo-backend/internal/apartment"
	"github.com/nekogravitycat/condo-backend/internal/auth"
	"github.com/nekogravitycat/condo-backend/internal/bill"
	"github.com/nekogravitycat/condo-backend/internal/booking"
	"github.com/nekogravitycat/condo-backend/internal/notification"
	"github.com/nekogravitycat/condo-backend/internal/pkg/metrics"
	"github.com/nekogravitycat/condo-backend/internal/pkg/validation"
	"github.com/nekogravitycat/condo-backend/internal/transaction"
	"github.com/nekogravitycat/condo-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction        bool
	ProdOrigins         []string
	DBPool              *pgxpool.Pool
	JWTSecret           string
	JWTTTL              time.Duration
	BcryptCost          int
	UpcomingBillsWindow time.Duration
	Logger              *slog.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Registry   *prometheus.Registry
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	if err := validation.Register(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Apartment Module
	aptRepo := apartment.NewPgxRepository(cfg.DBPool)
	aptService := apartment.NewService(aptRepo)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, logger, m)

	// Bill Module
	billRepo := bill.NewPgxRepository(cfg.DBPool)
	billService := bill.NewService(billRepo, aptService, bill.Options{
		UpcomingWindow: cfg.UpcomingBillsWindow,
		Logger:         logger,
		Metrics:        m,
	})

	// Transaction Module
	txRepo := transaction.NewPgxRepository(cfg.DBPool)
	txService := transaction.NewService(txRepo, aptService)

	// Notification Module
	notifRepo := notification.NewPgxRepository(cfg.DBPool)
	notifService := notification.NewService(notifRepo)

	// Announcement Module
	annRepo := announcement.NewPgxRepository(cfg.DBPool)
	annService := announcement.NewService(annRepo)

	// API Router Config
	routerParams := api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		UserService:         userService,
		ApartmentService:    aptService,
		BookingService:      bookingService,
		BillService:         billService,
		TransactionService:  txService,
		NotificationService: notifService,
		AnnService:          annService,
		JWTManager:          jwtManager,
		Gatherer:            registry,
	}
	if cfg.DBPool != nil {
		routerParams.DB = cfg.DBPool
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		Registry:   registry,
	}, nil
}
