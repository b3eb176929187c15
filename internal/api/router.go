package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nekogravitycat/condo-backend/internal/announcement"
	annHttp "github.com/nekogravitycat/condo-backend/internal/announcement/http"
	"github.com/nekogravitycat/condo-backend/internal/apartment"
	aptHttp "github.com/nekogravitycat/condo-backend/internal/apartment/http"
	"github.com/nekogravitycat/condo-backend/internal/auth"
	"github.com/nekogravitycat/condo-backend/internal/bill"
	billHttp "github.com/nekogravitycat/condo-backend/internal/bill/http"
	"github.com/nekogravitycat/condo-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/condo-backend/internal/booking/http"
	"github.com/nekogravitycat/condo-backend/internal/notification"
	notifHttp "github.com/nekogravitycat/condo-backend/internal/notification/http"
	"github.com/nekogravitycat/condo-backend/internal/transaction"
	txHttp "github.com/nekogravitycat/condo-backend/internal/transaction/http"
	"github.com/nekogravitycat/condo-backend/internal/user"
	userHttp "github.com/nekogravitycat/condo-backend/internal/user/http"
)

// Config holds the services and settings the router is assembled from.
type Config struct {
	IsProduction bool
	ProdOrigins  []string

	UserService         user.Service
	ApartmentService    apartment.Service
	BookingService      booking.Service
	BillService         bill.Service
	TransactionService  transaction.Service
	NotificationService notification.Service
	AnnService          announcement.Service

	JWTManager *auth.JWTManager
	DB         Pinger
	Gatherer   prometheus.Gatherer
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	config := cors.DefaultConfig()
	if cfg.IsProduction {
		config.AllowOrigins = cfg.ProdOrigins
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	// Operational endpoints live outside the versioned API.
	r.GET("/healthz", Health(cfg.DB))
	if cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// adminMiddleware: Further checks that the token was issued to an administrator.
	adminMiddleware := auth.RequireRole(user.RoleAdmin)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	aptHandler := aptHttp.NewHandler(cfg.ApartmentService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	billHandler := billHttp.NewHandler(cfg.BillService)
	txHandler := txHttp.NewHandler(cfg.TransactionService)
	notifHandler := notifHttp.NewHandler(cfg.NotificationService)
	annHandler := annHttp.NewHandler(cfg.AnnService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		aptHttp.RegisterRoutes(v1, aptHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		billHttp.RegisterRoutes(v1, billHandler, authMiddleware)
		txHttp.RegisterRoutes(v1, txHandler, authMiddleware)
		notifHttp.RegisterRoutes(v1, notifHandler, authMiddleware)
		annHttp.RegisterRoutes(v1, annHandler, authMiddleware, adminMiddleware)
	}

	return r
}
