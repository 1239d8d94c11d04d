package app

import (
	"context"
	"fmt"
	"log"

	"gymdesk-service/internal/config"
	"gymdesk-service/internal/db"
	authHandler "gymdesk-service/internal/handlers/auth"
	enrollmentHandler "gymdesk-service/internal/handlers/enrollment"
	planHandler "gymdesk-service/internal/handlers/plan"
	studentHandler "gymdesk-service/internal/handlers/student"
	"gymdesk-service/internal/middleware"
	"gymdesk-service/internal/pkg/token"
	"gymdesk-service/internal/repository/memory"
	"gymdesk-service/internal/repository/postgres"
	authsvc "gymdesk-service/internal/service/auth"
	enrollsvc "gymdesk-service/internal/service/enrollment"
	plansvc "gymdesk-service/internal/service/plan"
	studentsvc "gymdesk-service/internal/service/student"
	"gymdesk-service/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
	cancel context.CancelFunc
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- Repositories -----
	// Postgres when DATABASE_URL is set, in-memory otherwise.
	var (
		planRepo    plansvc.Repository
		enrollRepo  enrollsvc.Repository
		studentRepo studentsvc.Repository
	)
	if s.cfg.DatabaseURL != "" {
		pool, err := db.ConnectPostgres(s.cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		planRepo = postgres.NewPlanRepository(pool)
		enrollRepo = postgres.NewEnrollmentRepository(pool)
		studentRepo = postgres.NewStudentRepository(pool)
		logger.Info("using postgres storage")
	} else {
		planRepo = memory.NewPlanRepository()
		enrollRepo = memory.NewEnrollmentRepository()
		studentRepo = memory.NewStudentRepository()
		logger.Warn("DATABASE_URL not set, using in-memory storage")
	}

	// ----- Redis -----
	var redisClient *redis.Client
	if s.cfg.RedisAddr != "" {
		redisClient, err = db.NewRedisClient(db.RedisConfig{
			Addr:     s.cfg.RedisAddr,
			Password: s.cfg.RedisPass,
			DB:       0,
			PoolSize: 10,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Info("redis connected", zap.String("addr", s.cfg.RedisAddr))
	} else {
		logger.Warn("REDIS_ADDR not set, rate limiting and sweep locking disabled")
	}

	// ----- Token Manager -----
	tokenManager := token.NewManager(s.cfg.JWTSecret, s.cfg.TokenTTL)

	// ----- Services -----
	planService := plansvc.NewService(planRepo, logger)
	enrollmentService := enrollsvc.NewService(enrollRepo, logger)
	studentService := studentsvc.NewService(studentRepo, logger)
	authService := authsvc.NewService(studentService, tokenManager, s.cfg.AdminEmail, s.cfg.AdminPassword, logger)

	if s.cfg.AdminPassword == "" {
		logger.Warn("ADMIN_PASSWORD not set, admin login disabled")
	}

	// ----- Background worker -----
	expiryWorker := worker.NewExpiryWorker(enrollmentService, redisClient, s.cfg.SweepInterval, logger)
	go expiryWorker.Start(ctx)

	// ----- Handlers -----
	authHandlerInst := authHandler.NewAuthHandler(authService, logger)
	planHandlerInst := planHandler.NewPlanHandler(planService)
	enrollmentHandlerInst := enrollmentHandler.NewEnrollmentHandler(enrollmentService)
	studentHandlerInst := studentHandler.NewStudentHandler(studentService)

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(authService)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)
	if redisClient != nil {
		s.engine.Use(middleware.RateLimitMiddleware(redisClient, s.cfg.RateLimit, s.cfg.RateLimitWindow))
	}

	// ----- Router -----
	handlers := &Handlers{
		AuthHandler:       authHandlerInst,
		PlanHandler:       planHandlerInst,
		EnrollmentHandler: enrollmentHandlerInst,
		StudentHandler:    studentHandlerInst,
		AuthMiddleware:    authMiddleware,
	}
	SetupRouter(s.engine, logger, handlers)

	// ----- Start HTTP -----
	log.Printf("server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}

// Stop cancels background work. The HTTP listener exits with the process.
func (s *Server) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}
