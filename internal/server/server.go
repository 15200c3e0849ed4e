package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pinboard/internal/auth"
	"pinboard/internal/config"
	"pinboard/internal/handler"
	"pinboard/internal/middleware"
	"pinboard/internal/model"
	"pinboard/internal/queue"
	"pinboard/internal/repository"
	"pinboard/internal/session"
	"pinboard/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config

	rdb      *redis.Client
	amqpConn *amqp.Connection
	stopJob  context.CancelFunc
}

func Init(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Info().Msg("✅ Connected to database")

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("❌ failed to migrate schema: %w", err)
	}
	log.Info().Msg("✅ Schema is up to date")

	s := &Server{DB: db, Config: cfg}

	// Session revocation
	var sessions session.Store = session.NopStore{}
	if cfg.RedisAddr != "" {
		rdb, err := session.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("❌ failed to connect to Redis: %w", err)
		}
		s.rdb = rdb
		sessions = session.NewRedisStore(rdb)
		log.Info().Str("addr", cfg.RedisAddr).Msg("✅ Connected to Redis")
	} else {
		log.Warn().Msg("⚠️  REDIS_ADDR is not set, logged out sessions stay valid until they expire")
	}

	// Image storage
	images, err := storage.NewMinioStore(ctx, storage.MinioConfig{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to open image storage: %w", err)
	}
	log.Info().Str("bucket", cfg.MinioBucket).Msg("✅ Image storage ready")

	// Image cleanup
	var discarder storage.Discarder = storage.DirectDiscarder{Store: images}
	if cfg.AMQPURL != "" {
		conn, ch, err := queue.Connect(cfg.AMQPURL)
		if err != nil {
			return nil, fmt.Errorf("❌ failed to connect to RabbitMQ: %w", err)
		}
		jobCtx, cancel := context.WithCancel(ctx)
		if err := queue.StartCleanupWorker(jobCtx, ch, images); err != nil {
			cancel()
			conn.Close()
			return nil, err
		}
		s.amqpConn = conn
		s.stopJob = cancel
		discarder = queue.NewDiscarder(ch)
		log.Info().Msg("✅ Connected to RabbitMQ")
	}

	// Setup Gin
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.MaxMultipartMemory = int64(cfg.MaxUploadMB) << 20

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	pinRepo := repository.NewPinRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	tokens := auth.NewManager(cfg.JWTSecret, time.Duration(cfg.SessionTTLHours)*time.Hour)

	r.Use(middleware.RequestLogger(), gin.Recovery())
	r.Use(middleware.SessionAuth(tokens, userRepo, sessions))

	// Initialize handlers
	RegisterRoutes(r, Handlers{
		Pin:   handler.NewPinHandler(pinRepo, boardRepo, commentRepo, likeRepo, images, discarder),
		Board: handler.NewBoardHandler(boardRepo, pinRepo, likeRepo),
		User:  handler.NewUserHandler(userRepo, pinRepo, boardRepo, likeRepo, tokens, sessions, cfg.CookieSecure),
		Media: handler.NewMediaHandler(images),
	})

	s.Engine = r
	return s, nil
}

func migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}
	return db.AutoMigrate(
		&model.User{},
		&model.Board{},
		&model.Pin{},
		&model.Comment{},
		&model.PinLike{},
	)
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Info().Msgf("🚀 Server running on port %s", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("❌ Failed to listen")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("❌ Server forced to shutdown")
	}

	s.close()
	log.Info().Msg("✅ Server exited properly")
}

func (s *Server) close() {
	if s.stopJob != nil {
		s.stopJob()
	}
	if s.amqpConn != nil {
		if err := s.amqpConn.Close(); err != nil {
			log.Warn().Err(err).Msg("amqp close")
		}
	}
	if s.rdb != nil {
		if err := s.rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close")
		}
	}
	if sqlDB, err := s.DB.DB(); err == nil {
		sqlDB.Close()
	}
}
