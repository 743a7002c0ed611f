package server

import (
	"backend-sprintlab/internal/analysis"
	"backend-sprintlab/internal/auth"
	"backend-sprintlab/internal/config"
	"backend-sprintlab/internal/report"
	"backend-sprintlab/internal/runner"
	"backend-sprintlab/internal/segment"
	"backend-sprintlab/internal/storage"
	"backend-sprintlab/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Store  storage.ObjectStore
	Stream *stream.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client, store storage.ObjectStore) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Store:  store,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)
	adminOnly := auth.RequireRole(auth.RoleAdmin)

	analysisSvc := analysis.NewService(s.DB, s.Stream)
	tracker := segment.NewTracker(s.Redis)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB), jwtMiddleware, adminOnly)
	runner.RegisterRoutes(s.App.Group("/runners"), runner.NewService(s.DB), jwtMiddleware)
	analysis.RegisterRoutes(s.App.Group("/analysis"), analysisSvc, jwtMiddleware)
	storage.RegisterRoutes(s.App.Group("/storage"), storage.NewService(s.DB, s.Store, tracker), jwtMiddleware)
	report.RegisterRoutes(s.App.Group("/reports"), report.NewService(s.DB, analysisSvc), jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
