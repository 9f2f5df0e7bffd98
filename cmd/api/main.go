package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"go-storefront-admin/config"
	"go-storefront-admin/internal/handler"
	"go-storefront-admin/internal/middleware"
	"go-storefront-admin/internal/notify"
	"go-storefront-admin/internal/remote"
	"go-storefront-admin/internal/repository"
	"go-storefront-admin/internal/service"
	"go-storefront-admin/internal/session"
	"go-storefront-admin/internal/stock"
	"go-storefront-admin/internal/ws"
	"go-storefront-admin/pkg/database"
	"go-storefront-admin/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// 1. Load Env
	envErr := godotenv.Load()
	cfg := config.Load()

	log := logger.New(cfg.Logger, cfg.Server.AppEnv)
	defer log.Sync()
	if envErr != nil {
		log.Info(".env file not found, using process environment")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 2. Session (explicit object, handed to the REST client)
	sess := session.New(sessionStore(cfg, log), log)
	if err := sess.Restore(ctx); err != nil {
		log.Warn("could not restore session", zap.Error(err))
	}

	// 3. WebSocket Hub
	wsHub := ws.NewHub(log)
	go wsHub.Run(ctx)
	notifier := notify.New(wsHub, log)

	// 4. Stock-commit journal (optional)
	var journal repository.StockCommitRepository
	if cfg.Journal.Enabled {
		db, err := database.Connect(cfg.Postgres, log)
		if err != nil {
			log.Fatal("journal enabled but database unavailable", zap.Error(err))
		}
		journal = repository.NewStockCommitRepo(db)
		if err := journal.Migrate(); err != nil {
			log.Fatal("journal migration failed", zap.Error(err))
		}
	}

	// 5. Dependency Injection (Wiring Layers)
	client := remote.NewClient(cfg.Backend.URL, cfg.Backend.Timeout, sess, log)

	stockOpts := stock.Options{
		Min:           cfg.Stock.Min,
		Debounce:      cfg.Stock.Debounce,
		CommitTimeout: cfg.Stock.CommitTimeout,
		Notifier:      notifier,
		Logger:        log,
		OnChange: func(st stock.RowState) {
			wsHub.Publish(ws.TypeStockRow, st)
		},
	}
	if journal != nil {
		stockOpts.Journal = journal
	}
	stockCtrl := stock.NewController(client, stockOpts)

	categoryService := service.NewCategoryService(client, notifier, log)
	inventoryService := service.NewInventoryService(client, stockCtrl, journal, notifier, log)
	orderService := service.NewOrderService(client, notifier, log)
	authService := service.NewAuthService(client, sess, log)
	dashService := service.NewDashboardService(inventoryService, client, cfg.Stock.LowStockLimit)

	if sess.IsAuthenticated() {
		warmUp(ctx, log, categoryService, inventoryService)
	}

	handlers := handler.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Category:  handler.NewCategoryHandler(categoryService),
		Inventory: handler.NewInventoryHandler(inventoryService),
		Order:     handler.NewOrderHandler(orderService),
		Dashboard: handler.NewDashboardHandler(dashService, client),
	}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.Server.AppName,
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// 7. Routes
	handlers.Mount(app.Group("/api/v1"), middleware.RequireSession(sess))

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	}, middleware.RequireSocketSession(sess))
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Server.HTTPPort); err != nil {
			log.Panic("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	// Edits typed just before the signal still reach the backend.
	if err := inventoryService.Drain(drainCtx); err != nil {
		log.Warn("pending stock edits not committed", zap.Error(err))
	}
	if err := app.ShutdownWithContext(drainCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	stop()
	log.Info("server exited")
}

func sessionStore(cfg *config.Config, log *zap.Logger) session.Store {
	if cfg.Session.Store != "redis" {
		return session.NewMemoryStore()
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	log.Info("session store: redis", zap.String("addr", cfg.Redis.Addr))
	return session.NewRedisStore(rdb, cfg.Session.Key, cfg.Session.TTL)
}

// warmUp loads the lists for a restored session. Failures are already surfaced by the services.
func warmUp(ctx context.Context, log *zap.Logger, categories service.CategoryService, inventory service.InventoryService) {
	if err := categories.Refresh(ctx); err != nil {
		log.Warn("initial category load failed", zap.Error(err))
	}
	if err := inventory.Refresh(ctx); err != nil {
		log.Warn("initial product load failed", zap.Error(err))
	}
}
