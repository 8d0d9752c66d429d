package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/swairua/invoicing-software-sub001/internal/application/lifecycle"
	"github.com/swairua/invoicing-software-sub001/internal/application/simulation"
	"github.com/swairua/invoicing-software-sub001/internal/infrastructure/memory"
	"github.com/swairua/invoicing-software-sub001/internal/infrastructure/postgres"
	httpRouter "github.com/swairua/invoicing-software-sub001/internal/interfaces/http"
	"github.com/swairua/invoicing-software-sub001/pkg/config"
	"github.com/swairua/invoicing-software-sub001/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("starting application")

	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	var txRunner lifecycle.TxRunner
	switch cfg.Store.Driver {
	case "postgres":
		pool, err := postgres.NewPool(appCtx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("PostgreSQL connection")
		}
		defer pool.Close()
		if err := postgres.Migrate(appCtx, pool); err != nil {
			log.Fatal().Err(err).Msg("schema migration")
		}
		txRunner = postgres.NewTxRunner(pool)
	default:
		txRunner = memory.NewStore()
	}

	lifecycleSvc := lifecycle.NewService(txRunner, log.Zerolog(), lifecycle.Config{
		StrictStock:           cfg.Lifecycle.StrictStock,
		QuotationValidityDays: cfg.Lifecycle.QuotationValidityDays,
		PaymentTermsDays:      cfg.Lifecycle.PaymentTermsDays,
	})

	driver := simulation.NewDriver(lifecycleSvc, log.Zerolog(),
		time.Duration(cfg.Simulation.IntervalMS)*time.Millisecond)
	if cfg.Simulation.Enabled {
		driver.Start(appCtx)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Lifecycle: lifecycleSvc,
		Driver:    driver,
		AppCtx:    appCtx,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	driver.Stop()
	stopApp()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
