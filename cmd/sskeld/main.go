// Command sskeld serves straight-skeleton construction over HTTP.
//
// POST /skeleton with a WKT POLYGON body computes and stores a skeleton;
// GET /skeleton/:id returns the stored result, GET /skeleton/:id/svg its
// rendering.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/gogpu/sskel/internal/skeld/config"
	"github.com/gogpu/sskel/internal/skeld/handlers"
	"github.com/gogpu/sskel/internal/skeld/store"
)

func main() {
	cfg := config.Load()

	jobs, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open job store: %v", err)
	}
	defer jobs.Close()

	if err := jobs.Init(context.Background()); err != nil {
		log.Fatalf("Failed to init job store: %v", err)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "sskeld",
	})

	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	h := handlers.New(jobs)
	app.Post("/skeleton", h.BuildSkeleton)
	app.Get("/skeleton/:id", h.GetSkeleton)
	app.Get("/skeleton/:id/svg", h.GetSkeletonSVG)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting sskeld on %s (db: %s)", addr, cfg.DBPath)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
