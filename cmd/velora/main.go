package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"velora/internal/config"
	"velora/internal/debounce"
	"velora/internal/events"
	"velora/internal/http/handlers"
	applog "velora/internal/log"
	"velora/internal/persist"
	"velora/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := repos.Connect(ctx, cfg.MongoURI, cfg.MongoDBName)
	cancel()
	if err != nil {
		log.Fatal(err)
	}
	idxCtx, idxCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := repos.EnsureIndexes(idxCtx, db); err != nil {
		log.Printf("[warn] ensure indexes: %v", err)
	}
	idxCancel()

	kv, err := persist.OpenSQLite(cfg.SessionDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Permission failures from the database are consolidated: a burst of
	// denials during one misconfiguration window logs once.
	bus := events.NewBus(64)
	stopBus := bus.SubscribeDebounced(5*time.Second, func(count int, last events.PermissionDenied) {
		applog.Fail("db.permission.denied", last.Err, map[string]any{
			"count": count, "op": last.Op, "collection": last.Collection,
		})
	})

	stockWriter := debounce.NewWriter(time.Duration(cfg.StockDebounceMs) * time.Millisecond)

	deps := handlers.NewDeps(db, kv, cfg, bus, stockWriter)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Something went wrong. Please try again.",
			})
		},
	})
	app.Server().MaxRequestBodySize = 8 << 20 // try-on uploads are data URIs

	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	api := app.Group("/api/v1")

	api.Get("/categories", deps.Catalog.Categories)
	api.Get("/subcategories", deps.Catalog.SubCategories)
	api.Get("/products", deps.Catalog.Products)
	api.Get("/products/:slug", deps.Catalog.ProductBySlug)
	api.Post("/reviews", deps.Review.Submit)

	api.Get("/cart", deps.Cart.View)
	api.Post("/cart/items", deps.Cart.Add)
	api.Patch("/cart/items/:variantId", deps.Cart.SetQuantity)
	api.Delete("/cart/items/:variantId", deps.Cart.Remove)
	api.Delete("/cart", deps.Cart.Clear)

	api.Get("/wishlist", deps.Wishlist.View)
	api.Post("/wishlist/toggle", deps.Wishlist.Toggle)

	api.Get("/prefs", deps.Prefs.View)
	api.Put("/prefs", deps.Prefs.Update)

	api.Post("/checkout", deps.Checkout.Place)

	api.Post("/ai/search", deps.AI.Search)
	api.Post("/ai/suggest", deps.AI.Suggest)
	api.Post("/ai/tryon", deps.AI.TryOn)
	api.Get("/ai/tryon/remaining", deps.AI.TryOnRemaining)

	api.Post("/auth/login", deps.Auth.Login)
	api.Post("/auth/logout", deps.Auth.Logout)
	api.Get("/auth/me", deps.Auth.Me)

	admin := api.Group("/admin", handlers.RequireAdmin(deps.AuthSvc))
	admin.Get("/products", deps.Admin.ListProducts)
	admin.Post("/products", deps.Admin.CreateProduct)
	admin.Put("/products/:id", deps.Admin.UpdateProduct)
	admin.Patch("/products/:id/status", deps.Admin.SetProductStatus)
	admin.Patch("/products/:id/stock", deps.Admin.SetStock)

	admin.Post("/categories", deps.Admin.CreateCategory)
	admin.Put("/categories/:id", deps.Admin.UpdateCategory)
	admin.Delete("/categories/:id", deps.Admin.DeleteCategory)
	admin.Post("/subcategories", deps.Admin.CreateSubCategory)
	admin.Delete("/subcategories/:id", deps.Admin.DeleteSubCategory)

	admin.Get("/orders", deps.Admin.ListOrders)
	admin.Get("/orders/:id", deps.Admin.GetOrder)
	admin.Patch("/orders/:id/status", deps.Admin.SetOrderStatus)

	admin.Get("/reviews", deps.Admin.ReviewQueue)
	admin.Patch("/reviews/:id", deps.Admin.ModerateReview)

	admin.Get("/users", deps.Admin.ListUsers)
	admin.Post("/users", deps.Admin.CreateUser)
	admin.Delete("/users/:id", deps.Admin.DeleteUser)

	admin.Get("/settings", deps.Admin.GetSettings)
	admin.Put("/settings", deps.Admin.UpdateSettings)

	// Graceful shutdown: pending debounced stock writes must land before exit.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Println("[shutdown] draining")
		_ = app.Shutdown()
	}()

	if err := app.Listen(cfg.Address); err != nil {
		log.Printf("[server] %v", err)
	}

	deps.StockSvc.Flush()
	stopBus()
	bus.Close()
	_ = kv.Close()
}
