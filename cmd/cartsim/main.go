package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/cartflow/internal/cart"
	"github.com/angelmondragon/cartflow/internal/products"
	"github.com/angelmondragon/cartflow/internal/shop"
	"github.com/angelmondragon/cartflow/pkg/config"
	"github.com/angelmondragon/cartflow/pkg/logger"
	"github.com/angelmondragon/cartflow/pkg/metrics"
	"github.com/angelmondragon/cartflow/pkg/money"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "cartsim"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "cartsim",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	seed, err := loadSeed(cfg.Sim.SeedFile)
	if err != nil {
		logg.Error(context.Background(), "failed to load seed catalog", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	store, err := shop.New(shop.Options{
		Logger:  logg,
		Metrics: metrics.NewStoreMetrics(registry),
		Catalog: seed,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to build store", err)
		os.Exit(1)
	}

	store.Subscribe(func(state shop.RootState) error {
		ctx := logg.WithFields(context.Background(), map[string]any{
			"cart_lines": state.Cart.Lines(),
			"cart_total": state.Cart.TotalAmount.String(),
			"orders":     state.Orders.Count(),
		})
		logg.Debug(ctx, "state changed")
		return nil
	})

	ctx := logg.WithField(context.Background(), "env", cfg.App.Env)
	logg.Info(ctx, "starting session")

	if err := runSession(ctx, logg, store, seed, cfg.Sim.StepDelay); err != nil {
		logg.Error(ctx, "session failed", err)
		os.Exit(1)
	}

	final := store.State()
	ctx = logg.WithFields(ctx, map[string]any{
		"orders":     final.Orders.Count(),
		"cart_lines": final.Cart.Lines(),
	})
	logg.Info(ctx, "session finished")
}

// runSession drives one scripted shopping session: browse, fill the cart,
// lose a product to catalog deletion, check out.
func runSession(ctx context.Context, logg *logger.Logger, store *shop.Store, seed []products.Product, stepDelay time.Duration) error {
	if len(seed) < 2 {
		return fmt.Errorf("seed catalog needs at least 2 products, got %d", len(seed))
	}
	first, second := seed[0], seed[1]

	steps := []any{
		cart.AddToCart{Product: cartProduct(first)},
		cart.AddToCart{Product: cartProduct(first)},
		cart.AddToCart{Product: cartProduct(second)},
		cart.RemoveFromCart{ProductID: first.ID},
		products.DeleteProduct{ProductID: second.ID},
		cart.AddToCart{Product: cartProduct(first)},
		cart.PlaceOrder{},
	}

	for _, event := range steps {
		state, err := store.Dispatch(ctx, event)
		if err != nil {
			return err
		}
		stepCtx := logg.WithField(ctx, "cart_total", state.Cart.TotalAmount.String())
		logg.Info(stepCtx, "applied step")
		if stepDelay > 0 {
			time.Sleep(stepDelay)
		}
	}
	return nil
}

func cartProduct(p products.Product) cart.Product {
	return cart.Product{ID: p.ID, Title: p.Title, Price: p.Price}
}

// loadSeed reads a JSON product feed, or falls back to a built-in demo
// catalog when no file is configured.
func loadSeed(path string) ([]products.Product, error) {
	if path == "" {
		return defaultSeed(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	var seed []products.Product
	if err := json.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	return seed, nil
}

func defaultSeed() []products.Product {
	return []products.Product{
		{ID: "p1", OwnerID: "u1", Title: "Red Shirt", ImageURL: "https://cdn.example.com/red-shirt.jpg", Description: "A red t-shirt", Price: money.MustParse("29.99")},
		{ID: "p2", OwnerID: "u1", Title: "Blue Carpet", ImageURL: "https://cdn.example.com/blue-carpet.jpg", Description: "Fits your red shirt", Price: money.MustParse("99.99")},
		{ID: "p3", OwnerID: "u2", Title: "Coffee Mug", ImageURL: "https://cdn.example.com/mug.jpg", Description: "Can also hold tea", Price: money.MustParse("8.99")},
	}
}
