package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/success-meals/api/internal/cart"
	"github.com/success-meals/api/internal/config"
	"github.com/success-meals/api/internal/router"
	"github.com/success-meals/api/internal/store"
	"github.com/success-meals/api/internal/ws"
)

const (
	cartSweepInterval = 5 * time.Minute
	cartMaxIdle       = 30 * time.Minute
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	log.Println("Connected to database")

	queries := store.New(pool)

	hub := ws.NewHub()
	go hub.Run()

	carts := cart.NewStore()
	go func() {
		ticker := time.NewTicker(cartSweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			carts.Sweep(cartMaxIdle)
		}
	}()

	r := router.New(cfg, queries, carts, hub)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
