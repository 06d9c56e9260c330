package main

import (
	"context"
	"errors"
	"issuetracker/config"
	"issuetracker/database"
	"issuetracker/handlers"
	"issuetracker/middleware"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg.Database.URL, cfg.Database.Name)
	if err != nil {
		log.Fatal("Invalid database configuration:", err)
	}

	// The server starts whether or not the database answers.
	go prepareDatabase(ctx, db)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: newRouter(cfg, db),
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server stopped:", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := db.Close(shutdownCtx); err != nil {
		log.Printf("Database close error: %v", err)
	}
}

func newRouter(cfg *config.Config, db database.Store) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))

	handlers.RegisterRoutes(r, db)
	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	c.AddAllowHeaders(middleware.HeaderRequestID)
	c.AddExposeHeaders(middleware.HeaderRequestID)

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

// prepareDatabase makes one attempt to reach the database and install the
// schema. Failures are logged only; there is no retry.
func prepareDatabase(ctx context.Context, db database.Store) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := db.Ping(ctx); err != nil {
		log.Printf("Failed to connect to database: %v", err)
		return
	}

	if err := db.Migrate(ctx); err != nil {
		log.Printf("Failed to apply schema: %v", err)
	}
}
