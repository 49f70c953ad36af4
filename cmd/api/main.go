package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/infopontes/leishai-backend/internal/config"
	dbpkg "github.com/infopontes/leishai-backend/internal/db"
	"github.com/infopontes/leishai-backend/internal/middleware"
	"github.com/infopontes/leishai-backend/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	middleware.InitMetrics()

	r := gin.Default()

	r.Use(middleware.CORSMiddleware(cfg.FrontendURL))
	r.Use(middleware.Metrics())
	r.Use(middleware.RateLimit(20, 40))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg)

	log.Printf("LeishAI API running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
