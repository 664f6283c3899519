package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/velvetlens/studio-booking/internal/config"
	dbpkg "github.com/velvetlens/studio-booking/internal/db"
	"github.com/velvetlens/studio-booking/internal/logging"
	"github.com/velvetlens/studio-booking/internal/middleware"
	"github.com/velvetlens/studio-booking/internal/routes"
)

func main() {

	logger := logging.New()
	defer logger.Sync()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg, logger)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg, logger)

	logger.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
