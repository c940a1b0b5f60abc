package main

import (
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pdv-restaurante/pdv-api/config"
	"github.com/pdv-restaurante/pdv-api/logger"
	"github.com/pdv-restaurante/pdv-api/routes"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.GoEnv, cfg.LogLevel)
	defer logger.Sync()

	logger.Log.Info("Starting PDV Restaurante API server...", zap.String("env", cfg.GoEnv))

	switch {
	case cfg.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	case cfg.IsTest():
		gin.SetMode(gin.TestMode)
	case cfg.IsDevelopment():
		gin.SetMode(gin.DebugMode)
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := config.Migrate(db); err != nil {
		logger.Log.Fatal("Failed to migrate database", zap.Error(err))
	}
	logger.Log.Info("Database migration completed successfully")

	router, err := setupRouter(cfg, db)
	if err != nil {
		logger.Log.Fatal("Failed to set up router", zap.Error(err))
	}

	addr := ":" + cfg.Port
	logger.Log.Info("Server is running", zap.String("addr", "http://localhost"+addr))
	if err := router.Run(addr); err != nil {
		logger.Log.Fatal("Failed to start server", zap.Error(err))
	}
}

// setupRouter builds the full application router
func setupRouter(cfg *config.Config, db *gorm.DB) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Recovery())

	// middleware must be installed before any route is registered
	if err := routes.Setup(router, cfg, db); err != nil {
		return nil, err
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus(db))
	}

	return router, nil
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "PDV Restaurante API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get the underlying SQL database to check connection
		sqlDB, err := db.DB()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to get database instance",
				},
			})
			return
		}

		// Ping the database to verify connection
		if err := sqlDB.PingContext(c); err != nil {
			logger.Error(c, "database ping failed", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_CONNECTION_ERROR",
					"message": "Database connection failed",
				},
			})
			return
		}

		// Works the same on sqlite and postgres
		all, err := db.WithContext(c).Migrator().GetTables()
		if err != nil {
			logger.Error(c, "listing tables failed", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_QUERY_ERROR",
					"message": "Failed to query tables",
				},
			})
			return
		}
		tables := make([]string, 0, len(all))
		for _, name := range all {
			if !strings.HasPrefix(name, "sqlite_") {
				tables = append(tables, name)
			}
		}
		sort.Strings(tables)

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Database connected",
			"tables":  tables,
		})
	}
}
