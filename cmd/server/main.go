package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/baysideshrimping/ncird-operations-center/docs"
	"github.com/baysideshrimping/ncird-operations-center/internal/config"
	"github.com/baysideshrimping/ncird-operations-center/internal/database"
	"github.com/baysideshrimping/ncird-operations-center/internal/handlers"
)

// @title NCIRD Operations Center API
// @version 1.0
// @description Upload and validation service for NCIRD surveillance data streams.
// @BasePath /api/v1
func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	database.ConnectDatabase()

	router := gin.Default()
	handlers.RegisterRoutes(router)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	log.Printf("Starting server on :%s...", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
