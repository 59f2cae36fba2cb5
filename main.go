package main

import (
	"context"
	"log"
	"time"

	"food-delivery-marketplace/config"
	"food-delivery-marketplace/database"
	"food-delivery-marketplace/routes"
	"food-delivery-marketplace/services"
	"food-delivery-marketplace/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, relying on environment")
	}
	cfg := config.Load()

	client := database.DBinstance()
	orderStore := database.NewOrderStore(database.OpenCollection(client, "order"))
	menuStore := database.NewMenuStore(database.OpenCollection(client, "menu"))
	userStore := database.NewUserStore(database.OpenCollection(client, "user"))
	contactStore := database.NewContactStore(database.OpenCollection(client, "contact"))

	orderService := services.NewOrderService(orderStore, menuStore, userStore)

	hub := ws.NewHub()
	if cfg.RedisAddr != "" {
		bridge := ws.NewRedisBridge(cfg.RedisAddr)
		hub.SetBridge(bridge)
		go bridge.Run(context.Background(), hub)
		log.Println("room events bridged through redis at", cfg.RedisAddr)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.UserRoutes(router, userStore)
	routes.MenuRoutes(router, menuStore)
	routes.OrderRoutes(router, orderService, hub)
	routes.ContactRoutes(router, contactStore)
	router.GET("/ws", hub.HandleWebSocket())

	log.Println("listening on :" + cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
