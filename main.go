package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"food-ordering-backend/controllers"
	"food-ordering-backend/database"
	"food-ordering-backend/helpers"
	"food-ordering-backend/middleware"
	"food-ordering-backend/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, relying on the environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "7000"
	}
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI is required")
	}
	databaseName := os.Getenv("DATABASE_NAME")
	if databaseName == "" {
		databaseName = "foodordering"
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	client, err := database.Connect(mongoURI)
	if err != nil {
		log.Fatalf("error connecting to mongodb: %v", err)
	}

	userStore := database.NewUserStore(client, databaseName)
	restaurantStore := database.NewRestaurantStore(client, databaseName)
	orderStore := database.NewOrderStore(client, databaseName)

	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := userStore.EnsureIndexes(indexCtx); err != nil {
		log.Fatalf("error creating user indexes: %v", err)
	}
	if err := restaurantStore.EnsureIndexes(indexCtx); err != nil {
		log.Fatalf("error creating restaurant indexes: %v", err)
	}

	stripeClient := helpers.NewStripeClient(
		os.Getenv("STRIPE_API_KEY"),
		os.Getenv("STRIPE_WEBHOOK_SECRET"),
		os.Getenv("FRONTEND_URL"),
	)
	uploader, err := helpers.NewCloudinaryUploader(os.Getenv("CLOUDINARY_URL"))
	if err != nil {
		log.Fatalf("error configuring cloudinary: %v", err)
	}

	notifier := controllers.NewNotifier()
	userController := controllers.NewUserController(userStore)
	restaurantController := controllers.NewRestaurantController(restaurantStore)
	myRestaurantController := controllers.NewMyRestaurantController(restaurantStore, orderStore, uploader, notifier)
	orderController := controllers.NewOrderController(orderStore, restaurantStore, stripeClient, notifier)

	authenticate := middleware.Authentication(jwtSecret)
	parseUser := middleware.ParseUser(userStore)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("FRONTEND_URL")},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "health OK!"})
	})

	routes.UserRoutes(router, userController, authenticate, parseUser)
	routes.RestaurantRoutes(router, restaurantController)
	routes.MyRestaurantRoutes(router, myRestaurantController, authenticate, parseUser)
	routes.OrderRoutes(router, orderController, notifier, authenticate, parseUser)

	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
