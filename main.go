package main

import (
	"log"

	"tutorme/config"
	"tutorme/database"
	"tutorme/notifier"
	enrollmentRoutes "tutorme/routers/enrollmentRoutes"
	notificationRoutes "tutorme/routers/notificationRoutes"
	sessionRoutes "tutorme/routers/sessionRoutes"
	walletRoutes "tutorme/routers/walletRoutes"
	"tutorme/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	notifier.Init(database.Database.Db)

	app := fiber.New()

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.AppConfig.AllowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Live notification channel
	app.Use("/ws", notifier.UpgradeRequired)
	app.Get("/ws", notifier.Handler(notifier.Default()))

	enrollmentRoutes.SetupEnrollmentRoutes(app)
	notificationRoutes.SetupNotificationRoutes(app)
	sessionRoutes.SetupSessionRoutes(app)
	walletRoutes.SetupWalletRoutes(app)

	utils.StartReminderScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
