package main

import (
	"log"
	"time"

	"donasi/config"
	authController "donasi/controllers/auth"
	donationController "donasi/controllers/donation"
	mutationController "donasi/controllers/mutation"
	newsController "donasi/controllers/news"
	"donasi/database"
	"donasi/ledger"
	"donasi/notify"
	"donasi/payment"
	"donasi/routers/authRoutes"
	"donasi/routers/donationRoutes"
	"donasi/routers/mutationRoutes"
	"donasi/routers/newsRoutes"
	"donasi/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database setup failed: %v", err)
	}

	notifier := &notify.Gateway{
		WhatsApp: notify.NewWablasClient(cfg.WablasDomain, cfg.WablasToken, cfg.WablasSecret),
		Telegram: notify.NewTelegramClient(cfg.TelegramBotToken),
		Email:    notify.NewEmailClient(cfg.SendgridAPIKey, cfg.EmailSender),
	}

	payments := payment.NewClient(cfg.MidtransServerKey, cfg.MidtransIsProduction)

	ledgerService := ledger.NewService(ledger.NewGormStore(db), notifier, ledger.Config{
		HoldWindow:     time.Duration(cfg.WithdrawHoldDays) * 24 * time.Hour,
		AdminWhatsApp:  cfg.AdminPhone,
		TelegramChatID: cfg.TelegramChatID,
		AdminEmail:     cfg.AdminEmail,
	})

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app, authController.NewController(db))
	donationRoutes.SetupDonationRoutes(app, donationController.NewController(ledgerService, payments))
	mutationRoutes.SetupMutationRoutes(app, mutationController.NewController(ledgerService))
	newsRoutes.SetupNewsRoutes(app, newsController.NewController(db))

	utils.InitializeSummaryScheduler(ledgerService, notifier, cfg.TelegramChatID)

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
