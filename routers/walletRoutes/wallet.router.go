package walletRoutes

import (
	controllers "tutorme/controllers/wallet"
	"tutorme/middleware"
	"tutorme/models"
	validators "tutorme/validators/wallet"

	"github.com/gofiber/fiber/v2"
)

// SetupWalletRoutes sets up all wallet routes
func SetupWalletRoutes(app *fiber.App) {
	group := app.Group("/wallet")

	group.Get("/balance", middleware.JWTMiddleware, controllers.GetWalletBalance)
	group.Post("/deposit", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), validators.Deposit(), controllers.DepositToWallet)
}
