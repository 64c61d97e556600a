package walletController

import (
	"tutorme/database"
	"tutorme/middleware"
	"tutorme/models"
	walletValidator "tutorme/validators/wallet"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetWalletBalance returns the caller's current wallet balance
func GetWalletBalance(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(models.UserRole)

	db := database.Database.Db

	var balance int64
	switch role {
	case models.RoleTutor:
		var tutor models.Tutor
		if err := db.Where("user_id = ?", userID).First(&tutor).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Tutor profile not found!", nil)
		}
		balance = tutor.WalletBalance
	default:
		var student models.Student
		if err := db.Where("user_id = ?", userID).First(&student).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Student profile not found!", nil)
		}
		balance = student.WalletBalance
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Wallet balance fetched!", fiber.Map{
		"balance": balance,
	})
}

// DepositToWallet credits the student wallet. The credit is an atomic
// increment at the database layer, never read-modify-write.
func DepositToWallet(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var student models.Student
	if err := db.Where("user_id = ?", userID).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Student profile not found!", nil)
	}

	reqData, ok := c.Locals("validatedDeposit").(*walletValidator.DepositRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := db.Model(&models.Student{}).
		Where("id = ?", student.ID).
		UpdateColumn("wallet_balance", gorm.Expr("wallet_balance + ?", reqData.Amount)).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update balance!", nil)
	}

	var balance int64
	db.Model(&models.Student{}).Where("id = ?", student.ID).Pluck("wallet_balance", &balance)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Deposit successful!", fiber.Map{
		"amount":  reqData.Amount,
		"balance": balance,
	})
}
