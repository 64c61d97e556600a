package walletValidator

import (
	"tutorme/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// DepositRequest is the wallet top-up body. Amount is in cents.
type DepositRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// Deposit validates a wallet deposit request
func Deposit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(DepositRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := map[string]string{"amount": "Amount must be greater than 0!"}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedDeposit", reqData)
		return c.Next()
	}
}
