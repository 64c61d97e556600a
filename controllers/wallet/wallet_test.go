package walletController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"tutorme/config"
	"tutorme/database"
	"tutorme/middleware"
	"tutorme/models"
	walletRoutes "tutorme/routers/walletRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setup(t *testing.T) (*fiber.App, *gorm.DB, models.User, models.Student) {
	t.Helper()

	config.LoadConfig()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Student{}, &models.Tutor{}))

	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	walletRoutes.SetupWalletRoutes(app)

	user := models.User{Name: "Sam", Email: "sam@example.com", Password: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&user).Error)
	student := models.Student{UserID: user.ID, WalletBalance: 500}
	require.NoError(t, db.Create(&student).Error)

	return app, db, user, student
}

func TestDepositToWallet(t *testing.T) {
	app, db, user, student := setup(t)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	body, _ := json.Marshal(fiber.Map{"amount": 2500})
	req := httptest.NewRequest(http.MethodPost, "/wallet/deposit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var balance int64
	db.Model(&models.Student{}).Where("id = ?", student.ID).Pluck("wallet_balance", &balance)
	assert.EqualValues(t, 3000, balance)
}

func TestDepositRejectsNonPositiveAmount(t *testing.T) {
	app, db, user, student := setup(t)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	body, _ := json.Marshal(fiber.Map{"amount": -100})
	req := httptest.NewRequest(http.MethodPost, "/wallet/deposit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var balance int64
	db.Model(&models.Student{}).Where("id = ?", student.ID).Pluck("wallet_balance", &balance)
	assert.EqualValues(t, 500, balance)
}

func TestGetWalletBalance(t *testing.T) {
	app, _, user, _ := setup(t)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/wallet/balance", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Data struct {
			Balance int64 `json:"balance"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.EqualValues(t, 500, payload.Data.Balance)
}
