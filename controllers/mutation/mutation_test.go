package mutationController_test

import (
	mutationController "donasi/controllers/mutation"

	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"donasi/config"
	"donasi/ledger"
	"donasi/middleware"
	"donasi/models"
	"donasi/notify"
	"donasi/routers/mutationRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type noopNotifier struct{}

func (noopNotifier) Notify(channel notify.Channel, recipient, message string) bool { return true }

func setupApp(t *testing.T) (*fiber.App, *gorm.DB, string) {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 10}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Mutation{}, &models.Donation{}))

	service := ledger.NewService(ledger.NewGormStore(db), noopNotifier{}, ledger.Config{
		HoldWindow: 4 * 24 * time.Hour,
	})

	app := fiber.New()
	mutationRoutes.SetupMutationRoutes(app, mutationController.NewController(service))

	token, err := middleware.GenerateJWT(1, "admin", "ADMIN")
	require.NoError(t, err)

	return app, db, token
}

func request(t *testing.T, app *fiber.App, method, path, token, body string) (int, map[string]interface{}) {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return resp.StatusCode, envelope
}

func seedAgedIncome(t *testing.T, db *gorm.DB, amount int64) {
	t.Helper()
	m := models.Mutation{
		MutationType:   models.MutationTypeIncome,
		MutationAmount: amount,
		MutationStatus: models.MutationStatusCompleted,
	}
	m.CreatedAt = time.Now().Add(-5 * 24 * time.Hour)
	require.NoError(t, db.Create(&m).Error)
}

func TestMutationsRequireAuth(t *testing.T) {
	app, _, _ := setupApp(t)

	status, _ := request(t, app, "GET", "/mutations/", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestGetSummary(t *testing.T) {
	app, db, token := setupApp(t)
	seedAgedIncome(t, db, 100000)

	status, envelope := request(t, app, "GET", "/mutations/summary", token, "")
	require.Equal(t, fiber.StatusOK, status)

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, float64(100000), data["income"])
	assert.Equal(t, float64(100000), data["balance"])
	assert.Equal(t, float64(100000), data["withdrawableBalance"])
	assert.Equal(t, "All time", data["period"])
}

func TestGetSummaryRejectsBadMonth(t *testing.T) {
	app, _, token := setupApp(t)

	status, _ := request(t, app, "GET", "/mutations/summary?month=2026", token, "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestPayoutLifecycle(t *testing.T) {
	app, db, token := setupApp(t)
	seedAgedIncome(t, db, 100000)

	// Request a payout
	status, envelope := request(t, app, "POST", "/mutations/payout", token,
		`{"amount": 60000, "description": "Operasional"}`)
	require.Equal(t, fiber.StatusOK, status)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, "pending", data["mutationStatus"])
	payoutID := int(data["ID"].(float64))

	// A second request conflicts while the first is pending
	status, _ = request(t, app, "POST", "/mutations/payout", token,
		`{"amount": 10000, "description": "Lagi"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	// Approve it
	status, envelope = request(t, app, "PUT",
		"/mutations/payout/"+strconv.Itoa(payoutID)+"/approve", token, "")
	require.Equal(t, fiber.StatusOK, status)
	data = envelope["data"].(map[string]interface{})
	assert.Equal(t, "completed", data["mutationStatus"])

	// Approving again returns 404
	status, _ = request(t, app, "PUT",
		"/mutations/payout/"+strconv.Itoa(payoutID)+"/approve", token, "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestPayoutValidation(t *testing.T) {
	app, _, token := setupApp(t)

	status, _ := request(t, app, "POST", "/mutations/payout", token,
		`{"amount": 0, "description": "x"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = request(t, app, "POST", "/mutations/payout", token,
		`{"amount": 1000, "description": ""}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestPayoutInsufficientFunds(t *testing.T) {
	app, db, token := setupApp(t)
	seedAgedIncome(t, db, 50000)

	status, envelope := request(t, app, "POST", "/mutations/payout", token,
		`{"amount": 60000, "description": "Terlalu besar"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, envelope["message"], "melebihi")
}

func TestGetMutationsPaginated(t *testing.T) {
	app, db, token := setupApp(t)
	for i := 0; i < 15; i++ {
		seedAgedIncome(t, db, 1000)
	}

	status, envelope := request(t, app, "GET", "/mutations/?page=2&limit=10", token, "")
	require.Equal(t, fiber.StatusOK, status)

	data := envelope["data"].(map[string]interface{})
	pagination := data["pagination"].(map[string]interface{})
	assert.Equal(t, float64(15), pagination["total"])
	assert.Equal(t, float64(2), pagination["page"])
	assert.Equal(t, float64(2), pagination["totalPages"])

	mutations := data["mutations"].([]interface{})
	assert.Len(t, mutations, 5)
}

