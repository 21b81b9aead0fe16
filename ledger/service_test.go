package ledger

import (
	"errors"
	"sync"
	"testing"
	"time"

	"donasi/models"
	"donasi/notify"
	"donasi/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// fakeNotifier records notifications and signals each delivery.
type fakeNotifier struct {
	mu    sync.Mutex
	sent  []sentMessage
	calls chan struct{}
}

type sentMessage struct {
	Channel   notify.Channel
	Recipient string
	Message   string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{calls: make(chan struct{}, 16)}
}

func (f *fakeNotifier) Notify(channel notify.Channel, recipient, message string) bool {
	f.mu.Lock()
	f.sent = append(f.sent, sentMessage{Channel: channel, Recipient: recipient, Message: message})
	f.mu.Unlock()
	f.calls <- struct{}{}
	return true
}

func (f *fakeNotifier) waitForCall(t *testing.T) sentMessage {
	t.Helper()
	return f.waitForCalls(t, 1)[0]
}

// waitForCalls blocks until n notifications were delivered and returns a
// snapshot of everything sent so far.
func (f *fakeNotifier) waitForCalls(t *testing.T, n int) []sentMessage {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-f.calls:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for notification")
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}

func newTestService(t *testing.T) (*Service, *gorm.DB, *fakeNotifier) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Mutation{}, &models.Donation{}))
	require.NoError(t, db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_mutations_single_pending
		 ON mutations (mutation_type)
		 WHERE mutation_type = 'Outcome' AND mutation_status = 'pending' AND deleted_at IS NULL`,
	).Error)

	notifier := newFakeNotifier()
	service := NewService(NewGormStore(db), notifier, Config{
		HoldWindow:     4 * day,
		AdminWhatsApp:  "628111111111",
		TelegramChatID: "-100123456",
		AdminEmail:     "bendahara@example.com",
	})
	return service, db, notifier
}

func seedIncome(t *testing.T, db *gorm.DB, amount int64, age time.Duration) {
	t.Helper()
	m := models.Mutation{
		MutationType:        models.MutationTypeIncome,
		MutationAmount:      amount,
		MutationDescription: "seed income",
		MutationStatus:      models.MutationStatusCompleted,
	}
	m.CreatedAt = time.Now().Add(-age)
	require.NoError(t, db.Create(&m).Error)
}

func settlementCallback(orderID string) payment.Notification {
	return payment.Notification{
		TransactionStatus: "settlement",
		OrderID:           orderID,
		GrossAmount:       "100000",
		PaymentType:       "bank_transfer",
		CustomField1:      "Budi",
		CustomField2:      "081234567890",
		CustomField3:      "Semoga bermanfaat",
		StatusCode:        "200",
	}
}

func TestRequestPayoutHappyPath(t *testing.T) {
	service, db, _ := newTestService(t)
	seedIncome(t, db, 100000, 5*day)

	mutation, err := service.RequestPayout(60000, "Operasional bulan ini")
	require.NoError(t, err)

	assert.Equal(t, models.MutationTypeOutcome, mutation.MutationType)
	assert.Equal(t, models.MutationStatusPending, mutation.MutationStatus)
	assert.Equal(t, int64(60000), mutation.MutationAmount)
	assert.NotZero(t, mutation.ID)
}

func TestRequestPayoutValidation(t *testing.T) {
	service, _, _ := newTestService(t)

	var validationErr *ValidationError

	_, err := service.RequestPayout(0, "desc")
	assert.ErrorAs(t, err, &validationErr)

	_, err = service.RequestPayout(-5, "desc")
	assert.ErrorAs(t, err, &validationErr)

	_, err = service.RequestPayout(1000, "   ")
	assert.ErrorAs(t, err, &validationErr)
}

func TestRequestPayoutSinglePending(t *testing.T) {
	service, db, _ := newTestService(t)
	seedIncome(t, db, 100000, 5*day)

	_, err := service.RequestPayout(30000, "first")
	require.NoError(t, err)

	_, err = service.RequestPayout(10000, "second")
	var conflictErr *ConflictError
	assert.ErrorAs(t, err, &conflictErr)
}

func TestRequestPayoutExactWithdrawableBoundary(t *testing.T) {
	service, db, _ := newTestService(t)
	seedIncome(t, db, 100000, 5*day)

	// amount == withdrawableBalance + 1 fails
	_, err := service.RequestPayout(100001, "too much")
	var fundsErr *InsufficientFundsError
	require.ErrorAs(t, err, &fundsErr)
	assert.Equal(t, int64(100000), fundsErr.Available)

	// amount == withdrawableBalance succeeds
	_, err = service.RequestPayout(100000, "everything")
	require.NoError(t, err)
}

func TestRequestPayoutHeldFundsExplained(t *testing.T) {
	service, db, _ := newTestService(t)
	// Total balance covers the payout, withdrawable does not
	seedIncome(t, db, 100000, 5*day)
	seedIncome(t, db, 50000, 1*day)

	_, err := service.RequestPayout(120000, "beyond withdrawable")
	var fundsErr *InsufficientFundsError
	require.ErrorAs(t, err, &fundsErr)
	assert.Equal(t, int64(100000), fundsErr.Available)
	assert.Contains(t, fundsErr.Reason, "mengendap")
}

func TestConcurrentPayoutRequests(t *testing.T) {
	service, db, _ := newTestService(t)
	seedIncome(t, db, 100000, 5*day)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.RequestPayout(80000, "concurrent")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, failures int
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		failures++
		var conflictErr *ConflictError
		var fundsErr *InsufficientFundsError
		if !errors.As(err, &conflictErr) && !errors.As(err, &fundsErr) {
			t.Errorf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, failures)
}

// blindStore simulates a database where row locking offers no protection:
// the pending-payout probe sees nothing, and the insert runs into the
// partial unique index instead. That is what happens on postgres when two
// requests race past the probe while no pending row exists yet.
type blindStore struct {
	Store
}

func (s *blindStore) Transaction(fn func(tx Store) error) error {
	return fn(s)
}

func (s *blindStore) PendingPayout() (*models.Mutation, error) {
	return nil, nil
}

func (s *blindStore) CreateMutation(m *models.Mutation) error {
	if m.MutationType == models.MutationTypeOutcome {
		return gorm.ErrDuplicatedKey
	}
	return s.Store.CreateMutation(m)
}

func TestRequestPayoutIndexRejectionIsConflict(t *testing.T) {
	_, db, notifier := newTestService(t)
	seedIncome(t, db, 100000, 5*day)

	service := NewService(&blindStore{Store: NewGormStore(db)}, notifier, Config{
		HoldWindow: 4 * day,
	})

	_, err := service.RequestPayout(50000, "race loser")
	var conflictErr *ConflictError
	assert.ErrorAs(t, err, &conflictErr)
}

func TestApprovePayout(t *testing.T) {
	service, db, notifier := newTestService(t)
	seedIncome(t, db, 100000, 5*day)

	pending, err := service.RequestPayout(40000, "bayar listrik")
	require.NoError(t, err)

	approved, err := service.ApprovePayout(pending.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MutationStatusCompleted, approved.MutationStatus)

	// The approval goes out over Telegram and by mail to the admin
	sent := notifier.waitForCalls(t, 2)
	require.Len(t, sent, 2)
	assert.Equal(t, notify.ChannelTelegram, sent[0].Channel)
	assert.Equal(t, "-100123456", sent[0].Recipient)
	assert.Contains(t, sent[0].Message, "40000")
	assert.Equal(t, notify.ChannelEmail, sent[1].Channel)
	assert.Equal(t, "bendahara@example.com", sent[1].Recipient)
	assert.Contains(t, sent[1].Message, "40000")

	// Approved payout now reduces the balance
	summary, err := service.Summary("")
	require.NoError(t, err)
	assert.Equal(t, int64(60000), summary.TotalBalance)

	// A new payout may be requested once the previous one completed
	_, err = service.RequestPayout(10000, "next")
	require.NoError(t, err)
}

func TestApprovePayoutNotFound(t *testing.T) {
	service, db, _ := newTestService(t)
	seedIncome(t, db, 100000, 5*day)

	var notFoundErr *NotFoundError

	_, err := service.ApprovePayout(9999)
	assert.ErrorAs(t, err, &notFoundErr)

	// Approving twice fails the second time
	pending, err := service.RequestPayout(10000, "once")
	require.NoError(t, err)
	_, err = service.ApprovePayout(pending.ID)
	require.NoError(t, err)
	_, err = service.ApprovePayout(pending.ID)
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestHandleCallbackSettlement(t *testing.T) {
	service, db, notifier := newTestService(t)

	result, err := service.HandleCallback(settlementCallback("ORDER-1"), []byte(`{"order_id":"ORDER-1"}`))
	require.NoError(t, err)
	assert.True(t, result.Saved)
	assert.False(t, result.Duplicate)
	assert.Equal(t, "ORDER-1", result.OrderID)

	var donation models.Donation
	require.NoError(t, db.First(&donation).Error)
	assert.Equal(t, "100000", donation.DonationAmount)
	assert.Equal(t, int64(4000), donation.DonationDeduction)
	assert.Equal(t, "bank_transfer", donation.DonationType)
	assert.Equal(t, "Budi", donation.DonaturName)
	assert.Equal(t, "ORDER-1", donation.OrderID)

	var mutation models.Mutation
	require.NoError(t, db.First(&mutation).Error)
	assert.Equal(t, models.MutationTypeIncome, mutation.MutationType)
	assert.Equal(t, int64(96000), mutation.MutationAmount)
	assert.Equal(t, models.MutationStatusCompleted, mutation.MutationStatus)
	require.NotNil(t, mutation.OrderID)
	assert.Equal(t, "ORDER-1", *mutation.OrderID)
	assert.Contains(t, mutation.MutationDescription, "ORDER-1")
	assert.Contains(t, mutation.MutationDescription, "Net: 96000")

	// Admin and donor both get a WhatsApp message
	first := notifier.waitForCall(t)
	assert.Equal(t, notify.ChannelWhatsApp, first.Channel)
	notifier.waitForCall(t)
}

func TestHandleCallbackIdempotent(t *testing.T) {
	service, db, _ := newTestService(t)

	callback := settlementCallback("ORDER-DUP")
	raw := []byte(`{"order_id":"ORDER-DUP"}`)

	first, err := service.HandleCallback(callback, raw)
	require.NoError(t, err)
	assert.True(t, first.Saved)

	second, err := service.HandleCallback(callback, raw)
	require.NoError(t, err)
	assert.False(t, second.Saved)
	assert.True(t, second.Duplicate)

	var donationCount, mutationCount int64
	db.Model(&models.Donation{}).Count(&donationCount)
	db.Model(&models.Mutation{}).Count(&mutationCount)
	assert.Equal(t, int64(1), donationCount)
	assert.Equal(t, int64(1), mutationCount)
}

func TestHandleCallbackPendingIsNoOp(t *testing.T) {
	service, db, _ := newTestService(t)

	result, err := service.HandleCallback(payment.Notification{
		TransactionStatus: "pending",
		OrderID:           "ORDER-PENDING",
		GrossAmount:       "100000",
		PaymentType:       "bank_transfer",
		StatusCode:        "201",
	}, []byte(`{}`))
	require.NoError(t, err)

	assert.False(t, result.Saved)
	assert.Equal(t, "pending", result.TransactionStatus)
	assert.Equal(t, "ORDER-PENDING", result.OrderID)
	assert.Equal(t, "201", result.StatusCode)

	var count int64
	db.Model(&models.Mutation{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestHandleCallbackCaptureRequiresAccept(t *testing.T) {
	service, db, _ := newTestService(t)

	denied := settlementCallback("ORDER-CAPTURE")
	denied.TransactionStatus = "capture"
	denied.FraudStatus = "deny"

	result, err := service.HandleCallback(denied, []byte(`{}`))
	require.NoError(t, err)
	assert.False(t, result.Saved)

	accepted := settlementCallback("ORDER-CAPTURE")
	accepted.TransactionStatus = "capture"
	accepted.FraudStatus = "accept"

	result, err = service.HandleCallback(accepted, []byte(`{}`))
	require.NoError(t, err)
	assert.True(t, result.Saved)

	var count int64
	db.Model(&models.Donation{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestHandleCallbackPlaceholderDonorFields(t *testing.T) {
	service, db, _ := newTestService(t)

	callback := settlementCallback("ORDER-ANON")
	callback.CustomField1 = ""
	callback.CustomField2 = ""
	callback.CustomField3 = ""

	_, err := service.HandleCallback(callback, []byte(`{}`))
	require.NoError(t, err)

	var donation models.Donation
	require.NoError(t, db.First(&donation).Error)
	assert.Equal(t, models.AnonymousDonaturName, donation.DonaturName)
	assert.Equal(t, models.EmptyFieldPlaceholder, donation.PhoneNumber)
	assert.Equal(t, models.EmptyFieldPlaceholder, donation.DonaturMessage)
}

func TestHandleCallbackPhoneFromCustomerDetails(t *testing.T) {
	service, db, _ := newTestService(t)

	callback := settlementCallback("ORDER-PHONE")
	callback.CustomField2 = "-"
	callback.CustomerDetails = &payment.NotificationCustomer{Phone: "6289999999"}

	_, err := service.HandleCallback(callback, []byte(`{}`))
	require.NoError(t, err)

	var donation models.Donation
	require.NoError(t, db.First(&donation).Error)
	assert.Equal(t, "6289999999", donation.PhoneNumber)
}

func TestSettledDonationFeedsBalance(t *testing.T) {
	service, db, _ := newTestService(t)

	_, err := service.HandleCallback(settlementCallback("ORDER-BAL"), []byte(`{}`))
	require.NoError(t, err)

	summary, err := service.Summary("")
	require.NoError(t, err)
	assert.Equal(t, int64(96000), summary.TotalIncome)
	assert.Equal(t, int64(96000), summary.TotalBalance)
	// Fresh income is still on hold
	assert.Equal(t, int64(0), summary.WithdrawableBalance)

	// Age the income past the hold window and the funds free up
	require.NoError(t, db.Model(&models.Mutation{}).
		Where("mutation_type = ?", models.MutationTypeIncome).
		Update("created_at", time.Now().Add(-5*day)).Error)

	summary, err = service.Summary("")
	require.NoError(t, err)
	assert.Equal(t, int64(96000), summary.WithdrawableBalance)
}
