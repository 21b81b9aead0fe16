package utils

import (
	"fmt"
	"log"
	"time"

	"donasi/ledger"
	"donasi/notify"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[SUMMARY-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// sendDailySummary pushes the current balance figures to the admin chat.
func sendDailySummary(service *ledger.Service, notifier notify.Notifier, chatID string) {
	summary, err := service.Summary("")
	if err != nil {
		logScheduler("Error generating daily summary: " + err.Error())
		return
	}

	message := fmt.Sprintf(
		`<b>Ringkasan Keuangan Harian</b>

💰 <b>Total Pemasukan:</b> Rp %d
💸 <b>Total Pengeluaran:</b> Rp %d
⏳ <b>Penarikan Tertunda:</b> Rp %d
🏦 <b>Saldo:</b> Rp %d
✅ <b>Saldo Dapat Ditarik:</b> Rp %d`,
		summary.TotalIncome, summary.TotalOutcome, summary.TotalPending,
		summary.TotalBalance, summary.WithdrawableBalance,
	)

	if !notifier.Notify(notify.ChannelTelegram, chatID, message) {
		logScheduler("Daily summary delivery failed")
	}
}

// InitializeSummaryScheduler sends the financial summary to the admin
// Telegram chat every morning at 07:00 WIB.
func InitializeSummaryScheduler(service *ledger.Service, notifier notify.Notifier, chatID string) *cron.Cron {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		loc = time.FixedZone("WIB", 7*60*60)
	}

	c := cron.New(cron.WithLocation(loc))

	c.AddFunc("0 7 * * *", func() {
		sendDailySummary(service, notifier, chatID)
	})

	c.Start()
	logScheduler("Daily summary scheduler started - runs at 07:00 WIB")
	return c
}
