package notify

import (
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// TelegramClient sends messages through the Telegram bot API.
type TelegramClient struct {
	http     *resty.Client
	botToken string
}

func NewTelegramClient(botToken string) *TelegramClient {
	return &TelegramClient{
		http:     resty.New().SetTimeout(10 * time.Second),
		botToken: botToken,
	}
}

// SendMessage posts an HTML-formatted message to a chat id.
func (t *TelegramClient) SendMessage(chatID, message string) bool {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.botToken)

	resp, err := t.http.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"chat_id":    chatID,
			"text":       message,
			"parse_mode": "HTML",
		}).
		Post(url)
	if err != nil {
		log.Printf("Telegram send to %s failed: %v", chatID, err)
		return false
	}
	if resp.IsError() {
		log.Printf("Telegram send to %s failed: status %d", chatID, resp.StatusCode())
		return false
	}
	return true
}
