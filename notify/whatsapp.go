package notify

import (
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// WablasClient sends WhatsApp messages through a Wablas gateway.
type WablasClient struct {
	http  *resty.Client
	token string
}

func NewWablasClient(domain, token, secret string) *WablasClient {
	return &WablasClient{
		http: resty.New().
			SetBaseURL(domain).
			SetTimeout(10 * time.Second),
		token: token + "." + secret,
	}
}

// SendMessage posts a message to the gateway. Failures are logged and
// swallowed; the caller only learns whether delivery was accepted.
func (w *WablasClient) SendMessage(phone, message string) bool {
	resp, err := w.http.R().
		SetHeader("Authorization", w.token).
		SetFormData(map[string]string{
			"phone":   phone,
			"message": message,
		}).
		Post("/api/send-message")
	if err != nil {
		log.Printf("WhatsApp send to %s failed: %v", phone, err)
		return false
	}
	if resp.IsError() {
		log.Printf("WhatsApp send to %s failed: status %d", phone, resp.StatusCode())
		return false
	}
	return true
}
