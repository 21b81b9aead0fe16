package notify

import (
	"log"
)

// Channel selects the delivery mechanism for a notification.
type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelTelegram Channel = "telegram"
	ChannelEmail    Channel = "email"
)

// Notifier delivers a best-effort message. Implementations never return an
// error: delivery failures are logged and reported as false, and callers
// are expected to discard the result.
type Notifier interface {
	Notify(channel Channel, recipient, message string) bool
}

// Gateway fans a notification out to the configured channel clients.
type Gateway struct {
	WhatsApp *WablasClient
	Telegram *TelegramClient
	Email    *EmailClient
}

func (g *Gateway) Notify(channel Channel, recipient, message string) bool {
	switch channel {
	case ChannelWhatsApp:
		if g.WhatsApp == nil {
			return false
		}
		return g.WhatsApp.SendMessage(recipient, message)
	case ChannelTelegram:
		if g.Telegram == nil {
			return false
		}
		return g.Telegram.SendMessage(recipient, message)
	case ChannelEmail:
		if g.Email == nil {
			return false
		}
		return g.Email.SendMessage(recipient, message)
	default:
		log.Printf("notify: unknown channel %q", channel)
		return false
	}
}
