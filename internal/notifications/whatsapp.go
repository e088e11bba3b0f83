package notifications

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"github.com/Rikigb-hub/mi-peluqueria-api/internal/models"
)

// WhatsAppChannel hands the confirmation to the salon's WhatsApp number
// as a pre-filled compose link. The link is what a client-side caller
// opens; the channel itself only records it, so "delivery" carries no
// guarantee at all.
type WhatsAppChannel struct {
	destination string
	log         *slog.Logger
}

func NewWhatsAppChannel(destination string, log *slog.Logger) *WhatsAppChannel {
	if strings.TrimSpace(destination) == "" {
		return nil
	}
	return &WhatsAppChannel{destination: destination, log: log}
}

func (c *WhatsAppChannel) Name() string {
	return "whatsapp"
}

func (c *WhatsAppChannel) Send(ctx context.Context, appointment models.Appointment) error {
	if c == nil {
		return errors.New("whatsapp channel is nil")
	}
	link := ComposeLink(c.destination, ConfirmationMessage(appointment))
	c.log.Info("whatsapp compose link ready",
		slog.String("appointment_id", appointment.ID),
		slog.String("link", link),
	)
	return nil
}

// ComposeLink builds a wa.me URL with the message pre-filled.
func ComposeLink(destination, message string) string {
	dest := strings.ReplaceAll(strings.TrimSpace(destination), "+", "")
	return "https://wa.me/" + dest + "?text=" + url.QueryEscape(message)
}
