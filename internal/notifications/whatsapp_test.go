package notifications

import (
	"strings"
	"testing"

	"github.com/Rikigb-hub/mi-peluqueria-api/internal/models"
)

func TestComposeLink(t *testing.T) {
	msg := ConfirmationMessage(models.Appointment{
		UserName:    "Lucía",
		ServiceName: "Corte",
		Date:        "2026-03-02",
		Time:        "10:30",
	})
	link := ComposeLink("+34600000000", msg)

	if !strings.HasPrefix(link, "https://wa.me/34600000000?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}
	if !strings.Contains(link, "2026-03-02") {
		t.Fatalf("message must carry the date: %s", link)
	}
}

func TestNewWhatsAppChannelDisabledWithoutDestination(t *testing.T) {
	if ch := NewWhatsAppChannel("  ", nil); ch != nil {
		t.Fatal("expected nil channel for blank destination")
	}
}
