package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Rikigb-hub/mi-peluqueria-api/internal/models"
)

// Channel delivers a formatted booking notification. Delivery is
// fire-and-forget: no acknowledgment is recorded anywhere.
type Channel interface {
	Name() string
	Send(ctx context.Context, appointment models.Appointment) error
}

// Dispatcher fans a new appointment out to every configured channel.
// It runs strictly after the ledger write has succeeded and never
// propagates channel errors back into the booking flow.
type Dispatcher struct {
	log      *slog.Logger
	channels []Channel
}

func NewDispatcher(log *slog.Logger, channels ...Channel) *Dispatcher {
	return &Dispatcher{log: log, channels: channels}
}

func (d *Dispatcher) Dispatch(appointment models.Appointment) {
	for _, ch := range d.channels {
		ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
		err := ch.Send(ctx, appointment)
		cancel()
		if err != nil {
			d.log.Warn("notification: send failed",
				slog.String("channel", ch.Name()),
				slog.String("appointment_id", appointment.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		d.log.Info("notification: sent",
			slog.String("channel", ch.Name()),
			slog.String("appointment_id", appointment.ID),
		)
	}
}

// ConfirmationMessage is the fixed text template shared by all
// channels.
func ConfirmationMessage(a models.Appointment) string {
	return fmt.Sprintf("¡Nueva Cita Web! ✂️\n\nCliente: %s\nServicio: %s\nFecha: %s\nHora: %s",
		a.UserName, a.ServiceName, a.Date, a.Time)
}
