package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Rikigb-hub/mi-peluqueria-api/internal/models"
)

const defaultBrevoEndpoint = "https://api.brevo.com/v3/smtp/email"

// BrevoChannel emails the booking confirmation to the client through
// the Brevo transactional API.
type BrevoChannel struct {
	apiKey      string
	senderEmail string
	senderName  string
	sandbox     bool
	endpoint    string
	httpClient  *http.Client
}

func NewBrevoChannel(apiKey, senderEmail, senderName string, sandbox bool) *BrevoChannel {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(senderEmail) == "" {
		return nil
	}
	if strings.TrimSpace(senderName) == "" {
		senderName = senderEmail
	}
	return &BrevoChannel{
		apiKey:      apiKey,
		senderEmail: senderEmail,
		senderName:  senderName,
		sandbox:     sandbox,
		endpoint:    defaultBrevoEndpoint,
		httpClient:  &http.Client{Timeout: 8 * time.Second},
	}
}

func (c *BrevoChannel) Name() string {
	return "brevo"
}

func (c *BrevoChannel) Send(ctx context.Context, appointment models.Appointment) error {
	if c == nil {
		return errors.New("brevo channel is nil")
	}
	if strings.TrimSpace(appointment.UserEmail) == "" {
		return errors.New("missing recipient email")
	}

	subject := fmt.Sprintf("Confirmación de reserva - %s", appointment.ServiceName)
	payload := brevoSendRequest{
		Sender: brevoSender{
			Name:  c.senderName,
			Email: c.senderEmail,
		},
		To: []brevoRecipient{
			{
				Email: appointment.UserEmail,
				Name:  appointment.UserName,
			},
		},
		Subject:     subject,
		HtmlContent: buildConfirmationHTML(appointment),
	}
	if c.sandbox {
		payload.Headers = map[string]string{
			"X-Sib-Sandbox": "drop",
		}
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("brevo marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("brevo create request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("brevo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("brevo send failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out brevoSendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("brevo decode response: %w", err)
	}
	if strings.TrimSpace(out.MessageID) == "" {
		return errors.New("brevo response missing messageId")
	}
	return nil
}

func buildConfirmationHTML(a models.Appointment) string {
	var b strings.Builder
	b.WriteString("<h2>¡Cita agendada!</h2>")
	fmt.Fprintf(&b, "<p>Hola %s, tu reserva está registrada y pendiente de confirmación.</p>", html.EscapeString(a.UserName))
	b.WriteString("<ul>")
	fmt.Fprintf(&b, "<li><strong>Servicio:</strong> %s</li>", html.EscapeString(a.ServiceName))
	fmt.Fprintf(&b, "<li><strong>Fecha:</strong> %s</li>", html.EscapeString(a.Date))
	fmt.Fprintf(&b, "<li><strong>Hora:</strong> %s</li>", html.EscapeString(a.Time))
	fmt.Fprintf(&b, "<li><strong>Precio:</strong> %d€ IVA incl.</li>", a.Price)
	b.WriteString("</ul>")
	b.WriteString("<p>Te esperamos. Si no puedes asistir, responde a este correo.</p>")
	return b.String()
}

type brevoSendRequest struct {
	Sender      brevoSender       `json:"sender"`
	To          []brevoRecipient  `json:"to"`
	Subject     string            `json:"subject"`
	HtmlContent string            `json:"htmlContent,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
}

type brevoSender struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type brevoRecipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoSendResponse struct {
	MessageID string `json:"messageId"`
}
