// Package notifier talks to the Brevo API: contact-list upsert and the
// registration confirmation email. Everything here is best-effort from the
// registration workflow's point of view; a failure never rolls a
// registration back.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iotlab-kiit/registration-service/internal/config"
	"github.com/iotlab-kiit/registration-service/internal/models"
)

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("brevo: api key not configured")

// Client calls the Brevo REST API.
type Client struct {
	cfg  config.BrevoConfig
	HTTP *http.Client
}

// New creates a Brevo client. A single attempt per call, no retries.
func New(cfg config.BrevoConfig) *Client {
	return &Client{
		cfg: cfg,
		HTTP: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// AddContact upserts the registrant on the configured contact list.
func (c *Client) AddContact(ctx context.Context, reg *models.Registration) error {
	first, last := splitName(reg.FullName)
	payload := map[string]interface{}{
		"email": reg.Email,
		"attributes": map[string]string{
			"FIRSTNAME":   first,
			"LASTNAME":    last,
			"FULLNAME":    reg.FullName,
			"SMS":         reg.Phone,
			"UNIVERSITY":  reg.University,
			"GENDER":      string(reg.Gender),
			"ROLL_NUMBER": reg.RollNumber,
			"UNIQUE_ID":   reg.UniqueID,
		},
		"listIds":       []int{c.cfg.ContactListID},
		"updateEnabled": true,
	}
	return c.post(ctx, "/v3/contacts", payload)
}

// SendConfirmation sends the ticket email carrying the unique ID and the
// payment link.
func (c *Client) SendConfirmation(ctx context.Context, reg *models.Registration) error {
	payload := map[string]interface{}{
		"subject": fmt.Sprintf("Ticket confirmed: %s @ Innovance 4.0", reg.FullName),
		"sender": map[string]string{
			"name":  c.cfg.SenderName,
			"email": c.cfg.SenderEmail,
		},
		"to": []map[string]string{
			{"email": reg.Email, "name": reg.FullName},
		},
		"htmlContent": confirmationHTML(reg, c.cfg.PaymentLink),
	}
	return c.post(ctx, "/v3/smtp/email", payload)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) error {
	if c.cfg.APIKey == "" {
		return ErrDisabled
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("brevo: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", c.cfg.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("brevo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("brevo error %s: %s", resp.Status, string(respBody))
	}
	return nil
}

func splitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func confirmationHTML(reg *models.Registration, paymentLink string) string {
	var b strings.Builder
	b.WriteString(`<html><body style="font-family:Arial,sans-serif">`)
	fmt.Fprintf(&b, "<h2>Innovance 4.0: seat reserved, %s!</h2>", splitFirst(reg.FullName))
	b.WriteString(`<p>Your unique ticket ID:</p>`)
	fmt.Fprintf(&b, `<h1 style="font-family:monospace;letter-spacing:2px">%s</h1>`, reg.UniqueID)
	b.WriteString(`<p>Keep this ID ready when you pay.</p>`)
	if paymentLink != "" {
		fmt.Fprintf(&b, `<p><a href="%s">Click to pay</a></p>`, paymentLink)
	}
	b.WriteString(`<table>`)
	fmt.Fprintf(&b, `<tr><td>Name</td><td><strong>%s</strong></td></tr>`, reg.FullName)
	fmt.Fprintf(&b, `<tr><td>Roll number</td><td>%s</td></tr>`, reg.RollNumber)
	fmt.Fprintf(&b, `<tr><td>Contact</td><td>%s</td></tr>`, reg.Phone)
	b.WriteString(`</table>`)
	b.WriteString(`<p>IOT LAB • KIIT University</p>`)
	b.WriteString(`</body></html>`)
	return b.String()
}

func splitFirst(full string) string {
	first, _ := splitName(full)
	return first
}
