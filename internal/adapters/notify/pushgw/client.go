package pushgw

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"med-companion/internal/platform/httpclient"
	"med-companion/internal/ports/notify"
)

var (
	ErrNotConfigured = errors.New("push gateway not configured")
)

// Config del cliente del push gateway.
// BaseURL y APIKey normalmente vienen de env vars (PUSHGW_BASE_URL /
// PUSHGW_API_KEY).
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client implementa notify.Scheduler contra el gateway de push que
// programa las notificaciones recurrentes en los dispositivos del
// usuario.
type Client struct {
	apiKey string
	http   *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		apiKey: strings.TrimSpace(cfg.APIKey),
		http:   hc,
	}, nil
}

// NewFromEnv arma el cliente desde PUSHGW_BASE_URL / PUSHGW_API_KEY.
// Si faltan, el cliente queda no-configurado y todas las llamadas
// devuelven ErrNotConfigured (el caller decide si eso es warning o no).
func NewFromEnv() *Client {
	c, err := NewClient(Config{
		BaseURL: os.Getenv("PUSHGW_BASE_URL"),
		APIKey:  os.Getenv("PUSHGW_API_KEY"),
	})
	if err != nil {
		return &Client{}
	}
	return c
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.apiKey != ""
}

type triggerPayload struct {
	Time       string         `json:"time"`
	Recurrence string         `json:"recurrence"`
	Day        *int           `json:"day,omitempty"`
	Payload    notify.Payload `json:"payload"`
}

type triggerResponse struct {
	ID         string         `json:"id"`
	Time       string         `json:"time"`
	Recurrence string         `json:"recurrence"`
	Day        *int           `json:"day,omitempty"`
	Payload    notify.Payload `json:"payload"`
}

func (c *Client) Schedule(ctx context.Context, req notify.TriggerRequest) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	body := triggerPayload{
		Time:       req.Time,
		Recurrence: string(req.Recurrence),
		Payload:    req.Payload,
	}
	if req.Recurrence != notify.RecurrenceDaily {
		d := req.Day
		body.Day = &d
	}

	var out triggerResponse
	if err := c.http.DoJSON(ctx, http.MethodPost, "/v1/triggers", c.headers(), body, &out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.ID) == "" {
		return "", errors.New("pushgw response missing trigger id")
	}
	return out.ID, nil
}

func (c *Client) Cancel(ctx context.Context, triggerID string) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}
	triggerID = strings.TrimSpace(triggerID)
	if triggerID == "" {
		return errors.New("trigger id required")
	}
	return c.http.DoJSON(ctx, http.MethodDelete, "/v1/triggers/"+triggerID, c.headers(), nil, nil)
}

func (c *Client) ListAll(ctx context.Context) ([]notify.Trigger, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	var out []triggerResponse
	if err := c.http.DoJSON(ctx, http.MethodGet, "/v1/triggers", c.headers(), nil, &out); err != nil {
		return nil, err
	}

	triggers := make([]notify.Trigger, 0, len(out))
	for _, t := range out {
		day := -1
		if t.Day != nil {
			day = *t.Day
		}
		triggers = append(triggers, notify.Trigger{
			ID:         t.ID,
			Time:       t.Time,
			Recurrence: notify.Recurrence(t.Recurrence),
			Day:        day,
			Payload:    t.Payload,
		})
	}
	return triggers, nil
}

func (c *Client) headers() map[string]string {
	return map[string]string{
		"X-Api-Key": c.apiKey,
	}
}
