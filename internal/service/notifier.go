package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"parkslot-backend/internal/logger"
)

// webhookNotifier posts rendered reminder messages to an external messaging
// gateway. The gateway handles actual WhatsApp/SMS delivery; this side only
// hands the message off and moves on.
type webhookNotifier struct {
	endpoint string
	client   *http.Client
}

func NewWebhookNotifier(endpoint string, timeout time.Duration) Notifier {
	return &webhookNotifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type notifyPayload struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

func (n *webhookNotifier) Send(ctx context.Context, contactNumber, message string) error {
	if n.endpoint == "" {
		logger.Debug("Notifier endpoint not configured, dropping message", "to", contactNumber)
		return nil
	}

	body, err := json.Marshal(notifyPayload{To: contactNumber, Message: message})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notifier gateway returned status %d", resp.StatusCode)
	}
	return nil
}
