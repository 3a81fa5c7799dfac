package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/burn-exchange/internal/config"
	"github.com/burn-exchange/internal/types"
)

// EmailNotifier sends burn confirmation emails through an HTTP email provider.
// Callers treat it as best-effort: a failure here never fails a burn.
type EmailNotifier struct {
	apiKey      string
	baseURL     string
	fromAddress string
	client      *http.Client
}

// NewEmailNotifier creates a new email notifier
func NewEmailNotifier(cfg *config.NotifierConfig) *EmailNotifier {
	return &EmailNotifier{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		fromAddress: cfg.FromAddress,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// emailRequest is the provider's send-email payload
type emailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendBurnConfirmation emails the wallet holder a summary of the burn and the
// points received.
func (n *EmailNotifier) SendBurnConfirmation(ctx context.Context, walletAddress, email string, nft types.NFTDetails, pointsReceived int) error {
	subject := fmt.Sprintf("You received %d points for burning %s", pointsReceived, nft.Name)
	html := fmt.Sprintf(
		`<p>Your NFT <strong>%s</strong> (token #%s) was burned successfully.</p>`+
			`<p><strong>%d points</strong> were credited to wallet <code>%s</code>.</p>`,
		nft.Name, nft.TokenID, pointsReceived, walletAddress,
	)

	return n.send(ctx, &emailRequest{
		From:    n.fromAddress,
		To:      []string{email},
		Subject: subject,
		HTML:    html,
	})
}

// SendTest sends a plain test email. Used by the test-notification endpoint.
func (n *EmailNotifier) SendTest(ctx context.Context, email string) error {
	return n.send(ctx, &emailRequest{
		From:    n.fromAddress,
		To:      []string{email},
		Subject: "Burn exchange test email",
		HTML:    "<p>If you are reading this, email notifications are configured correctly.</p>",
	})
}

func (n *EmailNotifier) send(ctx context.Context, payload *emailRequest) error {
	if len(payload.To) == 0 || payload.To[0] == "" {
		return fmt.Errorf("recipient email is empty")
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+n.apiKey)

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("email provider returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
