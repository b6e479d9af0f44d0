package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"docportal/pkg/logger"
)

const apiVersion = "2024-12-18.acacia"

// Client creates PaymentIntents against the Stripe HTTP API. Stripe amounts
// are integer minor units; prices arrive in major units and are converted
// here, rounding to the nearest cent.
type Client struct {
	secretKey  string
	baseURL    string
	currency   string
	httpClient *http.Client
	log        *logger.Logger
	dryRun     bool
}

func NewClient(secretKey, currency string, log *logger.Logger) *Client {
	return &Client{
		secretKey:  secretKey,
		baseURL:    "https://api.stripe.com",
		currency:   currency,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

// WithBaseURL overrides the Stripe API base URL (for testing).
func (c *Client) WithBaseURL(baseURL string) *Client {
	if baseURL != "" {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
	return c
}

// WithDryRun enables dry-run mode: fake client secrets, no network calls.
func (c *Client) WithDryRun(enabled bool) *Client {
	c.dryRun = enabled
	return c
}

// CreateIntent mints a PaymentIntent for price major units and returns its
// client secret.
func (c *Client) CreateIntent(ctx context.Context, price float64) (string, error) {
	if price <= 0 {
		return "", fmt.Errorf("price must be positive, got %v", price)
	}

	amount := int64(math.Round(price * 100))

	if c.dryRun {
		fakeID := "pi_dryrun_" + uuid.New().String()[:8]
		c.log.Info("stripe dry run: skipping payment intent creation",
			"amount", amount,
			"currency", c.currency,
		)
		return fakeID + "_secret_" + uuid.New().String()[:8], nil
	}

	form := url.Values{}
	form.Set("amount", fmt.Sprintf("%d", amount))
	form.Set("currency", c.currency)
	form.Set("payment_method_types[]", "card")

	apiURL := c.baseURL + "/v1/payment_intents"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("stripe request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Stripe-Version", apiVersion)
	req.Header.Set("Idempotency-Key", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("stripe http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("stripe api status %d: %s", resp.StatusCode, string(body))
	}

	var parsed paymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("stripe decode: %w", err)
	}
	if parsed.ClientSecret == "" {
		return "", fmt.Errorf("stripe response missing client secret")
	}

	return parsed.ClientSecret, nil
}

// paymentIntent is the subset of Stripe's PaymentIntent we need.
type paymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}
