// Package mercadopago is a thin client of the Mercado Pago payments
// API, used by the webhook adapter to fetch the details of a notified
// payment before acting on it.
package mercadopago

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

type Client struct {
	accessToken string
	apiURL      string
	httpClient  *http.Client
}

// NewClient creates a new Mercado Pago client.
func NewClient(accessToken, apiURL string) *Client {
	if apiURL == "" {
		apiURL = "https://api.mercadopago.com"
	}
	return &Client{
		accessToken: accessToken,
		apiURL:      apiURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether an access token is set. Without one the
// webhook acknowledges events without processing them.
func (c *Client) Configured() bool {
	return c.accessToken != ""
}

// GetPayment fetches a payment by its gateway ID.
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.apiURL+"/v1/payments/"+paymentID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("unexpected status: " + resp.Status)
	}

	var payment Payment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, err
	}
	return &payment, nil
}
