// Package pay holds the payment gateway clients and the order/capture
// handlers for video and module purchases.
package pay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"milonga/config"
)

// PayPalClient talks to the PayPal REST API (v1 oauth + v2 checkout).
type PayPalClient struct {
	API      string
	ClientID string
	Secret   string
	HTTP     *http.Client
}

func NewPayPalClient(cfg *config.Config) *PayPalClient {
	return &PayPalClient{
		API:      cfg.PayPalAPI,
		ClientID: cfg.PayPalClient,
		Secret:   cfg.PayPalSecret,
		HTTP:     http.DefaultClient,
	}
}

// PayPalOrder is the create-order request body.
type PayPalOrder struct {
	Intent             string               `json:"intent"`
	PurchaseUnits      []PayPalPurchaseUnit `json:"purchase_units"`
	ApplicationContext PayPalAppContext     `json:"application_context"`
}

type PayPalPurchaseUnit struct {
	Amount      PayPalAmount `json:"amount"`
	Description string       `json:"description"`
}

type PayPalAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type PayPalAppContext struct {
	BrandName   string `json:"brand_name"`
	LandingPage string `json:"landing_page"`
	UserAction  string `json:"user_action"`
	ReturnURL   string `json:"return_url"`
	CancelURL   string `json:"cancel_url"`
}

func (c *PayPalClient) accessToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.API+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.ClientID, c.Secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("paypal token request failed: %s", resp.Status)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return body.AccessToken, nil
}

// CreateOrder creates a checkout order and returns the raw gateway response,
// which the frontend uses to redirect the buyer.
func (c *PayPalClient) CreateOrder(ctx context.Context, order PayPalOrder) (map[string]any, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(order)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.API+"/v2/checkout/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("paypal order creation failed: %s", resp.Status)
	}
	return body, nil
}

// CaptureOrder finalizes an approved order and returns the transaction id.
func (c *PayPalClient) CaptureOrder(ctx context.Context, orderToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/v2/checkout/orders/%s/capture", c.API, orderToken),
		strings.NewReader("{}"))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.ClientID, c.Secret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if resp.StatusCode >= 300 || body.ID == "" {
		return "", fmt.Errorf("paypal capture failed: %s", resp.Status)
	}
	return body.ID, nil
}
