package pay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"milonga/config"
)

// MercadoPagoClient talks to the MercadoPago checkout preferences API.
type MercadoPagoClient struct {
	API         string
	AccessToken string
	HTTP        *http.Client
}

func NewMercadoPagoClient(cfg *config.Config) *MercadoPagoClient {
	return &MercadoPagoClient{
		API:         cfg.MercadoPagoAPI,
		AccessToken: cfg.MercadoPagoToken,
		HTTP:        http.DefaultClient,
	}
}

type MPItem struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	CurrencyID string  `json:"currency_id"`
	UnitPrice  float64 `json:"unit_price"`
}

type MPBackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

type MPPreference struct {
	Items      []MPItem   `json:"items"`
	BackURLs   MPBackURLs `json:"back_urls"`
	AutoReturn string     `json:"auto_return"`
}

// CreatePreference registers a checkout preference and returns its id.
func (c *MercadoPagoClient) CreatePreference(ctx context.Context, pref MPPreference) (string, error) {
	payload, err := json.Marshal(pref)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.API+"/checkout/preferences", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)
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
		return "", fmt.Errorf("mercadopago preference creation failed: %s", resp.Status)
	}
	return body.ID, nil
}
