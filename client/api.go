package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"food-delivery-marketplace/models"
)

// API is a thin REST client for the order endpoints. The bearer token rides
// in the "token" header, same as the browser frontend sends it.
type API struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewAPI(baseURL, token string) *API {
	return &API{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (a *API) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	body := map[string]models.OrderStatus{"status": status}
	var order models.Order
	if err := a.do(ctx, http.MethodPatch, "/order/update-status/"+orderID, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (a *API) RestaurantOrders(ctx context.Context) ([]models.OrderWithCustomer, error) {
	var orders []models.OrderWithCustomer
	if err := a.do(ctx, http.MethodGet, "/order/restaurant-orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (a *API) MyOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := a.do(ctx, http.MethodGet, "/order/my-orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (a *API) NotificationCount(ctx context.Context) (int64, error) {
	var out struct {
		Count int64 `json:"count"`
	}
	if err := a.do(ctx, http.MethodGet, "/order/notification-count", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (a *API) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("token", a.token)

	resp, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
