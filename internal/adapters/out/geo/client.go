// Package geo calls the external routing service that turns two street
// addresses into a road distance.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// distanceResponse is the routing service's answer.
type distanceResponse struct {
	DistanceKm float64 `json:"distance_km"`
}

// Client implements ports.DistanceEstimator against the routing service's
// HTTP API. It is consulted once per order, at creation; the returned
// distance is baked into the price and never refreshed.
type Client struct {
	http *resty.Client
}

// NewClient creates a routing client for the given base address.
func NewClient(serviceAddr string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(serviceAddr).
			SetTimeout(5 * time.Second),
	}
}

// EstimateKm returns the road distance between two addresses.
func (c *Client) EstimateKm(ctx context.Context, fromAddress, toAddress string) (float64, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"from": fromAddress,
			"to":   toAddress,
		}).
		Get("/api/v1/distance")
	if err != nil {
		return 0, fmt.Errorf("distance request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return 0, fmt.Errorf("distance request status: %d", resp.StatusCode())
	}

	var answer distanceResponse
	if err := json.Unmarshal(resp.Body(), &answer); err != nil {
		return 0, fmt.Errorf("decode distance response: %w", err)
	}

	if answer.DistanceKm < 0 {
		return 0, fmt.Errorf("distance service returned negative distance %f", answer.DistanceKm)
	}

	return answer.DistanceKm, nil
}
