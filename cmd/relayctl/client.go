package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"telegram-relay-bot/internal/relay"
)

type statsClient struct {
	baseURL string
	http    *http.Client
}

func newStatsClient(baseURL string, httpClient *http.Client) *statsClient {
	return &statsClient{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Health возвращает поле status ответа /health.
func (c *statsClient) Health(ctx context.Context) (string, error) {
	var resp map[string]string
	if err := c.getJSON(ctx, "/health", &resp); err != nil {
		return "", err
	}
	return resp["status"], nil
}

// Stats возвращает текущие счетчики ретранслятора.
func (c *statsClient) Stats(ctx context.Context) (relay.Stats, error) {
	var stats relay.Stats
	err := c.getJSON(ctx, "/api/v1/stats", &stats)
	return stats, err
}

func (c *statsClient) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status %d for %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
