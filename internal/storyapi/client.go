// internal/storyapi/client.go
package storyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/storyboardapp/backend/internal/config"
	"github.com/storyboardapp/backend/internal/models"
)

// Source supplies pages of canonical assets. The feed service depends on
// this interface so tests can swap in scripted pages.
type Source interface {
	FetchPage(ctx context.Context, page, limit int) ([]models.Asset, error)
	FetchAsset(ctx context.Context, id string) (models.Asset, error)
}

type Client struct {
	cfg        config.StoryAPIConfig
	httpClient *http.Client
	log        *logrus.Entry
}

func NewClient(cfg config.StoryAPIConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		log: logrus.WithField("component", "storyapi"),
	}
}

type assetQuery struct {
	IncludeLicenses bool        `json:"includeLicenses"`
	Moderated       bool        `json:"moderated"`
	OrderBy         string      `json:"orderBy"`
	OrderDirection  string      `json:"orderDirection"`
	Pagination      queryBounds `json:"pagination"`
}

type queryBounds struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// FetchPage requests one page of assets. Upstream failures never propagate:
// a non-2xx, malformed, or empty response degrades to an empty page, and
// page 0 additionally degrades to the built-in sample set so the first load
// always has cards.
func (c *Client) FetchPage(ctx context.Context, page, limit int) ([]models.Asset, error) {
	records, err := c.queryAssets(ctx, page, limit)
	if err != nil {
		c.log.WithError(err).WithField("page", page).Warn("Asset page fetch failed")
		return c.fallbackPage(page), nil
	}

	if len(records) == 0 {
		return c.fallbackPage(page), nil
	}

	assets := make([]models.Asset, 0, len(records))
	for _, record := range records {
		assets = append(assets, TransformRecord(record))
	}

	c.log.WithFields(logrus.Fields{
		"page":  page,
		"count": len(assets),
	}).Info("Fetched asset page")

	return assets, nil
}

func (c *Client) fallbackPage(page int) []models.Asset {
	if page == 0 {
		c.log.Info("Using built-in sample assets for page 0")
		return SampleAssets()
	}
	return nil
}

func (c *Client) queryAssets(ctx context.Context, page, limit int) ([]map[string]interface{}, error) {
	body, err := json.Marshal(assetQuery{
		IncludeLicenses: true,
		Moderated:       false,
		OrderBy:         "blockNumber",
		OrderDirection:  "desc",
		Pagination: queryBounds{
			Limit:  limit,
			Offset: page * limit,
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/assets", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("asset API returned status %d", resp.StatusCode)
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("malformed asset API response: %w", err)
	}

	return extractRecords(payload), nil
}

// FetchAsset retrieves a single upstream record by id through the same
// transform. Unlike page fetches, a missing asset is a real error.
func (c *Client) FetchAsset(ctx context.Context, id string) (models.Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/assets/"+id, nil)
	if err != nil {
		return models.Asset{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Asset{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.Asset{}, fmt.Errorf("asset %s not found (status %d)", id, resp.StatusCode)
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.Asset{}, fmt.Errorf("malformed asset API response: %w", err)
	}

	record := payload
	for _, key := range []string{"data", "asset"} {
		if nested, ok := payload[key].(map[string]interface{}); ok {
			record = nested
			break
		}
	}

	return TransformRecord(record), nil
}

// The upstream response wraps the asset list under one of several keys
// depending on the API version.
func extractRecords(payload map[string]interface{}) []map[string]interface{} {
	for _, key := range []string{"data", "assets", "items"} {
		raw, ok := payload[key].([]interface{})
		if !ok {
			continue
		}
		records := make([]map[string]interface{}, 0, len(raw))
		for _, item := range raw {
			if record, ok := item.(map[string]interface{}); ok {
				records = append(records, record)
			}
		}
		return records
	}
	return nil
}
