// Package openfoodfacts searches the Open Food Facts product database.
package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ccamposlozano/fitness-tracker-ai/internal/model"
	"github.com/ccamposlozano/fitness-tracker-ai/internal/nutrition"
)

const (
	defaultBaseURL  = "https://world.openfoodfacts.org"
	defaultPageSize = 10
	userAgent       = "fittrack/1.0 (+https://github.com/ccamposlozano/fitness-tracker-ai)"
)

type Client struct {
	BaseURL  string
	Timeout  time.Duration
	PageSize int

	http *resty.Client
}

func (c *Client) client() *resty.Client {
	if c.http != nil {
		return c.http
	}
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	c.http = resty.New().
		SetBaseURL(base).
		SetHeader("User-Agent", userAgent).
		SetTimeout(timeout)
	return c.http
}

// SearchFoods returns products that publish per-100 g nutriments.
// Products with neither a name nor any _100g value are skipped.
func (c *Client) SearchFoods(ctx context.Context, query string) ([]model.FoodCandidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	limit := c.PageSize
	if limit <= 0 {
		limit = defaultPageSize
	}
	resp, err := c.client().R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"search_terms":  query,
			"search_simple": "1",
			"action":        "process",
			"json":          "1",
			"page_size":     strconv.Itoa(limit),
		}).
		Get("/cgi/search.pl")
	if err != nil {
		return nil, fmt.Errorf("execute openfoodfacts search request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("openfoodfacts search request failed with status %d", resp.StatusCode())
	}

	var parsed offSearchResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("decode openfoodfacts search response: %w", err)
	}
	out := make([]model.FoodCandidate, 0, len(parsed.Products))
	for _, p := range parsed.Products {
		name := productName(p)
		if name == "" || !hasPer100g(p.Nutriments) {
			continue
		}
		out = append(out, model.FoodCandidate{
			Name:   name,
			Source: "openfoodfacts",
			Per100g: model.BaselineProfile{Nutrients: model.Nutrients{
				Calories: per100g(p.Nutriments, "energy-kcal"),
				ProteinG: per100g(p.Nutriments, "proteins"),
				CarbsG:   per100g(p.Nutriments, "carbohydrates"),
				FatG:     per100g(p.Nutriments, "fat"),
			}},
		})
	}
	return out, nil
}

func productName(p offProduct) string {
	name := strings.TrimSpace(p.ProductName)
	if name == "" {
		return ""
	}
	if brand := strings.TrimSpace(strings.Split(p.Brands, ",")[0]); brand != "" {
		return name + " (" + brand + ")"
	}
	return name
}

func per100g(n map[string]any, base string) float64 {
	return nutrition.CoerceNumber(n[base+"_100g"])
}

func hasPer100g(n map[string]any) bool {
	for _, base := range []string{"energy-kcal", "proteins", "carbohydrates", "fat"} {
		if _, ok := n[base+"_100g"]; ok {
			return true
		}
	}
	return false
}

type offProduct struct {
	Code        string         `json:"code"`
	ProductName string         `json:"product_name"`
	Brands      string         `json:"brands"`
	Nutriments  map[string]any `json:"nutriments"`
}

type offSearchResponse struct {
	Products []offProduct `json:"products"`
}
