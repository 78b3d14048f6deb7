// Package usda searches USDA FoodData Central for per-100 g nutrient data.
package usda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ccamposlozano/fitness-tracker-ai/internal/model"
	"github.com/ccamposlozano/fitness-tracker-ai/internal/nutrition"
)

const (
	defaultBaseURL  = "https://api.nal.usda.gov"
	surveyDataType  = "Survey (FNDDS)"
	defaultPageSize = 10
)

type Client struct {
	APIKey   string
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
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	return c.http
}

type searchRequest struct {
	Query    string   `json:"query"`
	DataType []string `json:"dataType"`
	PageSize int      `json:"pageSize"`
}

// SearchFoods queries survey foods, whose nutrients are reported per 100 g.
func (c *Client) SearchFoods(ctx context.Context, query string) ([]model.FoodCandidate, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, fmt.Errorf("missing USDA API key")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	pageSize := c.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	resp, err := c.client().R().
		SetContext(ctx).
		SetQueryParam("api_key", c.APIKey).
		SetBody(searchRequest{Query: query, DataType: []string{surveyDataType}, PageSize: pageSize}).
		Post("/fdc/v1/foods/search")
	if err != nil {
		return nil, fmt.Errorf("execute USDA request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("USDA request failed with status %d", resp.StatusCode())
	}

	var parsed searchResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("decode USDA response: %w", err)
	}

	out := make([]model.FoodCandidate, 0, len(parsed.Foods))
	for _, f := range parsed.Foods {
		name := strings.TrimSpace(f.Description)
		if name == "" {
			continue
		}
		out = append(out, model.FoodCandidate{
			Name:    name,
			Source:  "usda",
			Per100g: model.BaselineProfile{Nutrients: macros(f.FoodNutrients)},
		})
	}
	return out, nil
}

func macros(nutrients []usdaNutrient) model.Nutrients {
	var n model.Nutrients
	for _, fn := range nutrients {
		v := nutrition.CoerceNumber(fn.Value)
		switch strings.ToLower(strings.TrimSpace(fn.NutrientName)) {
		case "energy":
			// Some records list energy twice, once in kJ.
			if unit := strings.ToLower(strings.TrimSpace(fn.UnitName)); unit == "" || unit == "kcal" {
				n.Calories = v
			}
		case "protein":
			n.ProteinG = v
		case "carbohydrate, by difference":
			n.CarbsG = v
		case "total lipid (fat)":
			n.FatG = v
		}
	}
	return n
}

type searchResponse struct {
	Foods []usdaFood `json:"foods"`
}

type usdaFood struct {
	FDCID         int64          `json:"fdcId"`
	Description   string         `json:"description"`
	FoodNutrients []usdaNutrient `json:"foodNutrients"`
}

type usdaNutrient struct {
	NutrientName string `json:"nutrientName"`
	UnitName     string `json:"unitName"`
	Value        any    `json:"value"`
}
