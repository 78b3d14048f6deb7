package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ccamposlozano/fitness-tracker-ai/internal/model"
	"github.com/ccamposlozano/fitness-tracker-ai/internal/nutrition"
)

// searchItem values arrive as numbers or numeric strings depending on the
// upstream catalog.
type searchItem struct {
	Name     string `json:"name"`
	Calories any    `json:"calories"`
	Protein  any    `json:"protein"`
	Carbs    any    `json:"carbs"`
	Fat      any    `json:"fat"`
}

func (c *Client) SearchFoods(ctx context.Context, query string) ([]model.FoodCandidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	var items []searchItem
	r := c.request(ctx).SetQueryParam("query", query)
	if err := c.do(r, http.MethodGet, "/api/search-foods", &items); err != nil {
		return nil, err
	}
	out := make([]model.FoodCandidate, 0, len(items))
	for _, it := range items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			continue
		}
		out = append(out, model.FoodCandidate{
			Name:   name,
			Source: "remote",
			Per100g: model.BaselineProfile{Nutrients: model.Nutrients{
				Calories: nutrition.CoerceNumber(it.Calories),
				ProteinG: nutrition.CoerceNumber(it.Protein),
				CarbsG:   nutrition.CoerceNumber(it.Carbs),
				FatG:     nutrition.CoerceNumber(it.Fat),
			}},
		})
	}
	return out, nil
}

type entryPayload struct {
	FoodName string  `json:"food_name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Grams    float64 `json:"grams"`
}

type entryResponse struct {
	ID       flexibleID `json:"id"`
	FoodName string     `json:"food_name"`
	Calories any        `json:"calories"`
	Protein  any        `json:"protein"`
	Carbs    any        `json:"carbs"`
	Fat      any        `json:"fat"`
	Grams    any        `json:"grams"`
	LoggedAt string     `json:"logged_at"`
}

// flexibleID accepts integer and string ids.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("entry id %s is neither string nor number", string(b))
	}
	*f = flexibleID(n.String())
	return nil
}

func newEntryPayload(name string, baseline model.BaselineProfile, grams float64) (entryPayload, error) {
	if err := nutrition.ValidateGrams(grams); err != nil {
		return entryPayload{}, err
	}
	abs := nutrition.Scale(baseline, grams)
	return entryPayload{
		FoodName: strings.TrimSpace(name),
		Calories: abs.Calories,
		Protein:  abs.ProteinG,
		Carbs:    abs.CarbsG,
		Fat:      abs.FatG,
		Grams:    grams,
	}, nil
}

func (c *Client) ListEntries(ctx context.Context) ([]model.LoggedEntry, error) {
	var raw []entryResponse
	if err := c.do(c.request(ctx), http.MethodGet, "/api/food-log", &raw); err != nil {
		return nil, err
	}
	out := make([]model.LoggedEntry, 0, len(raw))
	for _, r := range raw {
		e, err := c.toEntry(r)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (c *Client) CreateEntry(ctx context.Context, name string, baseline model.BaselineProfile, grams float64) (model.LoggedEntry, error) {
	payload, err := newEntryPayload(name, baseline, grams)
	if err != nil {
		return model.LoggedEntry{}, err
	}
	var raw entryResponse
	r := c.request(ctx).SetHeader("Content-Type", "application/json").SetBody(payload)
	if err := c.do(r, http.MethodPost, "/api/food-log", &raw); err != nil {
		return model.LoggedEntry{}, err
	}
	return c.toEntry(raw)
}

func (c *Client) UpdateEntry(ctx context.Context, id, name string, baseline model.BaselineProfile, grams float64) (model.LoggedEntry, error) {
	payload, err := newEntryPayload(name, baseline, grams)
	if err != nil {
		return model.LoggedEntry{}, err
	}
	var raw entryResponse
	r := c.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", id).
		SetBody(payload)
	if err := c.do(r, http.MethodPut, "/api/food-log/{id}", &raw); err != nil {
		return model.LoggedEntry{}, err
	}
	return c.toEntry(raw)
}

func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	r := c.request(ctx).SetPathParam("id", id)
	return c.do(r, http.MethodDelete, "/api/food-log/{id}", nil)
}

func (c *Client) toEntry(r entryResponse) (model.LoggedEntry, error) {
	loggedAt, err := parseTimestamp(r.LoggedAt, c.location())
	if err != nil {
		return model.LoggedEntry{}, fmt.Errorf("entry %s: %w", r.ID, err)
	}
	return model.LoggedEntry{
		ID:   string(r.ID),
		Name: strings.TrimSpace(r.FoodName),
		Nutrients: model.AbsoluteProfile{Nutrients: model.Nutrients{
			Calories: nutrition.CoerceNumber(r.Calories),
			ProteinG: nutrition.CoerceNumber(r.Protein),
			CarbsG:   nutrition.CoerceNumber(r.Carbs),
			FatG:     nutrition.CoerceNumber(r.Fat),
		}},
		Grams:    nutrition.CoerceNumber(r.Grams),
		LoggedAt: loggedAt,
	}, nil
}

func (c *Client) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// parseTimestamp reads RFC 3339 timestamps as-is and offset-less ones in loc.
func parseTimestamp(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("missing logged_at")
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized logged_at %q", raw)
}
