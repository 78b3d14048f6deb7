package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccamposlozano/fitness-tracker-ai/internal/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return New(ts.URL, 5*time.Second, zerolog.Nop())
}

func TestLoginPostsForm(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/token", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		if r.PostForm.Get("username") != "ana@example.com" || r.PostForm.Get("password") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Incorrect username or password"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"abc","token_type":"bearer"}`))
	})

	tok, err := c.Login(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, model.Token{AccessToken: "abc", TokenType: "bearer"}, tok)

	_, err = c.Login(context.Background(), "ana@example.com", "nope")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Contains(t, err.Error(), "Incorrect username or password")
}

func TestAuthenticatedCallsSendBearerToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer abc" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
			return
		}
		switch r.URL.Path {
		case "/me":
			_, _ = w.Write([]byte(`{"id":3,"username":"ana","email":"ana@example.com","age":30,"weight":62.5,"height":168,"activity_level":"moderate","fitness_goal":"maintain"}`))
		case "/macro":
			assert.Equal(t, http.MethodPost, r.Method)
			_, _ = w.Write([]byte(`{"total_calories":2150.4,"protein":135,"carbs":240.2,"fat":71}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	_, err := c.Profile(context.Background())
	require.True(t, IsUnauthorized(err))

	authed := c.WithToken(model.Token{AccessToken: "abc", TokenType: "bearer"})
	u, err := authed.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ana", u.Username)
	assert.Equal(t, model.ActivityModerate, u.ActivityLevel)
	assert.Equal(t, 62.5, u.WeightKg)

	target, err := authed.MacroTarget(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.MacroTarget{Calories: 2150.4, ProteinG: 135, CarbsG: 240.2, FatG: 71}, target)
}

func TestSearchFoodsCoercesMixedValues(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search-foods", r.URL.Path)
		assert.Equal(t, "greek yogurt", r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`[
  {"name":"Yogurt, Greek, plain","calories":"59","protein":10.2,"carbs":"3.6","fat":"n/a"},
  {"name":"","calories":1,"protein":1,"carbs":1,"fat":1},
  {"name":"Yogurt, Greek, honey","calories":null,"protein":"-4","carbs":12,"fat":2.5}
]`))
	})

	foods, err := c.SearchFoods(context.Background(), " greek yogurt ")
	require.NoError(t, err)
	require.Len(t, foods, 2)

	assert.Equal(t, "Yogurt, Greek, plain", foods[0].Name)
	assert.Equal(t, model.Nutrients{Calories: 59, ProteinG: 10.2, CarbsG: 3.6, FatG: 0}, foods[0].Per100g.Nutrients)
	assert.Equal(t, model.Nutrients{Calories: 0, ProteinG: 0, CarbsG: 12, FatG: 2.5}, foods[1].Per100g.Nutrients)

	_, err = c.SearchFoods(context.Background(), "  ")
	require.Error(t, err)
}

func TestCreateEntrySendsScaledValues(t *testing.T) {
	var got entryPayload
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/food-log", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(`{"id":41,"food_name":"Apple","calories":78,"protein":0.45,"carbs":21,"fat":0.3,"grams":150,"logged_at":"2026-03-10T09:15:00Z"}`))
	})

	e, err := c.CreateEntry(context.Background(), "Apple", model.BaselineProfile{Nutrients: model.Nutrients{Calories: 52, ProteinG: 0.3, CarbsG: 14, FatG: 0.2}}, 150)
	require.NoError(t, err)

	assert.Equal(t, "Apple", got.FoodName)
	assert.InDelta(t, 78, got.Calories, 1e-9)
	assert.InDelta(t, 0.45, got.Protein, 1e-9)
	assert.InDelta(t, 21, got.Carbs, 1e-9)
	assert.InDelta(t, 0.3, got.Fat, 1e-9)
	assert.Equal(t, 150.0, got.Grams)

	assert.Equal(t, "41", e.ID)
	assert.True(t, e.LoggedAt.Equal(time.Date(2026, 3, 10, 9, 15, 0, 0, time.UTC)))
}

func TestCreateEntryRejectsBadGramsLocally(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { calls++ })

	_, err := c.CreateEntry(context.Background(), "Apple", model.BaselineProfile{}, 0)
	require.Error(t, err)
	assert.Zero(t, calls)
}

func TestUpdateAndDeleteEntry(t *testing.T) {
	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodPut:
			var p entryPayload
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&p))
			assert.InDelta(t, 39, p.Calories, 1e-9)
			_, _ = w.Write([]byte(`{"id":"41","food_name":"Apple","calories":39,"protein":0.15,"carbs":10.5,"fat":0.1,"grams":75,"logged_at":"2026-03-10T09:15:00Z"}`))
		case http.MethodDelete:
			if r.URL.Path == "/api/food-log/404" {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"detail":"Food log not found"}`))
				return
			}
			_, _ = w.Write([]byte(`{"message":"Food log deleted successfully"}`))
		}
	})

	e, err := c.UpdateEntry(context.Background(), "41", "Apple", model.BaselineProfile{Nutrients: model.Nutrients{Calories: 52, ProteinG: 0.2, CarbsG: 14, FatG: 0.133}}, 75)
	require.NoError(t, err)
	assert.Equal(t, 75.0, e.Grams)

	require.NoError(t, c.DeleteEntry(context.Background(), "41"))

	err = c.DeleteEntry(context.Background(), "404")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Food log not found", apiErr.Detail)

	assert.Equal(t, []string{"PUT /api/food-log/41", "DELETE /api/food-log/41", "DELETE /api/food-log/404"}, paths)
}

func TestListEntriesReadsNaiveTimestampsInViewerZone(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
  {"id":1,"food_name":"Oats","calories":"150","protein":5,"carbs":27,"fat":3,"grams":40,"logged_at":"2026-03-10T07:30:00.123456"},
  {"id":2,"food_name":"Rice","calories":260,"protein":5.4,"carbs":56,"fat":0.6,"grams":200,"logged_at":"2026-03-10T12:00:00+00:00"}
]`))
	})
	tokyo := time.FixedZone("JST", 9*3600)
	c.Location = tokyo

	entries, err := c.ListEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "1", entries[0].ID)
	assert.Equal(t, 150.0, entries[0].Nutrients.Calories)
	assert.Equal(t, tokyo, entries[0].LoggedAt.Location())
	assert.Equal(t, 7, entries[0].LoggedAt.Hour())
	assert.True(t, entries[1].LoggedAt.Equal(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)))
}

func TestErrorDetailFallsBackToBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":[{"loc":["body","age"],"msg":"field required"}]}`))
	})

	_, err := c.Register(context.Background(), model.Registration{Username: "ana"})
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Contains(t, apiErr.Detail, "field required")
}

func TestParseTimestamp(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	for _, raw := range []string{"2026-03-10T23:30:00", "2026-03-10 23:30:00.5"} {
		ts, err := parseTimestamp(raw, loc)
		assert.NoError(t, err, raw)
		assert.Equal(t, 23, ts.Hour(), raw)
		assert.Equal(t, loc, ts.Location(), raw)
	}
	_, err := parseTimestamp("", loc)
	require.Error(t, err)
	_, err = parseTimestamp("yesterday", loc)
	require.Error(t, err)
}
