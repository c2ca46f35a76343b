package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodai/festival-guide/backend/internal/dietary"
	"github.com/foodai/festival-guide/backend/internal/types"
)

type boothsResponse struct {
	Booths []dietary.BoothResult `json:"booths"`
}

type itemsResponse struct {
	Items []dietary.Result `json:"items"`
}

func TestHealth(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp types.HealthResponse
	decode(t, w, &resp)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, 8, resp.Booths)
	assert.Equal(t, 36, resp.Items)
	assert.Equal(t, "disabled", resp.Redis)
}

func TestListBoothsWithoutProfile(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(http.MethodGet, "/api/v1/booths", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp boothsResponse
	decode(t, w, &resp)
	require.Len(t, resp.Booths, 8)
	assert.Equal(t, "B01", resp.Booths[0].Booth.ID)
	for _, b := range resp.Booths {
		assert.True(t, b.Verdict.Allowed)
		assert.Empty(t, b.Verdict.Reasons)
	}
}

func TestListBoothsHalalRequired(t *testing.T) {
	a := newTestAPI(t)
	require.Equal(t, http.StatusOK, a.do(http.MethodPut, "/api/v1/profile", `{"halalMode":"REQUIRED","spiceTolerance":4,"budget":20000}`).Code)

	w := a.do(http.MethodGet, "/api/v1/booths", nil)
	var all boothsResponse
	decode(t, w, &all)
	require.Len(t, all.Booths, 8)

	w = a.do(http.MethodGet, "/api/v1/booths?allowed=true", nil)
	var allowed boothsResponse
	decode(t, w, &allowed)
	require.NotEmpty(t, allowed.Booths)
	assert.Less(t, len(allowed.Booths), len(all.Booths))
	for _, b := range allowed.Booths {
		assert.True(t, b.Booth.HalalCertified, b.Booth.ID)
		assert.True(t, b.Verdict.Allowed)
	}

	for _, b := range all.Booths {
		if b.Booth.ID == "B03" {
			assert.Equal(t, []dietary.Reason{dietary.ReasonNotHalalCertified, dietary.ReasonContainsPork}, b.Verdict.Reasons)
		}
	}
}

func TestListBoothsRejectsBadFilter(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(http.MethodGet, "/api/v1/booths?allowed=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBooth(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(http.MethodGet, "/api/v1/booths/B03", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail types.BoothDetail
	decode(t, w, &detail)
	assert.Equal(t, "BBQ Pork Bun", detail.Booth.Name)
	require.NotEmpty(t, detail.Menu)
	assert.Equal(t, "M11", detail.Menu[0].Item.ID)

	w = a.do(http.MethodGet, "/api/v1/booths/B99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"booth not found"}`, w.Body.String())
}

func TestGetMenuItem(t *testing.T) {
	a := newTestAPI(t)
	require.Equal(t, http.StatusOK, a.do(http.MethodPut, "/api/v1/profile", `{"avoid":{"pork":true}}`).Code)

	w := a.do(http.MethodGet, "/api/v1/booths/B03/menu/M11", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var result dietary.Result
	decode(t, w, &result)
	assert.Equal(t, "M11", result.Item.ID)
	assert.NotEmpty(t, result.Item.Description)
	assert.NotEmpty(t, result.Item.Steps)
	assert.False(t, result.Verdict.Allowed)
	assert.Equal(t, []dietary.Reason{dietary.ReasonContainsPork}, result.Verdict.Reasons)

	w = a.do(http.MethodGet, "/api/v1/booths/B01/menu/M11", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"menu item not found"}`, w.Body.String())
}

func TestRecommendations(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(http.MethodGet, "/api/v1/recommendations?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp itemsResponse
	decode(t, w, &resp)
	require.Len(t, resp.Items, 5)

	require.Equal(t, http.StatusOK, a.do(http.MethodPut, "/api/v1/profile", `{"spiceTolerance":1,"budget":5000}`).Code)
	w = a.do(http.MethodGet, "/api/v1/recommendations", nil)
	resp = itemsResponse{}
	decode(t, w, &resp)
	require.NotEmpty(t, resp.Items)
	for i, r := range resp.Items {
		assert.LessOrEqual(t, r.Item.Spiciness, 1)
		assert.LessOrEqual(t, r.Item.Price, 5000.0)
		if i > 0 {
			assert.GreaterOrEqual(t, resp.Items[i-1].Verdict.Score, r.Verdict.Score)
		}
	}

	for _, q := range []string{"-1", "ten"} {
		w = a.do(http.MethodGet, "/api/v1/recommendations?limit="+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestEvaluate(t *testing.T) {
	a := newTestAPI(t)
	items := []map[string]any{
		{"id": "x1", "name": "Pork Belly", "price": 9000, "containsPork": true},
		{"id": "x2", "name": "Rice Cake", "price": 4000, "spiciness": 1, "allergens": []string{"NUTS"}},
	}

	w := a.do(http.MethodPost, "/api/v1/evaluate", map[string]any{"profile": nil, "items": items})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Results []dietary.Result `json:"results"`
	}
	decode(t, w, &resp)
	require.Len(t, resp.Results, 2)
	assert.True(t, resp.Results[0].Verdict.Allowed)
	assert.True(t, resp.Results[1].Verdict.Allowed)

	w = a.do(http.MethodPost, "/api/v1/evaluate", map[string]any{
		"profile": map[string]any{"avoid": map[string]any{"pork": true}, "allergies": map[string]any{"nuts": true}},
		"items":   items,
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp.Results = nil
	decode(t, w, &resp)
	assert.Equal(t, []dietary.Reason{dietary.ReasonContainsPork}, resp.Results[0].Verdict.Reasons)
	assert.Equal(t, []dietary.Reason{dietary.AllergenMatch(dietary.AllergenNuts)}, resp.Results[1].Verdict.Reasons)

	w = a.do(http.MethodPost, "/api/v1/evaluate", `{"profile":"strict","items":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// the stored profile is not touched
	w = a.do(http.MethodGet, "/api/v1/profile", nil)
	assert.JSONEq(t, `{"profile":null}`, w.Body.String())
}
