package handlers

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"constituency_site/auth"
	"constituency_site/config"
	"constituency_site/middleware"
	"constituency_site/models"
	"constituency_site/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.MemoryStore) {
	t.Helper()

	memStore := store.NewMemoryStore()
	config.InitCache()
	Init(memStore, auth.NewStaticGateWith("view-secret"), auth.NewSessionManager(time.Minute), nil)

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/records", CreateRecord).Methods("POST")
	api.HandleFunc("/records/{id}", UpdateRecord).Methods("PUT")
	api.HandleFunc("/locations/blocks", GetBlocks).Methods("GET")
	api.HandleFunc("/locations/panchayats", GetPanchayats).Methods("GET")
	api.HandleFunc("/locations/panchayats/suggest", GetPanchayatSuggestions).Methods("GET")
	api.HandleFunc("/auth/login", Login).Methods("POST")
	api.HandleFunc("/auth/logout", Logout).Methods("POST")

	api.HandleFunc("/health", Health).Methods("GET")

	view := api.NewRoute().Subrouter()
	view.Use(middleware.RequireSession(Sessions()))
	view.HandleFunc("/records/search", SearchRecords).Methods("POST")
	view.HandleFunc("/records/{id}", DeleteRecord).Methods("DELETE")
	view.HandleFunc("/export/csv", ExportCSV).Methods("GET")
	view.HandleFunc("/export/pdf", ExportPDF).Methods("GET")
	view.HandleFunc("/export/excel", ExportExcel).Methods("GET")

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, memStore
}

func postJSON(t *testing.T, url string, payload interface{}, token string) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func loginToken(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp := postJSON(t, srv.URL+"/api/v1/auth/login", map[string]string{"password": "view-secret"}, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func validPayload() models.RecordInput {
	return models.RecordInput{
		VidhanSabha:  "Mohiuddin Nagar",
		Block:        "Patori Block",
		Panchayat:    "Rupauli",
		Name:         "A. Kumar",
		MobileNumber: "9876543210",
	}
}

func TestCreateRecordSuccess(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/records", validPayload(), "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out["id"])
}

func TestCreateRecordValidationFailure(t *testing.T) {
	srv, _ := newTestServer(t)

	payload := validPayload()
	payload.Block = "Select Block"
	payload.MobileNumber = "12345abcde"

	resp := postJSON(t, srv.URL+"/api/v1/records", payload, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out struct {
		Error  string `json:"error"`
		Fields []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Fields, 2)
	assert.Equal(t, "block", out.Fields[0].Field)
	assert.Equal(t, "mobile_number", out.Fields[1].Field)
}

func TestCreateRecordStoreUnavailable(t *testing.T) {
	srv, memStore := newTestServer(t)
	memStore.SetUnavailable(true)

	resp := postJSON(t, srv.URL+"/api/v1/records", validPayload(), "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestUpdateRecordReplacesFields(t *testing.T) {
	srv, _ := newTestServer(t)
	token := loginToken(t, srv)

	resp := postJSON(t, srv.URL+"/api/v1/records", validPayload(), "")
	var created map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	updated := validPayload()
	updated.Name = "A. Kumar Jr."
	body, _ := json.Marshal(updated)
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/v1/records/"+created["id"], bytes.NewReader(body))
	require.NoError(t, err)
	putResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	putResp.Body.Close()
	require.Equal(t, http.StatusOK, putResp.StatusCode)

	searchResp := postJSON(t, srv.URL+"/api/v1/records/search", map[string]string{}, token)
	defer searchResp.Body.Close()
	var out struct {
		Records []models.Record `json:"records"`
		Count   int             `json:"count"`
	}
	require.NoError(t, json.NewDecoder(searchResp.Body).Decode(&out))
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "A. Kumar Jr.", out.Records[0].Name)
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	srv, _ := newTestServer(t)

	body, _ := json.Marshal(validPayload())
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/v1/records/64b000000000000000000000", bytes.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSearchRequiresSession(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/records/search", map[string]string{}, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSearchWithFilters(t *testing.T) {
	srv, _ := newTestServer(t)
	token := loginToken(t, srv)

	first := validPayload()
	second := validPayload()
	second.Block = "Mohanpur Block"
	second.Panchayat = "Jalalpur"
	second.Name = "B. Devi"
	for _, p := range []models.RecordInput{first, second} {
		resp := postJSON(t, srv.URL+"/api/v1/records", p, "")
		resp.Body.Close()
	}

	resp := postJSON(t, srv.URL+"/api/v1/records/search", map[string]string{"block": "Patori Block"}, token)
	defer resp.Body.Close()
	var out struct {
		Records []models.Record `json:"records"`
		Count   int             `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "A. Kumar", out.Records[0].Name)

	resp = postJSON(t, srv.URL+"/api/v1/records/search", map[string]string{"name": "devi"}, token)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "B. Devi", out.Records[0].Name)
}

func TestSearchFiltersWithColonsDoNotShareCacheEntries(t *testing.T) {
	srv, memStore := newTestServer(t)
	token := loginToken(t, srv)

	// Filter values are arbitrary operator text; these two filters would
	// collide under naive colon-joined cache keys.
	_, err := memStore.Create(context.Background(), models.Record{
		Block:     "a",
		Panchayat: "b:",
		Name:      "A. Kumar",
	})
	require.NoError(t, err)

	// Prime the cache with a filter that matches nothing.
	resp := postJSON(t, srv.URL+"/api/v1/records/search", map[string]string{"block": "a:b"}, token)
	defer resp.Body.Close()
	var out struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, 0, out.Count)

	// The matching filter must not be served the cached empty result.
	resp = postJSON(t, srv.URL+"/api/v1/records/search", map[string]string{"block": "a", "panchayat": "b:"}, token)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 1, out.Count)
}

func TestSearchStoreDownIsNotEmptyResult(t *testing.T) {
	srv, memStore := newTestServer(t)
	token := loginToken(t, srv)
	memStore.SetUnavailable(true)

	resp := postJSON(t, srv.URL+"/api/v1/records/search", map[string]string{}, token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestDeleteRecordLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)
	token := loginToken(t, srv)

	resp := postJSON(t, srv.URL+"/api/v1/records", validPayload(), "")
	var created map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	del := func() int {
		req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/records/"+created["id"], nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusNoContent, del())
	assert.Equal(t, http.StatusNoContent, del(), "delete is idempotent")

	searchResp := postJSON(t, srv.URL+"/api/v1/records/search", map[string]string{"panchayat": "Rupauli"}, token)
	defer searchResp.Body.Close()
	var out struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(searchResp.Body).Decode(&out))
	assert.Equal(t, 0, out.Count)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/v1/auth/login", map[string]string{"password": "wrong"}, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutRevokesSession(t *testing.T) {
	srv, _ := newTestServer(t)
	token := loginToken(t, srv)

	resp := postJSON(t, srv.URL+"/api/v1/records/search", map[string]string{}, token)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/v1/auth/logout", map[string]string{}, token)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/v1/records/search", map[string]string{}, token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestExportCSVEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	token := loginToken(t, srv)

	resp := postJSON(t, srv.URL+"/api/v1/records", validPayload(), "")
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/export/csv", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	csvResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer csvResp.Body.Close()

	require.Equal(t, http.StatusOK, csvResp.StatusCode)
	assert.Contains(t, csvResp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, csvResp.Header.Get("Content-Disposition"), "constituency_data.csv")

	rows, err := csv.NewReader(csvResp.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "A. Kumar", rows[1][0])
}

func TestExportAcceptsSessionQueryParam(t *testing.T) {
	srv, _ := newTestServer(t)
	token := loginToken(t, srv)

	url := fmt.Sprintf("%s/api/v1/export/pdf?session_token=%s", srv.URL, token)
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

func TestExportExcelEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	token := loginToken(t, srv)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/export/excel", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
}

func TestHealthReflectsStoreState(t *testing.T) {
	srv, memStore := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/health")
	require.NoError(t, err)
	var out struct {
		Status      string `json:"status"`
		StoreStatus string `json:"store_status"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", out.Status)
	assert.Equal(t, "connected", out.StoreStatus)

	memStore.SetUnavailable(true)

	resp, err = http.Get(srv.URL + "/api/v1/health")
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "degraded", out.Status)
	assert.Equal(t, "unavailable", out.StoreStatus)
}

func TestLocationEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/locations/blocks")
	require.NoError(t, err)
	defer resp.Body.Close()
	var blocks struct {
		Blocks []string `json:"blocks"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&blocks))
	assert.Len(t, blocks.Blocks, 3)

	resp, err = http.Get(srv.URL + "/api/v1/locations/panchayats?block=Patori+Block")
	require.NoError(t, err)
	defer resp.Body.Close()
	var panchayats struct {
		Panchayats []string `json:"panchayats"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&panchayats))
	assert.Len(t, panchayats.Panchayats, 8)

	resp, err = http.Get(srv.URL + "/api/v1/locations/panchayats/suggest?q=ru")
	require.NoError(t, err)
	defer resp.Body.Close()
	var suggestions struct {
		Suggestions []string `json:"suggestions"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&suggestions))
	assert.Contains(t, suggestions.Suggestions, "Rupauli")
}
