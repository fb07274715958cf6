package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"covid-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testAPIKey = "test-api-key"

func newTestServer(t *testing.T) (*httptest.Server, *MemoryStore) {
	t.Helper()

	store := NewMemoryStore()
	config := &utils.Config{
		JWT: utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
	}
	handler := NewHandler(store, config, zap.NewNop())
	srv := httptest.NewServer(NewRouter(handler, testAPIKey, zap.NewNop()))
	t.Cleanup(srv.Close)

	return srv, store
}

func request(t *testing.T, method, url, body string) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Authorization", testAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestCreateAssignsIDAndStripsPassword(t *testing.T) {
	srv, store := newTestServer(t)

	resp := request(t, http.MethodPost, srv.URL+"/api/v2/user",
		`{"userName":"alice","password":"pw123","isCustomer":true}`)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)

	id, _ := body["id"].(string)
	assert.NotEmpty(t, id)
	assert.NotContains(t, body, "password")

	// The stored record holds a bcrypt hash, never the cleartext.
	stored, err := store.Get(context.Background(), CollectionUser, id)
	require.NoError(t, err)
	hash, _ := stored["password"].(string)
	assert.True(t, strings.HasPrefix(hash, "$2"), "password must be hashed, got %q", hash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("pw123")))
}

func TestBookingCRUD(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := request(t, http.MethodPost, srv.URL+"/api/v2/booking",
		`{"customerId":"cust-1","startTime":"t0","extensionFields":{"pin":"1234"}}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decodeBody(t, resp)["id"].(string)

	resp = request(t, http.MethodGet, srv.URL+"/api/v2/booking/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "cust-1", decodeBody(t, resp)["customerId"])

	// Patch overlays fields and never changes the id.
	resp = request(t, http.MethodPatch, srv.URL+"/api/v2/booking/"+id,
		`{"startTime":"t1","id":"forged"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	patched := decodeBody(t, resp)
	assert.Equal(t, "t1", patched["startTime"])
	assert.Equal(t, id, patched["id"])
	assert.Equal(t, "cust-1", patched["customerId"], "unpatched fields survive")

	resp = request(t, http.MethodDelete, srv.URL+"/api/v2/booking/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = request(t, http.MethodGet, srv.URL+"/api/v2/booking/"+id, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestUnknownCollectionRejected(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := request(t, http.MethodGet, srv.URL+"/api/v2/giraffe", "")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, decodeBody(t, resp)["message"], "giraffe")
}

func TestAPIKeyRequired(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v2/booking", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHealthSkipsAPIKey(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := request(t, http.MethodPost, srv.URL+"/api/v2/user",
		`{"userName":"alice","password":"pw123"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = request(t, http.MethodPost, srv.URL+"/api/v2/user/login?jwt=true",
		`{"userName":"alice","password":"pw123"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := decodeBody(t, resp)["jwt"].(string)
	require.NotEmpty(t, token)

	resp = request(t, http.MethodPost, srv.URL+"/api/v2/user/verify-token",
		`{"jwt":"`+token+`"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := request(t, http.MethodPost, srv.URL+"/api/v2/user",
		`{"userName":"alice","password":"pw123"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = request(t, http.MethodPost, srv.URL+"/api/v2/user/login",
		`{"userName":"alice","password":"wrong"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := request(t, http.MethodPost, srv.URL+"/api/v2/user/verify-token",
		`{"jwt":"not-a-token"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestListStripsPasswords(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := request(t, http.MethodPost, srv.URL+"/api/v2/user",
		`{"userName":"alice","password":"pw123"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = request(t, http.MethodGet, srv.URL+"/api/v2/user", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var users []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	require.Len(t, users, 1)
	assert.NotContains(t, users[0], "password")
}
