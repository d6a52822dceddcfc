package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gowrivallaban/account-open-agenticAI/api"
	"github.com/gowrivallaban/account-open-agenticAI/orchestrator"
)

type stubProcessor struct {
	result *orchestrator.Result
	err    error
	gotID  string
	gotMsg string
}

func (p *stubProcessor) Process(ctx context.Context, sessionID, userMessage string) (*orchestrator.Result, error) {
	p.gotID = sessionID
	p.gotMsg = userMessage
	return p.result, p.err
}

func newTestServer(p api.Processor) *httptest.Server {
	return httptest.NewServer(api.NewServer(api.Config{}, p).Handler())
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
}

func validAccountPayload() map[string]any {
	return map[string]any{
		"firstName":   "Ada",
		"lastName":    "Lovelace",
		"email":       "ada@example.com",
		"phone":       "(555) 123-4567",
		"dateOfBirth": "12/10/1990",
		"ssn":         "078-05-1120",
		"address": map[string]string{
			"street": "123 Main Street",
			"city":   "Springfield",
			"state":  "CA",
			"zip":    "90210",
		},
		"agreedToTerms": true,
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&stubProcessor{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, api.ServiceName, body["service"])
	assert.Equal(t, api.ServiceVersion, body["version"])
}

func TestChat(t *testing.T) {
	p := &stubProcessor{result: &orchestrator.Result{
		SessionID: "sess-1",
		Reply:     "What's your first name?",
	}}
	srv := newTestServer(p)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/chat", map[string]string{
		"message":   "Hi",
		"sessionId": "sess-1",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		SessionID string         `json:"sessionId"`
		Reply     string         `json:"reply"`
		Metadata  map[string]any `json:"metadata"`
	}
	decode(t, resp, &body)
	assert.Equal(t, "sess-1", body.SessionID)
	assert.Equal(t, "What's your first name?", body.Reply)
	assert.Empty(t, body.Metadata)

	assert.Equal(t, "sess-1", p.gotID)
	assert.Equal(t, "Hi", p.gotMsg)
}

func TestChat_MissingMessage(t *testing.T) {
	srv := newTestServer(&stubProcessor{})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/chat", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestChat_ProcessorError(t *testing.T) {
	p := &stubProcessor{err: errors.New("engine call failed: upstream unavailable")}
	srv := newTestServer(p)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/chat", map[string]string{"message": "Hi"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "Agent error: engine call failed: upstream unavailable", body["error"])
}

func TestCreateAccount(t *testing.T) {
	srv := newTestServer(&stubProcessor{})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/accounts", validAccountPayload())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		AccountNumber string `json:"accountNumber"`
		RoutingNumber string `json:"routingNumber"`
		AccountType   string `json:"accountType"`
		CustomerName  string `json:"customerName"`
		Message       string `json:"message"`
	}
	decode(t, resp, &body)
	assert.Len(t, body.AccountNumber, 10)
	assert.Len(t, body.RoutingNumber, 9)
	assert.Equal(t, "Checking", body.AccountType)
	assert.Equal(t, "Ada Lovelace", body.CustomerName)
	assert.Equal(t, "Account created successfully!", body.Message)
}

func TestCreateAccount_InvalidField(t *testing.T) {
	payload := validAccountPayload()
	payload["email"] = "not-an-email"

	srv := newTestServer(&stubProcessor{})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/accounts", payload)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "email", body["field"])
	assert.Equal(t, "Please enter a valid email address.", body["error"])
}

func TestCreateAccount_ConsentRequired(t *testing.T) {
	payload := validAccountPayload()
	payload["agreedToTerms"] = false

	srv := newTestServer(&stubProcessor{})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/accounts", payload)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "agreedToTerms", body["field"])
}

func TestCORS_Preflight(t *testing.T) {
	srv := newTestServer(&stubProcessor{})
	defer srv.Close()

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/chat", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
