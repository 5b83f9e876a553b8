package notify

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, s *NotifyServer, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, req)
	return rec
}

func TestHandleSendSMS(t *testing.T) {
	var bodies []string
	sender := newGatewaySender(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(b))
		w.WriteHeader(http.StatusOK)
	})
	s := newTestServer(t, sender)
	s.Config.SMSProvider.Countries = []string{"ZA"}

	rec := doRequest(t, s, http.MethodPost, "/sendsms",
		`{"msisdns": ["082 123 4567", "0821234567", "12"], "message": "Water off at 10:00"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp sendSMSResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.SendSuccess)
	assert.Equal(t, 1, resp.ValidNumbers)
	assert.Equal(t, 2, resp.InvalidNumbers)
	assert.Equal(t, 1, resp.MessagesSent)
	assert.NotEmpty(t, resp.RefNumber)
	assert.Equal(t, []string{`{"target":"IMQS","msisdn":"27821234567","text":"Water off at 10:00"}`}, bodies)
}

func TestHandleSendSMSGatewayRejects(t *testing.T) {
	sender := newGatewaySender(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":"AUTH","message":"bad signature"}}`))
	})
	s := newTestServer(t, sender)

	rec := doRequest(t, s, http.MethodPost, "/sendsms", `{"msisdns": ["375291234567"], "message": "hi"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp sendSMSResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.SendSuccess)
	assert.Equal(t, 0, resp.MessagesSent)
	assert.Contains(t, resp.StatusDescription, "bad signature")
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "AUTH", resp.Results[0].ErrorCode)
}

func TestHandleSendSMSValidation(t *testing.T) {
	s := newTestServer(t, MockProviderSender{})

	rec := doRequest(t, s, http.MethodPost, "/sendsms", `not json`)
	assert.Equal(t, http.StatusNotAcceptable, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/sendsms", `{"msisdns": [], "message": "hi"}`)
	assert.Equal(t, http.StatusNotAcceptable, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/sendsms", `{"msisdns": ["1"], "message": "\u0007"}`)
	assert.Equal(t, http.StatusNotAcceptable, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/sendsms", `{"msisdns": ["1"], "message": "`+strings.Repeat("ж", ucs2SegmentLength+1)+`"}`)
	assert.Equal(t, http.StatusNotAcceptable, rec.Code)

	long := strings.Repeat("a", gsmSegmentLength+1)
	rec = doRequest(t, s, http.MethodPost, "/sendsms", `{"msisdns": ["1"], "message": "`+long+`"}`)
	assert.Equal(t, http.StatusNotAcceptable, rec.Code)
}

func TestHandleSendSMSCyrillic(t *testing.T) {
	var bodies []string
	sender := newGatewaySender(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(b))
		w.WriteHeader(http.StatusOK)
	})
	s := newTestServer(t, sender)

	rec := doRequest(t, s, http.MethodPost, "/sendsms", `{"msisdns": ["375291234567"], "message": "Вода"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp sendSMSResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.SendSuccess)
	assert.Equal(t, []string{`{"target":"IMQS","msisdn":"375291234567","text":"\u0412\u043e\u0434\u0430"}`}, bodies)
}

func TestHandleNormalize(t *testing.T) {
	s := newTestServer(t, MockProviderSender{})
	s.Config.SMSProvider.Countries = []string{"ZA"}

	rec := doRequest(t, s, http.MethodPost, "/normalize", `{"msisdns": ["082 123 4567", "+27821234567", "0"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["27821234567"]`, rec.Body.String())
}

func TestHandleChannel(t *testing.T) {
	sender := newGatewaySender(t, func(w http.ResponseWriter, r *http.Request) {})
	s := newTestServer(t, sender)

	rec := doRequest(t, s, http.MethodGet, "/channel", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sender.Transport.String(), rec.Body.String())
	assert.True(t, strings.HasPrefix(rec.Body.String(), "smsline://127.0.0.1:"))
}

func TestHandleUnknownAuthService(t *testing.T) {
	s := newTestServer(t, MockProviderSender{})
	s.Config.Authentication = ConfigAuth{Enabled: true, Service: "ldap"}

	rec := doRequest(t, s, http.MethodPost, "/normalize", `{"msisdns": ["1"]}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
