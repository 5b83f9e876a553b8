package notify

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/IMQS/log"
	"github.com/IMQS/notify/smsline"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, sender SMSSender) *NotifyServer {
	t.Helper()
	s := &NotifyServer{
		Log:    log.NewTesting(t),
		Sender: sender,
	}
	s.Config.SMSProvider.Enabled = true
	s.Config.SMSProvider.MaxMessageSegments = 1
	return s
}

// newGatewaySender points an SMSLineSender at a TLS test gateway.
func newGatewaySender(t *testing.T, handler http.HandlerFunc) *SMSLineSender {
	t.Helper()
	gw := httptest.NewTLSServer(handler)
	t.Cleanup(gw.Close)

	u, err := url.Parse(gw.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	tr := smsline.NewTransport(smsline.Config{
		Login:    "u",
		Password: "p",
		From:     "IMQS",
		Host:     u.Hostname(),
		Port:     port,
	}, gw.Client())
	return &SMSLineSender{Transport: tr}
}
