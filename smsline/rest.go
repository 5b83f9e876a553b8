package smsline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// Config holds the account and endpoint settings of a Transport.
// An empty Host and a zero Port select the gateway defaults.
type Config struct {
	Login    string
	Password string
	From     string
	Host     string
	Port     int
}

// Transport delivers SMS messages through a single SMSLine account.
// It holds no mutable state and is safe for concurrent use.
type Transport struct {
	client *http.Client
	config Config
}

// NewTransport returns a Transport. A nil client selects http.DefaultClient,
// which has no timeout; callers that need bounded latency must supply one.
func NewTransport(cfg Config, client *http.Client) *Transport {
	if client == nil {
		client = http.DefaultClient
	}

	return &Transport{
		client: client,
		config: cfg,
	}
}

// Endpoint returns host[:port] of the gateway this transport talks to.
func (t *Transport) Endpoint() string {
	host := t.config.Host
	if host == "" {
		host = DefaultHost
	}
	if t.config.Port != 0 {
		host += ":" + strconv.Itoa(t.config.Port)
	}
	return host
}

// String renders the transport as smsline://[endpoint]?from=sender.
// The endpoint is left out when neither host nor port were overridden.
func (t *Transport) String() string {
	endpoint := ""
	if t.config.Host != "" || t.config.Port != 0 {
		endpoint = t.Endpoint()
	}
	return fmt.Sprintf("%v://%v?from=%v", Scheme, endpoint, url.QueryEscape(t.config.From))
}

// Supports reports whether m is a message kind this transport delivers.
func (t *Transport) Supports(m Message) bool {
	switch m.(type) {
	case SMSMessage, *SMSMessage:
		return true
	}
	return false
}

// SendMessage is the entry point for callers holding a generic Message.
func (t *Transport) SendMessage(ctx context.Context, m Message) (*SentMessage, error) {
	switch sms := m.(type) {
	case SMSMessage:
		return t.Send(ctx, sms)
	case *SMSMessage:
		if sms != nil {
			return t.Send(ctx, *sms)
		}
	}
	return nil, ErrUnsupportedMessage
}

// Send submits one SMS. A non-200 reply is returned as *TransportError, a
// failed round trip as *NetworkError. Nothing is retried.
func (t *Transport) Send(ctx context.Context, m SMSMessage) (*SentMessage, error) {
	body, err := encodeRequest(request{
		Target: t.config.From,
		MSISDN: MSISDN(m.Phone),
		Text:   m.Body,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://"+t.Endpoint()+sendPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	t.applyHeaders(req, body)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, readError(resp)
	}
	io.Copy(io.Discard, resp.Body)

	return &SentMessage{
		Message:   m,
		Transport: t.String(),
	}, nil
}

func (t *Transport) applyHeaders(req *http.Request, body []byte) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization-User", t.config.Login)
	req.Header.Set("Authorization", "Bearer "+Sign(t.config.Password, body))
}

func readError(resp *http.Response) error {
	te := &TransportError{StatusCode: resp.StatusCode}
	env := errorEnvelope{}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil || (env.Error.Message == "" && env.Error.Code == "") {
		te.Code = strconv.Itoa(resp.StatusCode)
		te.Message = http.StatusText(resp.StatusCode)
		return te
	}
	te.Code = string(env.Error.Code)
	te.Message = env.Error.Message
	return te
}
