package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/IMQS/notify/smsline"
	"github.com/google/uuid"
)

const (
	Sent   = "sent"
	Failed = "failed"
)

// SMSSender delivers a message to every destination and reports the outcome
// per destination. The returned error is the first failure, if any.
type SMSSender interface {
	SendSMS(ctx context.Context, s *NotifyServer, m message) ([]SendSMSResponseMessage, error)
	Describe() string
}

// The message struct is used to define a new SMS message that needs to be sent
// to a list of mobile numbers (Destination).
type message struct {
	Destination []string // List of string mobile numbers to send to
	Text        string   // The text message to send
}

// SendSMSResponseMessage is the outcome of sending to one destination.
type SendSMSResponseMessage struct {
	To        string `json:"to"`
	Status    string `json:"status"`
	ErrorCode string `json:"errorCode,omitempty"`
	ErrorDesc string `json:"errorDesc,omitempty"`
}

func (s *NotifyServer) newSender() (SMSSender, error) {
	switch s.Config.SMSProvider.Name {
	case "SMSLine":
		dsn, err := s.providerDSN()
		if err != nil {
			return nil, err
		}
		client, err := s.Config.SMSProvider.httpClient()
		if err != nil {
			return nil, err
		}
		tr, err := smsline.NewFactory(client).CreateFromString(dsn)
		if err != nil {
			return nil, err
		}
		return &SMSLineSender{Transport: tr}, nil
	case "MockProvider":
		return MockProviderSender{}, nil
	}
	return nil, fmt.Errorf("unknown SMS provider %q", s.Config.SMSProvider.Name)
}

func (s *NotifyServer) providerDSN() (string, error) {
	p := s.Config.SMSProvider
	if p.DSN != "" {
		return p.DSN, nil
	}
	if p.Channel == "" {
		return "", errors.New("no DSN or channel configured for SMS provider")
	}
	if s.DB.db == nil {
		return "", fmt.Errorf("channel %q requested but no dbConnection configured", p.Channel)
	}
	return s.DB.getChannelDSN(p.Channel)
}

func (p ConfigSmsProvider) httpClient() (*http.Client, error) {
	client := &http.Client{}
	if p.Timeout != "" {
		d, err := time.ParseDuration(p.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid SMS provider timeout: %w", err)
		}
		client.Timeout = d
	}
	return client, nil
}

// SendSMSMessages sends msg to every number in ns through the configured
// provider. It returns a reference number for the request, which is also
// written to the log.
func (s *NotifyServer) SendSMSMessages(ctx context.Context, msg, identity string, ns []string) (string, []SendSMSResponseMessage, error) {
	if !s.Config.SMSProvider.Enabled {
		return "", nil, errors.New("SendSMS disabled in config, not sending")
	}

	ref := uuid.New().String()
	s.Log.Debugf("%v: user %v sending message '%v' to %v recipients through %v.", ref, identity, msg, len(ns), s.Sender.Describe())

	resp, err := s.Sender.SendSMS(ctx, s, message{Destination: ns, Text: msg})
	if err != nil {
		s.Log.Errorf("%v: %v", ref, err)
	}
	return ref, resp, err
}

const (
	gsmSegmentLength  = 160 // 7 bit characters per segment
	ucs2SegmentLength = 70  // characters per segment once any rune is outside ASCII
)

// cleanMessage drops control characters other than newline. Everything else,
// including Cyrillic text, is kept and sent as UCS-2 by the gateway.
func cleanMessage(str string) string {
	return strings.Map(func(r rune) rune {
		if r != '\n' && unicode.IsControl(r) {
			return -1
		}
		return r
	}, str)
}

// maxMessageLength is the number of characters that fit in the given number
// of segments for msg.
func maxMessageLength(msg string, segments int) int {
	for _, r := range msg {
		if r >= utf8.RuneSelf {
			return segments * ucs2SegmentLength
		}
	}
	return segments * gsmSegmentLength
}
