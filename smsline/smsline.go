// Package smsline sends single SMS messages through the SMSLine gateway
// (https://api.smsline.by). Requests are signed with an HMAC-SHA256 bearer
// token derived from the request body and the account password.
package smsline

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultHost = "api.smsline.by"
	Scheme      = "smsline"

	sendPath      = "/v3/messages/single/sms"
	signingPrefix = "messagessinglesms"
)

// Message is anything that can be handed to a notification channel.
// SMSMessage is the only kind this package delivers.
type Message interface {
	Recipient() string
}

type SMSMessage struct {
	Phone string
	Body  string
}

func (m SMSMessage) Recipient() string {
	return m.Phone
}

// SentMessage is returned when the gateway accepted the message.
// The gateway does not expose a message ID.
type SentMessage struct {
	Message   SMSMessage
	Transport string
}

type request struct {
	Target string `json:"target"`
	MSISDN string `json:"msisdn"`
	Text   string `json:"text"`
}

type errorEnvelope struct {
	Error errorResponse `json:"error"`
}

type errorResponse struct {
	Code    code   `json:"code"`
	Message string `json:"message"`
}

var ErrUnsupportedMessage = errors.New("smsline: only SMS messages are supported")

// TransportError is returned when the gateway rejected the request.
type TransportError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("smsline: unable to send the SMS: %v (see %v)", e.Message, e.Code)
}

// NetworkError is returned when the HTTP round trip could not complete.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "smsline: request failed: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

type UnsupportedSchemeError struct {
	Scheme    string
	Supported []string
}

func (e *UnsupportedSchemeError) Error() string {
	return fmt.Sprintf("smsline: unsupported scheme %q (supported: %v)", e.Scheme, strings.Join(e.Supported, ", "))
}

// InvalidDSNError does not carry the DSN itself, which may hold a password.
type InvalidDSNError struct {
	Reason string
}

func (e *InvalidDSNError) Error() string {
	return "smsline: invalid DSN: " + e.Reason
}
