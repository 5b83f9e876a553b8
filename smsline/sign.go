package smsline

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"unicode/utf16"
	"unicode/utf8"
)

var isNumbersOnly = regexp.MustCompile(`^[0-9]*$`)

// MSISDN strips every character that is not an ASCII digit.
func MSISDN(phone string) string {
	if isNumbersOnly.MatchString(phone) {
		return phone
	}
	cleanedSpace := [20]byte{}
	cleaned := cleanedSpace[:0]
	for i := 0; i < len(phone); i++ {
		if c := phone[i]; c >= '0' && c <= '9' {
			cleaned = append(cleaned, c)
		}
	}
	return string(cleaned)
}

// Sign returns the hex encoded HMAC-SHA256 of body, keyed with password.
// body must be the exact bytes that are transmitted.
func Sign(password string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(password))
	mac.Write([]byte(signingPrefix))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// encodeRequest produces the canonical body: fields in declaration order,
// no HTML escaping, '/' written as "\/", backspace and form feed as "\b" and
// "\f", and non-ASCII as lowercase \uXXXX. This is the byte layout the
// gateway's reference client produces, whatever encoding/json version builds it.
func encodeRequest(r request) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	raw := bytes.TrimRight(buf.Bytes(), "\n")

	out := make([]byte, 0, len(raw)+8)
	for len(raw) > 0 {
		if raw[0] == '\\' && len(raw) > 1 {
			// escapes are copied whole so an escaped backslash is never
			// mistaken for the start of another escape
			switch {
			case bytes.HasPrefix(raw, []byte(`\u0008`)):
				out = append(out, '\\', 'b')
				raw = raw[6:]
			case bytes.HasPrefix(raw, []byte(`\u000c`)):
				out = append(out, '\\', 'f')
				raw = raw[6:]
			default:
				out = append(out, raw[0], raw[1])
				raw = raw[2:]
			}
			continue
		}
		c, size := utf8.DecodeRune(raw)
		raw = raw[size:]
		switch {
		case c == '/':
			out = append(out, '\\', '/')
		case c < utf8.RuneSelf:
			out = append(out, byte(c))
		default:
			for _, u := range utf16.Encode([]rune{c}) {
				out = append(out, fmt.Sprintf(`\u%04x`, u)...)
			}
		}
	}
	return out, nil
}

// code accepts both string and numeric error codes.
type code string

func (c *code) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = code(s)
		return nil
	}
	if string(b) == "null" {
		*c = ""
		return nil
	}
	*c = code(bytes.TrimSpace(b))
	return nil
}
