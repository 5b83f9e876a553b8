package notify

import (
	"context"
	"errors"

	"github.com/IMQS/notify/smsline"
)

// SMSLineSender sends through an SMSLine transport. The gateway accepts one
// recipient per request, so destinations are sent one after the other.
type SMSLineSender struct {
	Transport *smsline.Transport
}

func (p *SMSLineSender) Describe() string {
	return p.Transport.String()
}

// SendSMS stops early only when ctx is done. A rejected or failed
// destination does not prevent the remaining ones from being tried.
func (p *SMSLineSender) SendSMS(ctx context.Context, s *NotifyServer, m message) ([]SendSMSResponseMessage, error) {
	var firstErr error
	res := make([]SendSMSResponseMessage, 0, len(m.Destination))
	for _, to := range m.Destination {
		if ctx.Err() != nil {
			if firstErr == nil {
				firstErr = ctx.Err()
			}
			break
		}

		r := SendSMSResponseMessage{To: to, Status: Sent}
		_, err := p.Transport.Send(ctx, smsline.SMSMessage{Phone: to, Body: m.Text})
		if err != nil {
			r.Status = Failed
			r.ErrorCode, r.ErrorDesc = describeError(err)
			s.Log.Warnf("SMSLine send to %v failed: %v", to, err)
			if firstErr == nil {
				firstErr = err
			}
		}
		res = append(res, r)
	}
	return res, firstErr
}

func describeError(err error) (string, string) {
	var te *smsline.TransportError
	if errors.As(err, &te) {
		return te.Code, te.Message
	}
	var ne *smsline.NetworkError
	if errors.As(err, &ne) {
		return "network", ne.Err.Error()
	}
	return "error", err.Error()
}
