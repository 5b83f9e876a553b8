package notify

import "context"

type MockProviderSender struct {
}

func (p MockProviderSender) Describe() string {
	return "mock://"
}

// SendSMS simulates a SMS provider for testing purposes
// The messages always succeed with this provider.
func (p MockProviderSender) SendSMS(ctx context.Context, s *NotifyServer, m message) ([]SendSMSResponseMessage, error) {
	s.Log.Info("Simulating sending message with MockProviderSender\n")
	var msRess []SendSMSResponseMessage
	for _, dm := range m.Destination {
		msRess = append(msRess, SendSMSResponseMessage{
			To:     dm,
			Status: Sent,
		})
	}
	return msRess, nil
}
