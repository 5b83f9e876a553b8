package notify

import (
	"net/http"

	"github.com/IMQS/serviceauth"
)

const sendPermission = "bulksms"

// userHasPermission returns the identity of the caller when the configured
// auth service grants the send permission. Unknown services deny everything.
func userHasPermission(s *NotifyServer, r *http.Request) (bool, string) {
	auth := s.Config.Authentication
	if !auth.Enabled {
		return true, ""
	}

	switch auth.Service {
	case "", "serviceauth":
		httpCode, _, authResponse := serviceauth.VerifyUserHasPermission(r, sendPermission)
		if httpCode == http.StatusOK {
			return true, authResponse.Identity
		}
		s.Log.Infof("%v: User unauthorized", httpCode)
	default:
		s.Log.Warnf("Unknown authentication service %q, denying request", auth.Service)
	}
	return false, ""
}
