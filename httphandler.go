package notify

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/julienschmidt/httprouter"
)

type sendSMSResponse struct {
	RefNumber         string                   `json:"refNumber"`
	ValidNumbers      int                      `json:"validNumbers"`
	InvalidNumbers    int                      `json:"invalidNumbers"`
	SendSuccess       bool                     `json:"sendSuccess"`
	StatusDescription string                   `json:"statusDescription"`
	MessagesSent      int                      `json:"messagesSent"`
	Results           []SendSMSResponseMessage `json:"results"`
}

type SMSRequest struct {
	MSISDNS []string `json:"msisdns"`
	Message string   `json:"message"`
}

// StartServer initiates the HTTP server.
func (s *NotifyServer) StartServer() error {
	address := fmt.Sprintf(":%v", s.Config.HTTPPort)

	s.Log.Infof("Notify is listening on %v", address)
	err := http.ListenAndServe(address, s.router())
	if err != nil {
		s.Log.Errorf("ListenAndServe:%v\n", err)
		return err
	}
	return nil
}

func (s *NotifyServer) router() *httprouter.Router {
	router := httprouter.New()
	router.GET("/ping", s.handlePing)
	router.GET("/channel", s.handleChannel)
	router.POST("/sendsms", s.handleSendSMS)
	router.POST("/normalize", s.handleNormalize)
	return router
}

// handleSendSMS expects a JSON body with a message and a list of msisdns.
// Every valid number receives its own gateway request.
func (s *NotifyServer) handleSendSMS(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userAuth, identity := userHasPermission(s, r)
	if !userAuth {
		http.Error(w, "User unauthorized", http.StatusUnauthorized)
		return
	}

	var postData SMSRequest
	err := json.NewDecoder(r.Body).Decode(&postData)
	if err != nil {
		http.Error(w, "Invalid message or msisdn json data", http.StatusNotAcceptable)
		return
	}

	cleanMsg := cleanMessage(postData.Message)
	if strings.TrimSpace(cleanMsg) == "" || len(postData.MSISDNS) == 0 {
		http.Error(w, "Invalid message or msisdn data", http.StatusNotAcceptable)
		return
	}

	// Length is counted in characters; a single non-ASCII character switches
	// the whole message to the shorter UCS-2 segment length.
	if segs := s.Config.SMSProvider.MaxMessageSegments; segs > 0 {
		maxLen := maxMessageLength(cleanMsg, segs)
		if utf8.RuneCountInString(cleanMsg) > maxLen {
			lErr := fmt.Sprintf("Message exceeds max allowed length (%v characters)", maxLen)
			http.Error(w, lErr, http.StatusNotAcceptable)
			return
		}
	}

	cns := cleanMSISDNs(postData.MSISDNS, s.Config.SMSProvider.Countries)
	sendR := sendSMSResponse{
		ValidNumbers:   len(cns),
		InvalidNumbers: len(postData.MSISDNS) - len(cns),
	}

	if len(cns) > 0 {
		sendR.RefNumber, sendR.Results, err = s.SendSMSMessages(r.Context(), cleanMsg, identity, cns)
		for _, res := range sendR.Results {
			if res.Status == Sent {
				sendR.MessagesSent++
			}
		}
		if err == nil {
			sendR.SendSuccess = true
		} else {
			sendR.StatusDescription = err.Error()
		}
	} else {
		sendR.StatusDescription = "No valid msisdns"
	}

	js, err := json.Marshal(sendR)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(js)
}

// handleNormalize expects a list of mobile numbers which it would
// then run through a series of operations to validate, clean up and remove
// duplicates.  It returns a JSON list of valid numbers.
func (s *NotifyServer) handleNormalize(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userAuth, _ := userHasPermission(s, r)
	if !userAuth {
		http.Error(w, "User unauthorized", http.StatusUnauthorized)
		return
	}

	var postData SMSRequest
	err := json.NewDecoder(r.Body).Decode(&postData)
	if err != nil {
		http.Error(w, "Invalid message or msisdn json data", http.StatusNotAcceptable)
		return
	}

	js, err := json.Marshal(cleanMSISDNs(postData.MSISDNS, s.Config.SMSProvider.Countries))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(js)
}

// handleChannel reports which channel messages are sent through. Credentials
// are never part of the description.
func (s *NotifyServer) handleChannel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userAuth, _ := userHasPermission(s, r)
	if !userAuth {
		http.Error(w, "User unauthorized", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "%v", s.Sender.Describe())
}

func (s *NotifyServer) handlePing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "{\"Timestamp\": %v}", time.Now().Unix())
}
