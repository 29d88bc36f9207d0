package handler

import (
	"encoding/json"
	"net/http"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OtpEnvelope wraps OTP request/verify responses.
type OtpEnvelope struct {
	Success           bool   `json:"success"`
	Message           string `json:"message,omitempty"`
	Debug             string `json:"debug,omitempty"`
	VerificationToken string `json:"verification_token,omitempty"`
	Error             string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, OtpEnvelope{Success: false, Error: msg})
}
