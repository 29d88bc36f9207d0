package handler

import (
	"encoding/json"
	"net/http"

	"github.com/campustrade/verify-api/internal/application/otp"
	"github.com/campustrade/verify-api/internal/pkg/validate"
)

// OtpHandler handles the public OTP issue/verify endpoints.
type OtpHandler struct {
	svc otp.Service
}

func NewOtpHandler(svc otp.Service) *OtpHandler {
	return &OtpHandler{svc: svc}
}

func (h *OtpHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req otp.RequestChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.RequestChallenge(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, OtpEnvelope{
		Success: true,
		Message: "OTP sent successfully",
		Debug:   result.DebugHint,
	})
}

func (h *OtpHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req otp.VerifyChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.VerifyChallenge(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, OtpEnvelope{
		Success:           true,
		Message:           "Email verified successfully",
		VerificationToken: result.VerificationToken,
	})
}
