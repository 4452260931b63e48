package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	admissionerrors "solon/contexts/registry-governance/admission-engine/domain/errors"
	admissionhttp "solon/contexts/registry-governance/admission-engine/transport/http"
)

func writeAdmissionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, admissionhttp.ErrorResponse{Code: code, Message: message})
}

func writeAdmissionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, admissionerrors.ErrInvalidInput),
		errors.Is(err, admissionerrors.ErrInvalidAddress):
		writeAdmissionError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, admissionerrors.ErrIdempotencyKeyRequired):
		writeAdmissionError(w, http.StatusBadRequest, "idempotency_key_required", err.Error())
	case errors.Is(err, admissionerrors.ErrInsufficientFee):
		writeAdmissionError(w, http.StatusPaymentRequired, "insufficient_fee", err.Error())
	case errors.Is(err, admissionerrors.ErrInsufficientBalance):
		writeAdmissionError(w, http.StatusPaymentRequired, "insufficient_balance", err.Error())
	case errors.Is(err, admissionerrors.ErrBelowMinimumDeposit):
		writeAdmissionError(w, http.StatusPaymentRequired, "below_minimum_deposit", err.Error())
	case errors.Is(err, admissionerrors.ErrInsufficientStake):
		writeAdmissionError(w, http.StatusPaymentRequired, "insufficient_stake", err.Error())
	case errors.Is(err, admissionerrors.ErrNotOwner),
		errors.Is(err, admissionerrors.ErrNotRegistrySubmitter):
		writeAdmissionError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, admissionerrors.ErrApplicationNotFound),
		errors.Is(err, admissionerrors.ErrRoundNotFound),
		errors.Is(err, admissionerrors.ErrDepositNotFound),
		errors.Is(err, admissionerrors.ErrSettingsNotFound):
		writeAdmissionError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, admissionerrors.ErrApplicationExists):
		writeAdmissionError(w, http.StatusConflict, "candidate_occupied", err.Error())
	case errors.Is(err, admissionerrors.ErrPriorDepositsOutstanding):
		writeAdmissionError(w, http.StatusConflict, "prior_deposits_outstanding", err.Error())
	case errors.Is(err, admissionerrors.ErrIdempotencyConflict):
		writeAdmissionError(w, http.StatusConflict, "idempotency_conflict", err.Error())
	case errors.Is(err, admissionerrors.ErrRoundResolved):
		writeAdmissionError(w, http.StatusConflict, "round_resolved", err.Error())
	case errors.Is(err, admissionerrors.ErrRoundClosed):
		writeAdmissionError(w, http.StatusConflict, "round_closed", err.Error())
	case errors.Is(err, admissionerrors.ErrSideLocked):
		writeAdmissionError(w, http.StatusConflict, "side_locked", err.Error())
	case errors.Is(err, admissionerrors.ErrInvalidPhase):
		writeAdmissionError(w, http.StatusConflict, "invalid_phase", err.Error())
	case errors.Is(err, admissionerrors.ErrNothingToWithdraw):
		writeAdmissionError(w, http.StatusConflict, "nothing_to_withdraw", err.Error())
	case errors.Is(err, admissionerrors.ErrDeadlineNotReached):
		writeAdmissionError(w, http.StatusUnprocessableEntity, "deadline_not_reached", err.Error())
	case errors.Is(err, admissionerrors.ErrQuorumNotMet):
		writeAdmissionError(w, http.StatusUnprocessableEntity, "quorum_not_met", err.Error())
	case errors.Is(err, admissionerrors.ErrAmountOverflow):
		writeAdmissionError(w, http.StatusUnprocessableEntity, "amount_overflow", err.Error())
	default:
		writeAdmissionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	var req admissionhttp.SubmitApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAdmissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	// The body names the credited applicant; the acting caller arrives in the
	// gateway header and may differ only for the registry submitter.
	caller := strings.TrimSpace(r.Header.Get("X-Caller-Address"))
	if caller == "" {
		caller = strings.TrimSpace(req.Applicant)
	}
	if caller == "" {
		writeAdmissionError(w, http.StatusUnauthorized, "missing_caller", "applicant address is required in body or X-Caller-Address header")
		return
	}

	resp, err := s.admission.Handler.SubmitApplicationHandler(
		r.Context(),
		r.PathValue("kind"),
		caller,
		r.Header.Get("Idempotency-Key"),
		req,
	)
	if err != nil {
		writeAdmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleApplicationStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := s.admission.Handler.ApplicationStatusHandler(
		r.Context(),
		r.PathValue("kind"),
		r.PathValue("candidate"),
	)
	if err != nil {
		writeAdmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePlaceDeposit(w http.ResponseWriter, r *http.Request) {
	var req admissionhttp.PlaceDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAdmissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	participant := resolveCallerAddress(req.Participant, r)
	if participant == "" {
		writeAdmissionError(w, http.StatusUnauthorized, "missing_caller", "participant address is required in body or X-Caller-Address header")
		return
	}

	resp, err := s.admission.Handler.PlaceDepositHandler(
		r.Context(),
		r.PathValue("kind"),
		r.PathValue("candidate"),
		participant,
		r.Header.Get("Idempotency-Key"),
		req,
	)
	if err != nil {
		writeAdmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFinalizeRound(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeOptionalAdvanceBody(w, r)
	if !ok {
		return
	}

	resp, err := s.admission.Handler.FinalizeRoundHandler(
		r.Context(),
		r.PathValue("kind"),
		r.PathValue("candidate"),
		admissionhttp.FinalizeRoundRequest{Caller: resolveCallerAddress(req.Caller, r)},
	)
	if err != nil {
		writeAdmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChallenge(w http.ResponseWriter, r *http.Request) {
	var req admissionhttp.ChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAdmissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	challenger := resolveCallerAddress(req.Challenger, r)
	if challenger == "" {
		writeAdmissionError(w, http.StatusUnauthorized, "missing_caller", "challenger address is required in body or X-Caller-Address header")
		return
	}

	resp, err := s.admission.Handler.ChallengeHandler(
		r.Context(),
		r.PathValue("kind"),
		r.PathValue("candidate"),
		challenger,
		r.Header.Get("Idempotency-Key"),
		req,
	)
	if err != nil {
		writeAdmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEnterLameDuck(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeOptionalAdvanceBody(w, r)
	if !ok {
		return
	}

	resp, err := s.admission.Handler.EnterLameDuckHandler(
		r.Context(),
		r.PathValue("kind"),
		r.PathValue("candidate"),
		admissionhttp.AdvanceRequest{Caller: resolveCallerAddress(req.Caller, r)},
	)
	if err != nil {
		writeAdmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeOptionalAdvanceBody(w, r)
	if !ok {
		return
	}

	resp, err := s.admission.Handler.RegisterHandler(
		r.Context(),
		r.PathValue("kind"),
		r.PathValue("candidate"),
		admissionhttp.AdvanceRequest{Caller: resolveCallerAddress(req.Caller, r)},
	)
	if err != nil {
		writeAdmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	var req admissionhttp.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAdmissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	participant := resolveCallerAddress(req.Participant, r)
	if participant == "" {
		writeAdmissionError(w, http.StatusUnauthorized, "missing_caller", "participant address is required in body or X-Caller-Address header")
		return
	}

	resp, err := s.admission.Handler.WithdrawHandler(
		r.Context(),
		r.PathValue("kind"),
		r.PathValue("candidate"),
		participant,
		r.Header.Get("Idempotency-Key"),
	)
	if err != nil {
		writeAdmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetRound(w http.ResponseWriter, r *http.Request) {
	roundIndex, err := strconv.Atoi(r.PathValue("round_index"))
	if err != nil {
		writeAdmissionError(w, http.StatusBadRequest, "invalid_round_index", "round_index must be an integer")
		return
	}

	resp, err := s.admission.Handler.RoundHandler(
		r.Context(),
		r.PathValue("kind"),
		r.PathValue("candidate"),
		roundIndex,
	)
	if err != nil {
		writeAdmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetDeposit(w http.ResponseWriter, r *http.Request) {
	roundIndex, err := strconv.Atoi(r.PathValue("round_index"))
	if err != nil {
		writeAdmissionError(w, http.StatusBadRequest, "invalid_round_index", "round_index must be an integer")
		return
	}

	resp, err := s.admission.Handler.DepositHandler(
		r.Context(),
		r.PathValue("kind"),
		r.PathValue("candidate"),
		roundIndex,
		r.PathValue("participant"),
	)
	if err != nil {
		writeAdmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWithdrawable(w http.ResponseWriter, r *http.Request) {
	resp, err := s.admission.Handler.WithdrawableHandler(
		r.Context(),
		r.PathValue("kind"),
		r.PathValue("candidate"),
		r.PathValue("participant"),
	)
	if err != nil {
		writeAdmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAnnotations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var afterSeq uint64
	if afterRaw := query.Get("after"); afterRaw != "" {
		parsed, err := strconv.ParseUint(afterRaw, 10, 64)
		if err != nil {
			writeAdmissionError(w, http.StatusBadRequest, "invalid_after", "after must be a non-negative integer")
			return
		}
		afterSeq = parsed
	}

	limit := 0
	if limitRaw := query.Get("limit"); limitRaw != "" {
		parsed, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeAdmissionError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = parsed
	}

	resp, err := s.admission.Handler.AnnotationsHandler(
		r.Context(),
		r.PathValue("kind"),
		r.PathValue("candidate"),
		afterSeq,
		limit,
	)
	if err != nil {
		writeAdmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetAssetAddress(w http.ResponseWriter, r *http.Request) {
	caller, req, ok := decodeSettingsRequest(w, r)
	if !ok {
		return
	}

	resp, err := s.admission.Handler.SetAssetAddressHandler(r.Context(), r.PathValue("kind"), caller, req)
	if err != nil {
		writeAdmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetRegistryAddress(w http.ResponseWriter, r *http.Request) {
	caller, req, ok := decodeSettingsRequest(w, r)
	if !ok {
		return
	}

	resp, err := s.admission.Handler.SetRegistryAddressHandler(r.Context(), r.PathValue("kind"), caller, req)
	if err != nil {
		writeAdmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// decodeOptionalAdvanceBody tolerates an empty body on the permissionless
// transition endpoints; callers may still attribute themselves via JSON or
// header.
func decodeOptionalAdvanceBody(w http.ResponseWriter, r *http.Request) (admissionhttp.AdvanceRequest, bool) {
	var req admissionhttp.AdvanceRequest
	if r.Body == nil {
		return req, true
	}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil && !strings.Contains(err.Error(), "EOF") {
		writeAdmissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return req, false
	}
	return req, true
}

func decodeSettingsRequest(w http.ResponseWriter, r *http.Request) (string, admissionhttp.UpdateAddressRequest, bool) {
	caller := strings.TrimSpace(r.Header.Get("X-Caller-Address"))
	if caller == "" {
		writeAdmissionError(w, http.StatusUnauthorized, "missing_caller", "X-Caller-Address header is required")
		return "", admissionhttp.UpdateAddressRequest{}, false
	}

	var req admissionhttp.UpdateAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAdmissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return "", admissionhttp.UpdateAddressRequest{}, false
	}
	return caller, req, true
}
