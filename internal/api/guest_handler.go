package api

import (
	"net/http"

	"event-planner/internal/models"
	"event-planner/internal/notify"
)

type createGuestRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
}

type importContactRequest struct {
	Ref string `json:"ref"`
}

type rsvpRequest struct {
	Status string `json:"rsvp_status"`
}

type invitedRequest struct {
	Invited bool `json:"invited"`
}

type invitationsRequest struct {
	GuestIDs []int64 `json:"guest_ids"`
	Message  string  `json:"message"`
}

type outcomeResponse struct {
	PhoneNumber string `json:"phone_number"`
	Error       string `json:"error,omitempty"`
}

type invitationsResponse struct {
	Sent   int               `json:"sent"`
	Failed int               `json:"failed"`
	Result []outcomeResponse `json:"results"`
}

func (h *handlers) ListGuests(w http.ResponseWriter, r *http.Request) {
	guests, err := h.deps.Guests.ListGuests(r.Context())
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, guests)
}

func (h *handlers) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var req createGuestRequest
	if !decode(w, r, &req) {
		return
	}
	g, err := h.deps.Guests.ImportGuest(r.Context(), req.Name, req.PhoneNumber)
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, g)
}

func (h *handlers) ImportContact(w http.ResponseWriter, r *http.Request) {
	var req importContactRequest
	if !decode(w, r, &req) {
		return
	}
	g, err := h.deps.Guests.ImportContact(r.Context(), req.Ref)
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, g)
}

func (h *handlers) GetGuest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	g, err := h.deps.Guests.GetGuest(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, g)
}

func (h *handlers) SetRsvpStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req rsvpRequest
	if !decode(w, r, &req) {
		return
	}
	status, err := models.ParseRSVPStatus(req.Status)
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	g, err := h.deps.Guests.SetRsvpStatus(r.Context(), id, status)
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, g)
}

func (h *handlers) SetInvited(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req invitedRequest
	if !decode(w, r, &req) {
		return
	}
	g, err := h.deps.Guests.SetInvited(r.Context(), id, req.Invited)
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, g)
}

func (h *handlers) RemoveGuest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.deps.Guests.RemoveGuest(r.Context(), id); err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) RsvpSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.deps.Guests.RsvpSummary(r.Context())
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, summary)
}

// SendInvitations answers 200 even when some sends failed; the per-recipient
// results say which.
func (h *handlers) SendInvitations(w http.ResponseWriter, r *http.Request) {
	var req invitationsRequest
	if !decode(w, r, &req) {
		return
	}
	if len(req.GuestIDs) == 0 {
		RespondWithError(w, http.StatusBadRequest, "guest_ids is required")
		return
	}
	report, err := h.deps.Invitations.SendInvitations(r.Context(), req.GuestIDs, req.Message)
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, invitationsResult(report))
}

func invitationsResult(report notify.Report) invitationsResponse {
	resp := invitationsResponse{Result: make([]outcomeResponse, 0, len(report.Outcomes))}
	for _, o := range report.Outcomes {
		out := outcomeResponse{PhoneNumber: o.PhoneNumber}
		if o.Err != nil {
			out.Error = o.Err.Error()
			resp.Failed++
		} else {
			resp.Sent++
		}
		resp.Result = append(resp.Result, out)
	}
	return resp
}
