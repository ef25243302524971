package api

import (
	"net/http"

	"event-planner/internal/service"
)

func (h *handlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.deps.Events.ListEvents(r.Context())
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, events)
}

func (h *handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req service.EventFields
	if !decode(w, r, &req) {
		return
	}
	e, err := h.deps.Events.AddEvent(r.Context(), req)
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, e)
}

func (h *handlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	e, err := h.deps.Events.GetEvent(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, e)
}

func (h *handlers) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req service.EventFields
	if !decode(w, r, &req) {
		return
	}
	e, err := h.deps.Events.UpdateEvent(r.Context(), id, req)
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, e)
}

func (h *handlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.deps.Events.DeleteEvent(r.Context(), id); err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
