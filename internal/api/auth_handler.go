package api

import "net/http"

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *handlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decode(w, r, &req) {
		return
	}
	s, err := h.deps.Auth.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, s)
}

func (h *handlers) SignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decode(w, r, &req) {
		return
	}
	s, err := h.deps.Auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, s)
}

func (h *handlers) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Auth.SignOut(r.Context(), bearerToken(r)); err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
