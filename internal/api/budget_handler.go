package api

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// amountText accepts an amount as a JSON number or string and keeps the raw
// text so parsing and validation stay in the budget service.
type amountText string

func (a *amountText) UnmarshalJSON(b []byte) error {
	if bytes.HasPrefix(b, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = amountText(s)
		return nil
	}
	if string(b) == "null" {
		*a = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*a = amountText(n)
	return nil
}

type budgetLineRequest struct {
	Name     string     `json:"name"`
	Amount   amountText `json:"amount"`
	Category string     `json:"category"`
}

type totalResponse struct {
	Total float64 `json:"total"`
}

func (h *handlers) ListBudgetLines(w http.ResponseWriter, r *http.Request) {
	lines, err := h.deps.Budget.ListBudgetLines(r.Context())
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, lines)
}

func (h *handlers) CreateBudgetLine(w http.ResponseWriter, r *http.Request) {
	var req budgetLineRequest
	if !decode(w, r, &req) {
		return
	}
	line, err := h.deps.Budget.AddBudgetLine(r.Context(), req.Name, string(req.Amount), req.Category)
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, line)
}

func (h *handlers) UpdateBudgetLine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req budgetLineRequest
	if !decode(w, r, &req) {
		return
	}
	line, err := h.deps.Budget.UpdateBudgetLine(r.Context(), id, req.Name, string(req.Amount), req.Category)
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, line)
}

func (h *handlers) DeleteBudgetLine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.deps.Budget.DeleteBudgetLine(r.Context(), id); err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) TotalBudget(w http.ResponseWriter, r *http.Request) {
	total, err := h.deps.Budget.TotalBudget(r.Context())
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, totalResponse{Total: total})
}
