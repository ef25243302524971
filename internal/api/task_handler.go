package api

import "net/http"

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type completionRequest struct {
	Completed bool `json:"completed"`
}

type titleRequest struct {
	Title string `json:"title"`
}

func (h *handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.deps.Tasks.ListTasks(r.Context())
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, tasks)
}

func (h *handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if !decode(w, r, &req) {
		return
	}
	t, err := h.deps.Tasks.AddTask(r.Context(), req.Title, req.Description)
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, t)
}

func (h *handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, err := h.deps.Tasks.GetTask(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, t)
}

func (h *handlers) ToggleCompletion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req completionRequest
	if !decode(w, r, &req) {
		return
	}
	t, err := h.deps.Tasks.ToggleCompletion(r.Context(), id, req.Completed)
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, t)
}

func (h *handlers) RenameTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req titleRequest
	if !decode(w, r, &req) {
		return
	}
	t, err := h.deps.Tasks.RenameTask(r.Context(), id, req.Title)
	if err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, t)
}

func (h *handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.deps.Tasks.DeleteTask(r.Context(), id); err != nil {
		respondWithServiceError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
