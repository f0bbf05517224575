package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/timebank/internal/common"
	"github.com/dmitrijs2005/timebank/internal/server/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *HTTPServer) handlePing(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *HTTPServer) handleMe(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, userFromContext(r.Context()))
}

func (s *HTTPServer) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var upd models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	updated, err := s.users.UpdateProfile(r.Context(), user.ID, &upd)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, updated)
}

func (s *HTTPServer) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var in models.TaskCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	task, err := s.tasks.Create(r.Context(), user, &in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, task)
}

func (s *HTTPServer) handleListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.TaskFilter{
		Status:   q.Get("status"),
		Location: q.Get("location"),
		TaskType: q.Get("task_type"),
	}

	tasks, err := s.tasks.List(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, tasks)
}

func (s *HTTPServer) handleMyTasks(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	tasks, err := s.tasks.ListMine(r.Context(), user)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, tasks)
}

// taskID extracts and checks the path id. A malformed id can never match a
// row, so it is reported the same way as a missing one.
func taskID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		return "", common.ErrorNotFound
	}
	return id, nil
}

func (s *HTTPServer) handleAssignTask(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	id, err := taskID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	task, err := s.tasks.Assign(r.Context(), id, user)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, task)
}

func (s *HTTPServer) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	id, err := taskID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var upd models.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	task, err := s.tasks.Update(r.Context(), id, user, &upd)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, task)
}

func (s *HTTPServer) handleValidateTask(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	id, err := taskID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.tasks.Validate(r.Context(), id, user)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]*models.ValidationResult{"validation_result": result})
}

func (s *HTTPServer) handleEvidenceUploadURL(w http.ResponseWriter, r *http.Request) {
	key, url, err := s.photos.GetPresignedPutUrl(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"key": key, "upload_url": url})
}

func (s *HTTPServer) handleEvidenceDownloadURL(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		s.writeError(w, r, common.ErrorNotFound)
		return
	}

	url, err := s.photos.GetPresignedGetUrl(r.Context(), key)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
