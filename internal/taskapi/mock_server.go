package taskapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/npratt/depviz/internal/model"
)

// NewMockHandler serves the REST API from a MockClient, for exercising
// HTTPClient end to end with httptest.
func NewMockHandler(m *MockClient) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /tasks/ready", func(w http.ResponseWriter, r *http.Request) {
		tasks, err := m.Ready(r.Context())
		respond(w, http.StatusOK, tasks, err)
	})
	mux.HandleFunc("GET /tasks/blocked", func(w http.ResponseWriter, r *http.Request) {
		tasks, err := m.Blocked(r.Context())
		respond(w, http.StatusOK, tasks, err)
	})
	mux.HandleFunc("GET /dependencies/{id}/tree", func(w http.ResponseWriter, r *http.Request) {
		tree, err := m.Tree(r.Context(), r.PathValue("id"))
		respond(w, http.StatusOK, tree, err)
	})
	mux.HandleFunc("GET /dependencies/{id}", func(w http.ResponseWriter, r *http.Request) {
		list, err := m.Dependencies(r.Context(), r.PathValue("id"))
		respond(w, http.StatusOK, list, err)
	})
	mux.HandleFunc("POST /dependencies", func(w http.ResponseWriter, r *http.Request) {
		var req createDependencyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond(w, 0, nil, &APIError{StatusCode: http.StatusBadRequest, Message: "invalid JSON body"})
			return
		}
		dep, err := m.CreateDependency(r.Context(), req.SourceID, req.TargetID, req.Type)
		respond(w, http.StatusCreated, dep, err)
	})
	mux.HandleFunc("DELETE /dependencies/{source}/{target}/{type}", func(w http.ResponseWriter, r *http.Request) {
		err := m.DeleteDependency(r.Context(), r.PathValue("source"), r.PathValue("target"),
			model.DependencyType(r.PathValue("type")))
		respond(w, http.StatusNoContent, nil, err)
	})

	return mux
}

func respond(w http.ResponseWriter, status int, body any, err error) {
	if err != nil {
		code := http.StatusInternalServerError
		var apiErr *APIError
		msg := err.Error()
		if errors.As(err, &apiErr) {
			code = apiErr.StatusCode
			msg = apiErr.Message
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
		return
	}
	if status == http.StatusNoContent || body == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
