package taskapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/npratt/depviz/internal/model"
)

// testHandler captures the incoming request details and returns a canned response.
type testHandler struct {
	// captured from the request
	method      string
	path        string
	rawPath     string
	body        string
	contentType string
	auth        string
	requestID   string

	// canned response
	statusCode   int
	responseBody string
}

func (h *testHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.method = r.Method
	h.path = r.URL.Path
	h.rawPath = r.URL.RawPath
	h.contentType = r.Header.Get("Content-Type")
	h.auth = r.Header.Get("Authorization")
	h.requestID = r.Header.Get(RequestIDHeader)
	if r.Body != nil {
		data, _ := io.ReadAll(r.Body)
		h.body = string(data)
	}

	w.Header().Set("Content-Type", "application/json")
	if h.statusCode != 0 {
		w.WriteHeader(h.statusCode)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	if h.responseBody != "" {
		_, _ = w.Write([]byte(h.responseBody))
	}
}

// newTestClient creates an HTTPClient pointed at a test server with the given handler.
func newTestClient(h http.Handler, opts ...Option) (*HTTPClient, *httptest.Server) {
	srv := httptest.NewServer(h)
	c := NewHTTPClient(srv.URL+"/api/", opts...)
	return c, srv
}

func TestHTTPClient_Ready(t *testing.T) {
	h := &testHandler{
		responseBody: `[
			{"id":"t-1","title":"Write parser","status":"open","priority":2,"complexity":3,"taskType":"feature","tags":["core"]},
			{"id":"t-2","title":"Ship it","status":"in_progress","priority":1}
		]`,
	}
	c, srv := newTestClient(h, WithToken("secret"))
	defer srv.Close()

	tasks, err := c.Ready(context.Background())
	if err != nil {
		t.Fatalf("Ready: %v", err)
	}
	if h.method != http.MethodGet || h.path != "/api/tasks/ready" {
		t.Errorf("request = %s %s", h.method, h.path)
	}
	if h.auth != "Bearer secret" {
		t.Errorf("Authorization = %q", h.auth)
	}
	if len(h.requestID) != requestIDLength {
		t.Errorf("request id = %q", h.requestID)
	}
	if len(tasks) != 2 || tasks[0].ID != "t-1" || tasks[0].Status != model.StatusOpen || tasks[0].Tags[0] != "core" {
		t.Errorf("tasks = %+v", tasks)
	}
	if tasks[1].Status != model.StatusInProgress || tasks[1].Priority != 1 {
		t.Errorf("tasks[1] = %+v", tasks[1])
	}
}

func TestHTTPClient_Blocked(t *testing.T) {
	h := &testHandler{responseBody: `[{"id":"t-9","title":"Waiting","status":"blocked"}]`}
	c, srv := newTestClient(h)
	defer srv.Close()

	tasks, err := c.Blocked(context.Background())
	if err != nil {
		t.Fatalf("Blocked: %v", err)
	}
	if h.path != "/api/tasks/blocked" {
		t.Errorf("path = %s", h.path)
	}
	if h.auth != "" {
		t.Errorf("Authorization sent without token: %q", h.auth)
	}
	if len(tasks) != 1 || tasks[0].Status != model.StatusBlocked {
		t.Errorf("tasks = %+v", tasks)
	}
}

func TestHTTPClient_Tree(t *testing.T) {
	h := &testHandler{
		responseBody: `{
			"element": {"id":"T1","title":"Root","status":"open"},
			"dependencies": [{"element": {"id":"T2","title":"Upstream","status":"completed"}, "dependencyType":"blocks"}],
			"dependents": [{"element": {"id":"T3","title":"Downstream","status":"blocked"}}]
		}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	tree, err := c.Tree(context.Background(), "T1")
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	if h.path != "/api/dependencies/T1/tree" {
		t.Errorf("path = %s", h.path)
	}
	if tree.Element.ID != "T1" || len(tree.Dependencies) != 1 || len(tree.Dependents) != 1 {
		t.Fatalf("tree = %+v", tree)
	}
	if tree.Dependencies[0].DependencyType != model.DepBlocks {
		t.Errorf("dependency type hint = %q", tree.Dependencies[0].DependencyType)
	}
}

func TestHTTPClient_TreeEscapesID(t *testing.T) {
	h := &testHandler{responseBody: `{"element":{"id":"a/b"}}`}
	c, srv := newTestClient(h)
	defer srv.Close()

	if _, err := c.Tree(context.Background(), "a/b"); err != nil {
		t.Fatalf("Tree: %v", err)
	}
	if h.rawPath != "/api/dependencies/a%2Fb/tree" {
		t.Errorf("raw path = %q", h.rawPath)
	}
}

func TestHTTPClient_Dependencies(t *testing.T) {
	h := &testHandler{
		responseBody: `{
			"dependencies": [{"sourceId":"T1","targetId":"T2","type":"blocks","createdBy":"alice","createdAt":"2026-01-15T10:00:00Z"}],
			"dependents": [{"sourceId":"T3","targetId":"T1","type":"relates-to","metadata":{"note":"x"}}]
		}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	list, err := c.Dependencies(context.Background(), "T1")
	if err != nil {
		t.Fatalf("Dependencies: %v", err)
	}
	if h.path != "/api/dependencies/T1" {
		t.Errorf("path = %s", h.path)
	}
	if !list.Contains("T1", "T2", model.DepBlocks) || !list.Contains("T3", "T1", model.DepRelatesTo) {
		t.Errorf("list = %+v", list)
	}
	want := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	if !list.Dependencies[0].CreatedAt.Equal(want) || list.Dependencies[0].CreatedBy != "alice" {
		t.Errorf("provenance = %+v", list.Dependencies[0])
	}
}

func TestHTTPClient_CreateDependency(t *testing.T) {
	h := &testHandler{
		statusCode:   http.StatusCreated,
		responseBody: `{"sourceId":"T1","targetId":"T2","type":"awaits","createdBy":"bob"}`,
	}
	c, srv := newTestClient(h)
	defer srv.Close()

	dep, err := c.CreateDependency(context.Background(), "T1", "T2", model.DepAwaits)
	if err != nil {
		t.Fatalf("CreateDependency: %v", err)
	}
	if h.method != http.MethodPost || h.path != "/api/dependencies" {
		t.Errorf("request = %s %s", h.method, h.path)
	}
	if h.contentType != "application/json" {
		t.Errorf("Content-Type = %q", h.contentType)
	}
	if h.body != `{"sourceId":"T1","targetId":"T2","type":"awaits"}` {
		t.Errorf("body = %s", h.body)
	}
	if dep.CreatedBy != "bob" || dep.Type != model.DepAwaits {
		t.Errorf("dep = %+v", dep)
	}
}

func TestHTTPClient_CreateDependencyEmptyBody(t *testing.T) {
	h := &testHandler{statusCode: http.StatusCreated}
	c, srv := newTestClient(h)
	defer srv.Close()

	dep, err := c.CreateDependency(context.Background(), "T1", "T2", model.DepBlocks)
	if err != nil {
		t.Fatalf("CreateDependency: %v", err)
	}
	if dep.SourceID != "T1" || dep.TargetID != "T2" || dep.Type != model.DepBlocks {
		t.Errorf("dep = %+v", dep)
	}
}

func TestHTTPClient_CreateDependencyRejectsLocally(t *testing.T) {
	h := &testHandler{}
	c, srv := newTestClient(h)
	defer srv.Close()

	_, err := c.CreateDependency(context.Background(), "T1", "T1", model.DepBlocks)
	if !errors.Is(err, model.ErrSelfLoop) {
		t.Errorf("err = %v, want ErrSelfLoop", err)
	}
	if _, err := c.CreateDependency(context.Background(), "T1", "T2", "depends-on"); err == nil {
		t.Error("expected error for unknown type")
	}
	if h.method != "" {
		t.Errorf("request was sent: %s %s", h.method, h.path)
	}
}

func TestHTTPClient_DeleteDependency(t *testing.T) {
	h := &testHandler{statusCode: http.StatusNoContent}
	c, srv := newTestClient(h)
	defer srv.Close()

	if err := c.DeleteDependency(context.Background(), "T 1", "T/2", model.DepParentChild); err != nil {
		t.Fatalf("DeleteDependency: %v", err)
	}
	if h.method != http.MethodDelete {
		t.Errorf("method = %s", h.method)
	}
	if h.path != "/api/dependencies/T 1/T/2/parent-child" {
		t.Errorf("path = %q", h.path)
	}
	if h.rawPath != "/api/dependencies/T%201/T%2F2/parent-child" {
		t.Errorf("raw path = %q", h.rawPath)
	}
}

func TestHTTPClient_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode int
		wantMsg  string
	}{
		{"error field", http.StatusConflict, `{"error":"dependency would create a cycle"}`, 409, "dependency would create a cycle"},
		{"message field", http.StatusBadRequest, `{"message":"invalid type"}`, 400, "invalid type"},
		{"plain text", http.StatusInternalServerError, "boom\n", 500, "boom"},
		{"empty body", http.StatusNotFound, "", 404, "Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &testHandler{statusCode: tt.status, responseBody: tt.body}
			c, srv := newTestClient(h)
			defer srv.Close()

			_, err := c.CreateDependency(context.Background(), "A", "B", model.DepBlocks)
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("err = %v, want *APIError", err)
			}
			if apiErr.StatusCode != tt.wantCode || apiErr.Message != tt.wantMsg {
				t.Errorf("APIError = %+v", apiErr)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Error() = %q", err.Error())
			}
		})
	}
}

func TestHTTPClient_DecodeError(t *testing.T) {
	h := &testHandler{responseBody: `{"element":`}
	c, srv := newTestClient(h)
	defer srv.Close()

	_, err := c.Tree(context.Background(), "T1")
	if err == nil || !strings.Contains(err.Error(), "decoding response") {
		t.Errorf("err = %v", err)
	}
}

func TestHTTPClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	c, srv := newTestClient(h, WithTimeout(50*time.Millisecond))
	defer srv.Close()
	defer close(release)

	if _, err := c.Ready(context.Background()); err == nil {
		t.Error("expected timeout error")
	}
}

func TestHTTPClient_ContextCanceled(t *testing.T) {
	h := &testHandler{responseBody: `[]`}
	c, srv := newTestClient(h)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Ready(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestNewHTTPClient_TrimsSlash(t *testing.T) {
	c := NewHTTPClient("http://localhost:8080/api///")
	if c.BaseURL() != "http://localhost:8080/api" {
		t.Errorf("BaseURL = %q", c.BaseURL())
	}
}
