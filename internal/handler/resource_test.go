package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/uniak/teaching-backend/internal/model"
	"github.com/uniak/teaching-backend/internal/repository"
	"github.com/uniak/teaching-backend/internal/response"
	"github.com/uniak/teaching-backend/internal/service"
	"github.com/uniak/teaching-backend/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Setup()
}

// fakeInstitutes is an in-memory institute service.
type fakeInstitutes struct {
	rows    map[int64]*model.Institute
	nextID  int64
	lastQ   url.Values
	updated *model.InstituteInput
	failAll error
}

func newFakeInstitutes() *fakeInstitutes {
	return &fakeInstitutes{
		rows: map[int64]*model.Institute{
			1: {ID: 1, Name: "Design", Description: "Institute of Design"},
		},
		nextID: 2,
	}
}

func (f *fakeInstitutes) List(_ context.Context, q url.Values) ([]model.Institute, error) {
	f.lastQ = q
	if f.failAll != nil {
		return nil, f.failAll
	}
	var out []model.Institute
	for _, r := range f.rows {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeInstitutes) Get(_ context.Context, id int64) (*model.Institute, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeInstitutes) Create(_ context.Context, in *model.InstituteInput) (*model.Institute, error) {
	for _, r := range f.rows {
		if r.Name == in.Name {
			return nil, &repository.DuplicateError{Field: "name", Constraint: "institutes_name_key"}
		}
	}
	r := &model.Institute{ID: f.nextID, Name: in.Name, Description: in.Description}
	f.rows[r.ID] = r
	f.nextID++
	return r, nil
}

func (f *fakeInstitutes) Update(_ context.Context, id int64, in *model.InstituteInput) (*model.Institute, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	f.updated = in
	r.Name, r.Description = in.Name, in.Description
	return r, nil
}

func (f *fakeInstitutes) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func newTestRouter(svc Service[model.Institute, model.InstituteInput]) *gin.Engine {
	h := NewResource("Institute", svc, (*model.Institute).Input, zerolog.Nop())
	r := gin.New()
	g := r.Group("/institutes")
	g.GET("/", h.List)
	g.POST("/add/", h.Create)
	g.GET("/:id/", h.Get)
	g.PUT("/:id/update/", h.Replace)
	g.PATCH("/:id/update/", h.Patch)
	g.DELETE("/:id/delete/", h.Delete)
	return r
}

func do(r http.Handler, method, path, body string) (*httptest.ResponseRecorder, response.Response) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestResourceList(t *testing.T) {
	svc := newFakeInstitutes()
	w, env := do(newTestRouter(svc), http.MethodGet, "/institutes/?search=des", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if svc.lastQ.Get("search") != "des" {
		t.Errorf("query not forwarded: %v", svc.lastQ)
	}
	if items, ok := env.Data.([]interface{}); !ok || len(items) != 1 {
		t.Errorf("data = %#v", env.Data)
	}
}

func TestResourceListEmptyIsArray(t *testing.T) {
	svc := newFakeInstitutes()
	svc.rows = map[int64]*model.Institute{}
	w, _ := do(newTestRouter(svc), http.MethodGet, "/institutes/", "")

	if !strings.Contains(w.Body.String(), `"data":[]`) {
		t.Errorf("body = %s, want empty array", w.Body.String())
	}
}

func TestResourceGet(t *testing.T) {
	r := newTestRouter(newFakeInstitutes())

	tests := []struct {
		path string
		want int
		code response.ErrCode
	}{
		{"/institutes/1/", http.StatusOK, ""},
		{"/institutes/99/", http.StatusNotFound, response.ErrNotFound},
		{"/institutes/abc/", http.StatusBadRequest, response.ErrInvalidID},
		{"/institutes/0/", http.StatusBadRequest, response.ErrInvalidID},
	}
	for _, tt := range tests {
		w, env := do(r, http.MethodGet, tt.path, "")
		if w.Code != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.path, w.Code, tt.want)
		}
		if tt.code != "" && (env.Error == nil || env.Error.Code != tt.code) {
			t.Errorf("%s: error = %+v, want %s", tt.path, env.Error, tt.code)
		}
	}
}

func TestResourceCreate(t *testing.T) {
	r := newTestRouter(newFakeInstitutes())

	w, _ := do(r, http.MethodPost, "/institutes/add/", `{"name":"Fine Arts","description":"Painting"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	w, env := do(r, http.MethodPost, "/institutes/add/", `{"name":"Fine Arts","description":"Again"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d", w.Code)
	}
	if _, ok := env.Error.Fields["name"]; !ok {
		t.Errorf("fields = %v, want name", env.Error.Fields)
	}

	w, env = do(r, http.MethodPost, "/institutes/add/", `{"description":"no name"}`)
	if w.Code != http.StatusBadRequest || env.Error.Code != response.ErrValidation {
		t.Fatalf("missing name: status = %d error %+v", w.Code, env.Error)
	}
	if _, ok := env.Error.Fields["name"]; !ok {
		t.Errorf("fields = %v, want name", env.Error.Fields)
	}
}

func TestResourceReplaceResetsOmittedFields(t *testing.T) {
	svc := newFakeInstitutes()
	r := newTestRouter(svc)

	w, env := do(r, http.MethodPut, "/institutes/1/update/", `{"name":"Design"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if _, ok := env.Error.Fields["description"]; !ok {
		t.Errorf("fields = %v, want description", env.Error.Fields)
	}
}

func TestResourcePatchMergesOverStoredValues(t *testing.T) {
	svc := newFakeInstitutes()
	r := newTestRouter(svc)

	w, _ := do(r, http.MethodPatch, "/institutes/1/update/", `{"name":"Design & Media"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if svc.updated.Name != "Design & Media" || svc.updated.Description != "Institute of Design" {
		t.Errorf("updated = %+v", svc.updated)
	}

	w, _ = do(r, http.MethodPatch, "/institutes/1/update/", "")
	if w.Code != http.StatusOK {
		t.Errorf("empty patch status = %d", w.Code)
	}

	w, _ = do(r, http.MethodPatch, "/institutes/42/update/", `{"name":"x"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing row status = %d", w.Code)
	}
}

func TestResourceDelete(t *testing.T) {
	r := newTestRouter(newFakeInstitutes())

	w, env := do(r, http.MethodDelete, "/institutes/1/delete/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	data, _ := env.Data.(map[string]interface{})
	if data["message"] != "Institute deleted successfully" {
		t.Errorf("data = %v", env.Data)
	}

	if w, _ := do(r, http.MethodDelete, "/institutes/1/delete/", ""); w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d", w.Code)
	}
}

func TestWriteErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
		code response.ErrCode
	}{
		{&service.ValidationError{Fields: map[string]string{"teacher": "bad"}}, http.StatusBadRequest, response.ErrValidation},
		{&repository.InvalidError{Field: "course_code", Constraint: "courses_course_code_format"}, http.StatusBadRequest, response.ErrValidation},
		{errors.New("connection reset"), http.StatusInternalServerError, response.ErrInternal},
	}
	for _, tt := range tests {
		svc := newFakeInstitutes()
		svc.failAll = tt.err
		w, env := do(newTestRouter(svc), http.MethodGet, "/institutes/", "")
		if w.Code != tt.want || env.Error == nil || env.Error.Code != tt.code {
			t.Errorf("%v: status %d error %+v, want %d %s", tt.err, w.Code, env.Error, tt.want, tt.code)
		}
	}
}
