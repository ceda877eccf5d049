package handler_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"github.com/jaekwang-park/todo-dashboard/internal/middleware"
	"github.com/jaekwang-park/todo-dashboard/internal/model"
)

const (
	userID  = "11111111-1111-4111-8111-111111111111"
	otherID = "22222222-2222-4222-8222-222222222222"
	cat1    = "c0000000-0000-4000-8000-000000000001"
	grp1    = "90000000-0000-4000-8000-000000000001"
)

var now = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return now }

func tid(n int) string { return fmt.Sprintf("a0000000-0000-4000-8000-%012d", n) }

func day(d, hour int) time.Time { return time.Date(2025, 1, d, hour, 0, 0, 0, time.UTC) }

func ptr[T any](v T) *T { return &v }

// todoStore is an in-memory TodoRepository.
type todoStore struct {
	todos  []model.Todo
	nextID int
	err    error
}

func (s *todoStore) Create(ctx context.Context, todo model.Todo) (model.Todo, error) {
	if s.err != nil {
		return model.Todo{}, s.err
	}
	s.nextID++
	todo.ID = tid(100 + s.nextID)
	todo.CreatedAt = now
	todo.UpdatedAt = now
	s.todos = append(s.todos, todo)
	return todo, nil
}

func (s *todoStore) GetByID(ctx context.Context, uid, id string) (model.Todo, error) {
	for _, td := range s.todos {
		if td.ID == id && td.UserID == uid {
			return td, nil
		}
	}
	return model.Todo{}, sql.ErrNoRows
}

func (s *todoStore) Update(ctx context.Context, todo model.Todo) (model.Todo, error) {
	for i, td := range s.todos {
		if td.ID == todo.ID && td.UserID == todo.UserID {
			todo.UpdatedAt = now
			s.todos[i] = todo
			return todo, nil
		}
	}
	return model.Todo{}, sql.ErrNoRows
}

func (s *todoStore) Delete(ctx context.Context, uid, id string) error {
	for i, td := range s.todos {
		if td.ID == id && td.UserID == uid {
			s.todos = slices.Delete(s.todos, i, i+1)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (s *todoStore) ListAll(ctx context.Context, uid string) ([]model.Todo, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []model.Todo
	for _, td := range s.todos {
		if td.UserID == uid {
			out = append(out, td)
		}
	}
	return out, nil
}

// dashboard is the fixture behind most todo handler tests.
func dashboard() *todoStore {
	return &todoStore{todos: []model.Todo{
		{ID: tid(1), UserID: userID, Title: "report", Priority: 1, DueDate: ptr(day(15, 0)), CategoryID: ptr(cat1), CreatedAt: day(1, 8)},
		{ID: tid(2), UserID: userID, Title: "taxes", Priority: 3, DueDate: ptr(day(12, 0)), CreatedAt: day(2, 8)},
		{ID: tid(3), UserID: userID, Title: "laundry", Priority: 4, Completed: true, CompletedAt: ptr(day(3, 9)), GroupID: ptr(grp1), CreatedAt: day(3, 8)},
		{ID: tid(4), UserID: userID, Title: "call mom", Priority: 3, CreatedAt: day(3, 10)},
		{ID: tid(5), UserID: otherID, Title: "not mine", Priority: 4, CreatedAt: day(1, 9)},
	}}
}

type categoryStore struct {
	items map[string]model.Category
}

func newCategoryStore(items ...model.Category) *categoryStore {
	s := &categoryStore{items: map[string]model.Category{}}
	for _, c := range items {
		s.items[c.ID] = c
	}
	return s
}

func (s *categoryStore) Create(ctx context.Context, c model.Category) (model.Category, error) {
	c.ID = fmt.Sprintf("c0000000-0000-4000-8000-%012d", len(s.items)+100)
	c.CreatedAt, c.UpdatedAt = now, now
	s.items[c.ID] = c
	return c, nil
}
func (s *categoryStore) GetByID(ctx context.Context, uid, id string) (model.Category, error) {
	c, ok := s.items[id]
	if !ok || c.UserID != uid {
		return model.Category{}, sql.ErrNoRows
	}
	return c, nil
}
func (s *categoryStore) List(ctx context.Context, uid string) ([]model.Category, error) {
	var out []model.Category
	for _, c := range s.items {
		if c.UserID == uid {
			out = append(out, c)
		}
	}
	return out, nil
}
func (s *categoryStore) Update(ctx context.Context, c model.Category) (model.Category, error) {
	if _, ok := s.items[c.ID]; !ok {
		return model.Category{}, sql.ErrNoRows
	}
	s.items[c.ID] = c
	return c, nil
}
func (s *categoryStore) Delete(ctx context.Context, uid, id string) error {
	if c, ok := s.items[id]; !ok || c.UserID != uid {
		return sql.ErrNoRows
	}
	delete(s.items, id)
	return nil
}

type groupStore struct {
	items map[string]model.Group
}

func newGroupStore(items ...model.Group) *groupStore {
	s := &groupStore{items: map[string]model.Group{}}
	for _, g := range items {
		s.items[g.ID] = g
	}
	return s
}

func (s *groupStore) Create(ctx context.Context, g model.Group) (model.Group, error) {
	g.ID = fmt.Sprintf("90000000-0000-4000-8000-%012d", len(s.items)+100)
	s.items[g.ID] = g
	return g, nil
}
func (s *groupStore) GetByID(ctx context.Context, uid, id string) (model.Group, error) {
	g, ok := s.items[id]
	if !ok || g.UserID != uid {
		return model.Group{}, sql.ErrNoRows
	}
	return g, nil
}
func (s *groupStore) List(ctx context.Context, uid string) ([]model.Group, error) {
	var out []model.Group
	for _, g := range s.items {
		if g.UserID == uid {
			out = append(out, g)
		}
	}
	slices.SortFunc(out, func(a, b model.Group) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return out, nil
}
func (s *groupStore) Update(ctx context.Context, g model.Group) (model.Group, error) {
	if _, ok := s.items[g.ID]; !ok {
		return model.Group{}, sql.ErrNoRows
	}
	s.items[g.ID] = g
	return g, nil
}
func (s *groupStore) Delete(ctx context.Context, uid, id string) error {
	if g, ok := s.items[id]; !ok || g.UserID != uid {
		return sql.ErrNoRows
	}
	delete(s.items, id)
	return nil
}

// do runs one request against h as userID.
func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req = req.WithContext(middleware.SetUserID(req.Context(), userID))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return v
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
