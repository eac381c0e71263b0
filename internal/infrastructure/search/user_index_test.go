package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-course-admin/internal/domain/event"
)

type recorded struct {
	Method string
	Path   string
	Body   string
}

// fakeES answers like Elasticsearch and records every request.
func fakeES(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*elasticsearch.Client, *[]recorded) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recorded{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		mu.Unlock()
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return es, &reqs
}

func TestApply_IndexesCreatedUser(t *testing.T) {
	es, reqs := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})
	x := NewUserIndex(es, "users", nil)

	e := event.New(event.UserCreated, "u1", map[string]string{
		"username": "johndoe", "first_name": "John", "last_name": "Doe", "role": "editor", "is_active": "true",
	})
	require.NoError(t, x.Apply(context.Background(), e))

	require.Len(t, *reqs, 1)
	got := (*reqs)[0]
	assert.Equal(t, http.MethodPut, got.Method)
	assert.Equal(t, "/users/_doc/u1", got.Path)

	var doc UserDocument
	require.NoError(t, json.Unmarshal([]byte(got.Body), &doc))
	assert.Equal(t, "johndoe", doc.Username)
	assert.Equal(t, "editor", doc.Role)
	assert.True(t, doc.IsActive)
}

func TestApply_DeleteToleratesMissingDocument(t *testing.T) {
	es, reqs := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"result":"not_found"}`))
	})
	x := NewUserIndex(es, "users", nil)

	require.NoError(t, x.Apply(context.Background(), event.New(event.UserDeleted, "u1", nil)))
	require.Len(t, *reqs, 1)
	assert.Equal(t, http.MethodDelete, (*reqs)[0].Method)
}

func TestSearchUsers(t *testing.T) {
	es, reqs := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hits":{"hits":[
			{"_id":"u1","_source":{"id":"u1","username":"johndoe","first_name":"John","last_name":"Doe","role":"user","is_active":true}}
		]}}`))
	})
	x := NewUserIndex(es, "users", nil)

	hits, err := x.SearchUsers(context.Background(), "john", 500)
	require.NoError(t, err)

	require.Len(t, hits, 1)
	assert.Equal(t, "johndoe", hits[0].Username)
	assert.Equal(t, "John", hits[0].FirstName)

	require.Len(t, *reqs, 1)
	assert.Equal(t, "/users/_search", (*reqs)[0].Path)
	assert.Contains(t, (*reqs)[0].Body, `"size":10`)
}
