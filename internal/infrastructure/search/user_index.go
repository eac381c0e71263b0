// Package search maintains the Elasticsearch user projection fed by domain
// events and answers full-text user queries from it.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-course-admin/internal/application"
	"github.com/oksasatya/go-ddd-course-admin/internal/domain/event"
)

const (
	defaultSize = 10
	maxSize     = 50
	esTimeout   = 3 * time.Second
)

// UserDocument is the indexed shape of a user.
type UserDocument struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserIndex struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewUserIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *UserIndex {
	return &UserIndex{ES: es, Index: index, Logger: logger}
}

var indexMapping = `{
  "mappings": {
    "properties": {
      "id":         {"type": "keyword"},
      "username":   {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "first_name": {"type": "text"},
      "last_name":  {"type": "text"},
      "role":       {"type": "keyword"},
      "is_active":  {"type": "boolean"},
      "updated_at": {"type": "date"}
    }
  }
}`

// EnsureIndex creates the index with its mapping if it does not exist yet.
func (x *UserIndex) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, esTimeout)
	defer cancel()

	res, err := x.ES.Indices.Exists([]string{x.Index}, x.ES.Indices.Exists.WithContext(c))
	if err != nil {
		return fmt.Errorf("index exists: %w", err)
	}
	_ = res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = x.ES.Indices.Create(x.Index,
		x.ES.Indices.Create.WithContext(c),
		x.ES.Indices.Create.WithBody(bytes.NewReader([]byte(indexMapping))))
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("create index: %s", res.Status())
	}
	return nil
}

// Apply projects one domain event onto the index.
func (x *UserIndex) Apply(ctx context.Context, e event.Event) error {
	switch e.Name {
	case event.UserCreated, event.UserUpdated:
		active, _ := strconv.ParseBool(e.Data["is_active"])
		return x.put(ctx, UserDocument{
			ID:        e.AggregateID,
			Username:  e.Data["username"],
			FirstName: e.Data["first_name"],
			LastName:  e.Data["last_name"],
			Role:      e.Data["role"],
			IsActive:  active,
			UpdatedAt: e.OccurredAt,
		})
	case event.UserDeleted:
		return x.delete(ctx, e.AggregateID)
	default:
		return nil
	}
}

func (x *UserIndex) put(ctx context.Context, doc UserDocument) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.Index, DocumentID: doc.ID, Body: bytes.NewReader(b), Refresh: "false"}
	return x.do(ctx, req, doc.ID, false)
}

func (x *UserIndex) delete(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: x.Index, DocumentID: id}
	return x.do(ctx, req, id, true)
}

func (x *UserIndex) do(ctx context.Context, req esapi.Request, id string, allowMissing bool) error {
	c, cancel := context.WithTimeout(ctx, esTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if allowMissing && res.StatusCode == http.StatusNotFound {
		return nil
	}
	if res.IsError() {
		if x.Logger != nil {
			x.Logger.WithField("status", res.Status()).WithField("user_id", id).Warn("es response error")
		}
		return fmt.Errorf("es %s: %s", id, res.Status())
	}
	return nil
}

// SearchUsers runs a multi_match over username and names.
func (x *UserIndex) SearchUsers(ctx context.Context, q string, size int) ([]application.UserSearchHit, error) {
	if size <= 0 || size > maxSize {
		size = defaultSize
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"username^2", "first_name", "last_name"},
				"fuzziness": "AUTO",
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, esTimeout)
	defer cancel()

	res, err := x.ES.Search(
		x.ES.Search.WithContext(c),
		x.ES.Search.WithIndex(x.Index),
		x.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source UserDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]application.UserSearchHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		d := h.Source
		out = append(out, application.UserSearchHit{
			ID:        d.ID,
			Username:  d.Username,
			FirstName: d.FirstName,
			LastName:  d.LastName,
			Role:      d.Role,
			IsActive:  d.IsActive,
		})
	}
	return out, nil
}

var _ application.UserSearcher = (*UserIndex)(nil)
