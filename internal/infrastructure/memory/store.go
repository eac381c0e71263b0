// Package memory is an in-process storage backend used for local runs
// (STORAGE_DRIVER=memory) and end-to-end tests. Records are stored by value,
// so callers never share state with the store.
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/oksasatya/go-ddd-course-admin/internal/domain/entity"
)

// Store holds every table behind one lock.
type Store struct {
	mu       sync.RWMutex
	users    map[string]entity.UserSnapshot
	courses  map[string]entity.Course
	contents map[string]entity.Content
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]entity.UserSnapshot),
		courses:  make(map[string]entity.Course),
		contents: make(map[string]entity.Content),
	}
}

func containsFold(s, sub string) bool {
	return sub == "" || strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// compareFold orders names case-insensitively, like the postgres listing.
func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func sortByName[T any](items []T, name func(T) string) {
	sort.SliceStable(items, func(i, j int) bool { return compareFold(name(items[i]), name(items[j])) < 0 })
}
