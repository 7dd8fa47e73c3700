package devserver

import (
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/google/uuid"

	"github.com/rshade/schoolconsole/internal/record"
)

var (
	// ErrUnknownResource is returned for a resource the store does not serve.
	ErrUnknownResource = errors.New("unknown resource")
	// ErrNotFound is returned for a missing record.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a transition does not apply to the record's status.
	ErrConflict = errors.New("conflicting record status")
)

const (
	fieldID     = "id"
	fieldStatus = "status"
)

// Document is a stored record in its generic JSON form.
type Document = map[string]any

type collection struct {
	order []string
	docs  map[string]Document
}

// Store keeps documents per resource in insertion order.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
	newID       func() string
}

// NewStore creates an empty store serving the given resources.
func NewStore(resources ...string) *Store {
	s := &Store{
		collections: make(map[string]*collection, len(resources)),
		newID:       uuid.NewString,
	}
	for _, r := range resources {
		s.collections[r] = &collection{docs: make(map[string]Document)}
	}
	return s
}

// Has reports whether resource is served.
func (s *Store) Has(resource string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.collections[resource]
	return ok
}

func (s *Store) collection(resource string) (*collection, error) {
	c, ok := s.collections[resource]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResource, resource)
	}
	return c, nil
}

// List returns copies of the documents with the given status, in insertion order.
func (s *Store) List(resource string, status record.Status) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, err := s.collection(resource)
	if err != nil {
		return nil, err
	}
	out := make([]Document, 0, len(c.order))
	for _, id := range c.order {
		doc := c.docs[id]
		if doc[fieldStatus] == string(status) {
			out = append(out, maps.Clone(doc))
		}
	}
	return out, nil
}

// Get returns a copy of one document.
func (s *Store) Get(resource, id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, err := s.collection(resource)
	if err != nil {
		return nil, err
	}
	doc, ok := c.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, resource, id)
	}
	return maps.Clone(doc), nil
}

// Create stores a new ACTIVE document. A caller-supplied id is kept when
// unused, which lets fixtures have stable ids.
func (s *Store) Create(resource string, fields Document) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.collection(resource)
	if err != nil {
		return nil, err
	}

	doc := maps.Clone(fields)
	if doc == nil {
		doc = Document{}
	}
	id, _ := doc[fieldID].(string)
	if _, taken := c.docs[id]; id == "" || taken {
		id = s.newID()
	}
	doc[fieldID] = id
	if _, ok := doc[fieldStatus]; !ok {
		doc[fieldStatus] = string(record.StatusActive)
	}

	c.order = append(c.order, id)
	c.docs[id] = doc
	return maps.Clone(doc), nil
}

// Update replaces the fields of an ACTIVE document. Its id and status are kept.
func (s *Store) Update(resource, id string, fields Document) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.collection(resource)
	if err != nil {
		return nil, err
	}
	current, ok := c.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, resource, id)
	}
	if current[fieldStatus] != string(record.StatusActive) {
		return nil, fmt.Errorf("%w: only active records can be updated", ErrConflict)
	}

	doc := maps.Clone(fields)
	if doc == nil {
		doc = Document{}
	}
	doc[fieldID] = id
	doc[fieldStatus] = current[fieldStatus]
	c.docs[id] = doc
	return maps.Clone(doc), nil
}

// SetStatus moves a document from one status to the other.
func (s *Store) SetStatus(resource, id string, from, to record.Status) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.collection(resource)
	if err != nil {
		return nil, err
	}
	doc, ok := c.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, resource, id)
	}
	if doc[fieldStatus] != string(from) {
		return nil, fmt.Errorf("%w: record is %v, want %s", ErrConflict, doc[fieldStatus], from)
	}
	doc[fieldStatus] = string(to)
	return maps.Clone(doc), nil
}
