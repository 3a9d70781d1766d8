// Package core owns the session: the loaded document, its flat shadow
// index, and the file location it round-trips to. One writer mutates the
// session at a time; long operations run on a worker goroutine and hand
// results back by message passing.
package core

import (
	"bytes"
	"encoding/json"
	"os"
	"sync"
	"sync/atomic"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/jex/internal/address"
	"github.com/oakwood-commons/jex/internal/classify"
	"github.com/oakwood-commons/jex/internal/derive"
	"github.com/oakwood-commons/jex/internal/shadow"
	"github.com/oakwood-commons/jex/pkg/loader"
)

// ProgressFunc receives coarse progress from long operations.
type ProgressFunc = derive.ProgressFunc

// Session holds the document, the shadow index derived from it, and the
// originating file location. The zero state is empty; Load installs a
// document and index atomically, and every mutation rebuilds the whole
// index so stale addresses are never served.
type Session struct {
	log logr.Logger

	mu     sync.Mutex // guards doc, nodes, origin
	busy   atomic.Bool
	doc    any
	nodes  []shadow.Node
	origin string
	loaded bool
}

// NewSession creates an empty session.
func NewSession(log logr.Logger) *Session {
	return &Session{log: log}
}

// Load reads and parses the file at path, replacing the document and index.
// The path is recorded as the origin for SaveOriginal.
func (s *Session) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return ioErr(err)
	}
	return s.load(data, path)
}

// LoadBytes parses data, replacing the document and index. origin names the
// source for round-trip writes; it may be empty for in-memory documents.
func (s *Session) LoadBytes(data []byte, origin string) error {
	return s.load(data, origin)
}

func (s *Session) load(data []byte, origin string) error {
	doc, err := loader.LoadBytesWithLogger(data, s.log)
	if err != nil {
		return parseErr(err)
	}
	nodes := shadow.Build(doc)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.nodes = nodes
	s.origin = origin
	s.loaded = true
	s.log.V(1).Info("document loaded", "origin", origin, "nodes", len(nodes))
	return nil
}

// Loaded reports whether a document is present.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Origin returns the recorded originating location, empty if none.
func (s *Session) Origin() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.origin
}

// Nodes returns a copy of the current shadow index.
func (s *Session) Nodes() []shadow.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]shadow.Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Extract resolves addr with first-match semantics and returns the value
// pretty-printed.
func (s *Session) Extract(addr string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return "", notLoadedErr()
	}
	res, err := address.First(s.doc, addr)
	if err != nil {
		return "", addressErr(addr, err)
	}
	if !res.Found {
		return "", &Error{Kind: KindAddress, Address: addr}
	}
	text, err := json.MarshalIndent(res.Value, "", "  ")
	if err != nil {
		return "", parseErr(err)
	}
	return string(text), nil
}

// Mutate replaces the value at addr with newText stored as a literal string
// value. The replacement text is never re-parsed, even when it looks like
// an object or array. On success the whole index is rebuilt; on failure the
// document is left unmodified. A concurrent mutation fails fast with
// ErrBusy.
func (s *Session) Mutate(addr, newText string) error {
	if !s.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer s.busy.Store(false)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return notLoadedErr()
	}
	doc, err := address.Set(s.doc, addr, newText)
	if err != nil {
		return addressErr(addr, err)
	}
	s.doc = doc
	s.nodes = shadow.Build(doc)
	s.log.V(1).Info("document mutated", "address", addr, "nodes", len(s.nodes))
	return nil
}

// Save writes the whole document pretty-printed to path.
func (s *Session) Save(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(path)
}

// SaveOriginal writes the document back to the location it was loaded from.
func (s *Session) SaveOriginal() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.origin == "" {
		return &Error{Kind: KindIO, Err: errNoOrigin}
	}
	return s.saveLocked(s.origin)
}

func (s *Session) saveLocked(path string) error {
	if !s.loaded {
		return notLoadedErr()
	}
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return parseErr(err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return ioErr(err)
	}
	return nil
}

// Toggle flips the expansion state of the node at addr and recomputes
// visibility.
func (s *Session) Toggle(addr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return notLoadedErr()
	}
	shadow.ToggleExpanded(s.nodes, addr)
	return nil
}

// Filter applies a substring filter over the index. Empty text restores
// full visibility.
func (s *Session) Filter(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return notLoadedErr()
	}
	shadow.ApplyFilter(s.nodes, text)
	return nil
}

// RecomputeVisibility refreshes visibility from the current expansion
// state.
func (s *Session) RecomputeVisibility() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return notLoadedErr()
	}
	shadow.RecomputeVisibility(s.nodes)
	return nil
}

// ExpandAll marks every container node expanded and recomputes visibility.
func (s *Session) ExpandAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return notLoadedErr()
	}
	for i := range s.nodes {
		if s.nodes[i].Children > 0 {
			s.nodes[i].Expanded = true
		}
	}
	shadow.RecomputeVisibility(s.nodes)
	return nil
}

// CandidateFields runs the field classifier over the document.
func (s *Session) CandidateFields(leafOnly bool) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, notLoadedErr()
	}
	return classify.CandidateFields(s.doc, leafOnly), nil
}

// Derive runs the derivation pipeline synchronously and returns the
// intermediate product text. Empty filter returns an empty string.
func (s *Session) Derive(filter string, leafOnly bool, progress ProgressFunc) (string, error) {
	doc, nodes, err := s.snapshot()
	if err != nil {
		return "", err
	}
	text, err := derive.Build(doc, nodes, filter, leafOnly, progress)
	if err != nil {
		return "", addressErr("", err)
	}
	return text, nil
}

// Transform re-keys a previously produced intermediate product into the
// final sequence-to-value mapping.
func Transform(intermediateText string) (string, error) {
	out, err := derive.Transform(intermediateText)
	if err != nil {
		return "", parseErr(err)
	}
	return out, nil
}

// SearchResults produces the aggregate search listing artifact for filter.
func (s *Session) SearchResults(filter string) (string, error) {
	doc, nodes, err := s.snapshot()
	if err != nil {
		return "", err
	}
	text, err := derive.SearchResults(doc, nodes, filter)
	if err != nil {
		return "", addressErr("", err)
	}
	return text, nil
}

// snapshot returns a deep clone of the document and a copy of the index for
// worker use. Workers never see the live document, so an in-place mutation
// cannot race their reads.
func (s *Session) snapshot() (any, []shadow.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, nil, notLoadedErr()
	}
	doc, err := cloneDoc(s.doc)
	if err != nil {
		return nil, nil, parseErr(err)
	}
	nodes := make([]shadow.Node, len(s.nodes))
	copy(nodes, s.nodes)
	return doc, nodes, nil
}

// cloneDoc deep-copies a document by round-tripping its JSON form, keeping
// number text intact.
func cloneDoc(doc any) (any, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// install replaces the document, rebuilds the index, and writes the result
// back to the recorded origin when one exists. Callers hold the busy flag.
func (s *Session) install(doc any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.nodes = shadow.Build(doc)
	if s.origin == "" {
		return nil
	}
	return s.saveLocked(s.origin)
}
