package core

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "items": [
    {"title": "first", "name": "one"},
    {"title": "second", "name": "two"}
  ],
  "meta": {"version": "1.2.3"}
}`

func newTestSession(t *testing.T) (*Session, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0o644))
	s := NewSession(logr.Discard())
	require.NoError(t, s.Load(path))
	return s, path
}

func TestLoadErrors(t *testing.T) {
	s := NewSession(logr.Discard())

	err := s.Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, IsKind(err, KindIO))

	err = s.LoadBytes([]byte("{broken"), "")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindParse))
	assert.False(t, s.Loaded())
}

func TestNotLoadedOperations(t *testing.T) {
	s := NewSession(logr.Discard())

	_, err := s.Extract("$")
	assert.True(t, errors.Is(err, &Error{Kind: KindNotLoaded}))
	assert.Error(t, s.Mutate("$.a", "x"))
	assert.Error(t, s.Save(filepath.Join(t.TempDir(), "out.json")))
	assert.Error(t, s.Toggle("$"))
	assert.Error(t, s.Filter("a"))
	_, err = s.CandidateFields(false)
	assert.Error(t, err)
	_, err = s.Derive("x", false, nil)
	assert.Error(t, err)
}

func TestExtractRootRoundTrip(t *testing.T) {
	s, _ := newTestSession(t)

	text, err := s.Extract("$")
	require.NoError(t, err)

	var extracted, original any
	require.NoError(t, json.Unmarshal([]byte(text), &extracted))
	require.NoError(t, json.Unmarshal([]byte(sampleJSON), &original))
	assert.Equal(t, original, extracted)
}

func TestExtractAddressErrors(t *testing.T) {
	s, _ := newTestSession(t)

	_, err := s.Extract("$.missing")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindAddress))

	_, err = s.Extract("%%%")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindAddress))
}

func TestMutateRoundTrip(t *testing.T) {
	s, _ := newTestSession(t)

	require.NoError(t, s.Mutate("$.items[0].title", "renamed"))
	text, err := s.Extract("$.items[0].title")
	require.NoError(t, err)
	assert.Equal(t, `"renamed"`, text)
}

func TestMutateStoresLiteralText(t *testing.T) {
	s, _ := newTestSession(t)

	// JSON-looking replacement text stays a string; it is never re-parsed.
	require.NoError(t, s.Mutate("$.meta.version", `{"a": 1}`))
	text, err := s.Extract("$.meta.version")
	require.NoError(t, err)

	var v any
	require.NoError(t, json.Unmarshal([]byte(text), &v))
	assert.Equal(t, `{"a": 1}`, v)
}

func TestMutateRebuildsIndex(t *testing.T) {
	s, _ := newTestSession(t)
	before := len(s.Nodes())

	// Replacing an object with a string shrinks the index.
	require.NoError(t, s.Mutate("$.meta", "flattened"))
	after := len(s.Nodes())
	assert.Equal(t, before-1, after)

	// The old child address is gone.
	_, err := s.Extract("$.meta.version")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindAddress))
}

func TestMutateFailureLeavesDocumentUntouched(t *testing.T) {
	s, _ := newTestSession(t)

	err := s.Mutate("$.items[9].title", "x")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindAddress))

	text, err := s.Extract("$.items[0].title")
	require.NoError(t, err)
	assert.Equal(t, `"first"`, text)
}

func TestMutateBusyFailsFast(t *testing.T) {
	s, _ := newTestSession(t)
	s.busy.Store(true)
	defer s.busy.Store(false)

	err := s.Mutate("$.items[0].title", "x")
	assert.ErrorIs(t, err, ErrBusy)
}

func TestSaveAndSaveOriginal(t *testing.T) {
	s, path := newTestSession(t)
	require.NoError(t, s.Mutate("$.items[0].title", "saved"))

	out := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, s.Save(out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"saved"`)

	require.NoError(t, s.SaveOriginal())
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"saved"`)
}

func TestSaveOriginalWithoutOrigin(t *testing.T) {
	s := NewSession(logr.Discard())
	require.NoError(t, s.LoadBytes([]byte(`{"a": 1}`), ""))

	err := s.SaveOriginal()
	require.Error(t, err)
	assert.True(t, IsKind(err, KindIO))
}

func TestToggleAndFilter(t *testing.T) {
	s, _ := newTestSession(t)

	visible := func() int {
		count := 0
		for _, n := range s.Nodes() {
			if n.Visible {
				count++
			}
		}
		return count
	}

	require.NoError(t, s.RecomputeVisibility())
	assert.Equal(t, 1, visible()) // collapsed: root only

	require.NoError(t, s.Toggle("$"))
	assert.Equal(t, 3, visible()) // root + items + meta

	require.NoError(t, s.Filter("title"))
	assert.Equal(t, 2, visible()) // the two title leaves

	require.NoError(t, s.Filter(""))
	assert.Equal(t, len(s.Nodes()), visible())
}

func TestExpandAll(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.ExpandAll())
	for _, n := range s.Nodes() {
		assert.True(t, n.Visible, n.Address)
	}
}

func TestCandidateFields(t *testing.T) {
	s, _ := newTestSession(t)
	fields, err := s.CandidateFields(false)
	require.NoError(t, err)
	// "version" is excluded because its value is version-shaped.
	assert.Equal(t, []string{"name", "title"}, fields)
}

func TestDeriveAndTransform(t *testing.T) {
	s, _ := newTestSession(t)

	intermediate, err := s.Derive("title", false, nil)
	require.NoError(t, err)
	require.NotEmpty(t, intermediate)

	final, err := Transform(intermediate)
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(final), &got))
	assert.Equal(t, map[string]string{"0": "first", "1": "second"}, got)
}

func TestDeriveEmptyFilter(t *testing.T) {
	s, _ := newTestSession(t)
	text, err := s.Derive("", false, nil)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestSearchResults(t *testing.T) {
	s, _ := newTestSession(t)

	out, err := s.SearchResults("version")
	require.NoError(t, err)
	assert.Equal(t, `"1.2.3"`, out)
}

func TestSnapshotIsolatedFromMutation(t *testing.T) {
	s, _ := newTestSession(t)

	doc, _, err := s.snapshot()
	require.NoError(t, err)

	require.NoError(t, s.Mutate("$.items[0].title", "changed"))

	title := doc.(map[string]any)["items"].([]any)[0].(map[string]any)["title"]
	assert.Equal(t, "first", title)

	after, err := s.Extract("$.items[0].title")
	require.NoError(t, err)
	assert.Equal(t, `"changed"`, after)
}

func TestDeriveConcurrentWithMutate(t *testing.T) {
	s, _ := newTestSession(t)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			_, err := s.Derive("title", false, nil)
			assert.NoError(t, err)
		}
	}()
	for i := 0; i < 50; i++ {
		require.NoError(t, s.Mutate("$.items[0].title", "rewrite"))
	}
	wg.Wait()
}
