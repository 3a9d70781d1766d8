package core

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deriveIntermediate(t *testing.T, s *Session) string {
	t.Helper()
	intermediate, err := s.Derive("title", false, nil)
	require.NoError(t, err)
	require.NotEmpty(t, intermediate)
	return intermediate
}

func TestApplyCorrections(t *testing.T) {
	s, path := newTestSession(t)
	intermediate := deriveIntermediate(t, s)

	corrections := `{"0": "FIRST", "1": 42, "9": "out of range"}`
	report, err := s.ApplyCorrections(corrections, intermediate, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Modified)
	assert.Equal(t, 1, report.Skipped)

	// Values land as literal strings, numbers included.
	text, err := s.Extract("$.items[0].title")
	require.NoError(t, err)
	assert.Equal(t, `"FIRST"`, text)

	text, err = s.Extract("$.items[1].title")
	require.NoError(t, err)
	assert.Equal(t, `"42"`, text)

	// The merged document was written back to the origin.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"FIRST"`)
}

func TestApplyCorrectionsValueRules(t *testing.T) {
	s, _ := newTestSession(t)
	intermediate := deriveIntermediate(t, s)

	tests := []struct {
		name        string
		corrections string
		modified    int
		skipped     int
	}{
		{"boolean stringified", `{"0": true}`, 1, 0},
		{"null skipped", `{"0": null}`, 0, 1},
		{"object skipped", `{"0": {"a": 1}}`, 0, 1},
		{"array skipped", `{"0": [1]}`, 0, 1},
		{"blank string skipped", `{"0": "   "}`, 0, 1},
		{"non-numeric seq skipped", `{"abc": "x"}`, 0, 1},
		{"negative seq skipped", `{"-1": "x"}`, 0, 1},
		{"mixed", `{"0": "ok", "1": null}`, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSession(t)
			report, err := s.ApplyCorrections(tt.corrections, intermediate, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.modified, report.Modified)
			assert.Equal(t, tt.skipped, report.Skipped)
		})
	}
}

func TestApplyCorrectionsParseFailures(t *testing.T) {
	s, _ := newTestSession(t)
	intermediate := deriveIntermediate(t, s)

	_, err := s.ApplyCorrections(`not json`, intermediate, nil)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindParse))

	_, err = s.ApplyCorrections(`["not", "an", "object"]`, intermediate, nil)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindParse))

	_, err = s.ApplyCorrections(`{"0": "x"}`, `broken`, nil)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindParse))
}

func TestApplyCorrectionsBusyFailsFast(t *testing.T) {
	s, _ := newTestSession(t)
	intermediate := deriveIntermediate(t, s)

	s.busy.Store(true)
	defer s.busy.Store(false)
	_, err := s.ApplyCorrections(`{"0": "x"}`, intermediate, nil)
	assert.ErrorIs(t, err, ErrBusy)
}

func TestApplyCorrectionsProgressCheckpoints(t *testing.T) {
	s, _ := newTestSession(t)
	intermediate := deriveIntermediate(t, s)

	var fractions []float64
	_, err := s.ApplyCorrections(`{"0": "x"}`, intermediate, func(f float64, _ string) {
		fractions = append(fractions, f)
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.5, 0.9, 1.0}, fractions)
}
