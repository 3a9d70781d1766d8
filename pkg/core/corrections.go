package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/oakwood-commons/jex/internal/address"
	"github.com/oakwood-commons/jex/internal/derive"
)

// Report aggregates the outcome of a corrections batch. Entries that fail
// individually are skipped and counted, never escalated to a terminating
// error.
type Report struct {
	Modified int
	Skipped  int
}

// ApplyCorrections merges an uploaded corrections object into the document.
// correctionsText is a flat object mapping decimal sequence-number strings
// to replacement values; each entry is matched to the intermediate
// product's item at that sequence number, whose source_path locates the
// slot to replace. Replacement values follow the mutation rule: they are
// stored as literal strings (numbers and booleans are stringified; null and
// structured values are skipped per entry).
//
// The merge is computed against a cloned snapshot; the live document is
// replaced only with the final result, rebuilt, and written back to the
// recorded origin. A concurrent mutation fails fast with ErrBusy.
func (s *Session) ApplyCorrections(correctionsText, intermediateText string, progress ProgressFunc) (Report, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return Report{}, ErrBusy
	}
	defer s.busy.Store(false)

	doc, _, err := s.snapshot()
	if err != nil {
		return Report{}, err
	}
	merged, report, err := mergeCorrections(doc, correctionsText, intermediateText, progress)
	if err != nil {
		return Report{}, err
	}
	if err := s.install(merged); err != nil {
		return Report{}, err
	}
	s.log.Info("corrections applied",
		"modified", report.Modified, "skipped", report.Skipped)
	return report, nil
}

// mergeCorrections computes the whole batch against a serialized snapshot
// of doc and returns the merged document. Each entry becomes one RFC 6902
// replace operation; an entry that fails to build or apply is skipped.
func mergeCorrections(doc any, correctionsText, intermediateText string, progress ProgressFunc) (any, Report, error) {
	report := Report{}
	notify := func(fraction float64, phase string) {
		if progress != nil {
			progress(fraction, phase)
		}
	}

	corrections, err := decodeCorrections(correctionsText)
	if err != nil {
		return nil, report, parseErr(err)
	}
	items, err := itemsBySeq(intermediateText)
	if err != nil {
		return nil, report, parseErr(err)
	}
	notify(0.1, "corrections parsed")

	// The serialized snapshot is the clone the batch operates on.
	snapshot, err := json.Marshal(doc)
	if err != nil {
		return nil, report, parseErr(err)
	}
	notify(0.5, "snapshot cloned")

	// Deterministic entry order keeps skip behavior reproducible.
	keys := make([]string, 0, len(corrections))
	for k := range corrections {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		op, ok := buildReplaceOp(key, corrections[key], items)
		if !ok {
			report.Skipped++
			continue
		}
		patch, err := jsonpatch.DecodePatch(op)
		if err != nil {
			report.Skipped++
			continue
		}
		next, err := patch.Apply(snapshot)
		if err != nil {
			// Replace on a missing path fails here; skip the entry.
			report.Skipped++
			continue
		}
		snapshot = next
		report.Modified++
	}
	notify(0.9, "edits computed")

	dec := json.NewDecoder(bytes.NewReader(snapshot))
	dec.UseNumber()
	var merged any
	if err := dec.Decode(&merged); err != nil {
		return nil, report, parseErr(err)
	}
	notify(1.0, "done")
	return merged, report, nil
}

// decodeCorrections parses the flat corrections object with number
// fidelity.
func decodeCorrections(text string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("corrections: %w", err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("corrections: expected a flat object")
	}
	return obj, nil
}

// itemsBySeq indexes the intermediate product's items by sequence number.
func itemsBySeq(intermediateText string) (map[int]derive.Item, error) {
	var artifact derive.Artifact
	if err := json.Unmarshal([]byte(intermediateText), &artifact); err != nil {
		return nil, fmt.Errorf("intermediate product: %w", err)
	}
	items := make(map[int]derive.Item, len(artifact.Items))
	for _, item := range artifact.Items {
		items[item.Seq] = item
	}
	return items, nil
}

// buildReplaceOp turns one corrections entry into a single-op RFC 6902
// patch. It returns ok=false for entries that must be skipped: a
// non-numeric or unmatched sequence number, a null or structured value, an
// empty replacement string, or an address that has no pointer form.
func buildReplaceOp(key string, value any, items map[int]derive.Item) ([]byte, bool) {
	seq, err := strconv.Atoi(key)
	if err != nil || seq < 0 {
		return nil, false
	}
	item, ok := items[seq]
	if !ok {
		return nil, false
	}
	text, ok := correctionText(value)
	if !ok {
		return nil, false
	}
	pointer, err := address.ToPointer(item.SourcePath)
	if err != nil {
		return nil, false
	}

	op := []map[string]any{{"op": "replace", "path": pointer, "value": text}}
	raw, err := json.Marshal(op)
	if err != nil {
		return nil, false
	}
	return raw, true
}

// correctionText normalizes an accepted replacement value to the literal
// string that gets stored. Strings must be non-empty after trimming;
// numbers and booleans are stringified; null and structured values are
// rejected.
func correctionText(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return "", false
		}
		return v, true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}
