// Package services – intent classification
//
// This file maps a free-text user question onto a tenant category id via the
// language model in JSON-biased mode. Model output is untrusted and loosely
// structured, so parsing is a tagged outcome produced by an ordered chain of
// extraction strategies: structured JSON first, raw text second, unparsable
// last. Classification is an optimization, never a correctness requirement —
// every failure path degrades to "no category".
package services

import (
	"encoding/json"
	"strings"
)

// classificationKind tags how a model response was interpreted.
type classificationKind int

const (
	// classStructured means a JSON object yielded the id (category_id, id,
	// or the object's sole value).
	classStructured classificationKind = iota
	// classRawText means the raw response itself was taken as the id.
	classRawText
	// classUnparsable means no strategy produced a usable id.
	classUnparsable
)

// classification is the tagged outcome of parsing a classifier response.
type classification struct {
	kind       classificationKind
	categoryID string
}

// parseClassification applies the extraction chain to a raw model response.
//
// Strategies, in order:
//  1. JSON object with a "category_id" field.
//  2. JSON object with an "id" field.
//  3. JSON object with exactly one value (whatever its key).
//  4. The raw text itself, trimmed and with quote characters stripped.
//
// A blank result after all strategies is unparsable.
func parseClassification(raw string) classification {
	if obj := decodeJSONObject(raw); obj != nil {
		if id := stringValue(obj["category_id"]); id != "" {
			return classification{kind: classStructured, categoryID: id}
		}
		if id := stringValue(obj["id"]); id != "" {
			return classification{kind: classStructured, categoryID: id}
		}
		if len(obj) == 1 {
			for _, v := range obj {
				if id := stringValue(v); id != "" {
					return classification{kind: classStructured, categoryID: id}
				}
			}
		}
	}

	id := strings.Trim(strings.TrimSpace(raw), `"'`)
	if id == "" {
		return classification{kind: classUnparsable}
	}
	return classification{kind: classRawText, categoryID: id}
}

// decodeJSONObject returns the decoded object when raw is a JSON object,
// nil otherwise.
func decodeJSONObject(raw string) map[string]any {
	var obj map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &obj); err != nil {
		return nil
	}
	return obj
}

// stringValue renders a decoded JSON value as a trimmed string id.
// Non-string scalars are ignored: category ids are always strings.
func stringValue(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
