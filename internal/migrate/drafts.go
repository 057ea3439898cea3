package migrate

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jonathan/trackflow/internal/types"
)

// Drafts classifies raw persisted draft JSON and returns the current-shape
// equivalent. The top-level container must be a mapping of contact id to
// draft; anything else is rejected for this slice.
//
// Classification is per value: a plain string is the legacy body-only form,
// an object with a string-coercible body field is accepted with the subject
// defaulted to empty, and anything else is dropped for that key (logged,
// not fatal).
func Drafts(raw []byte) (map[string]types.OutreachDraft, Shape, error) {
	var byContact map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byContact); err != nil {
		return nil, ShapeUnrecognized, fmt.Errorf("drafts: top-level container is not a mapping: %w", err)
	}

	out := make(map[string]types.OutreachDraft, len(byContact))
	shape := ShapeCurrent
	for contactID, rawDraft := range byContact {
		draft, converted, ok := convertDraft(rawDraft)
		if !ok {
			slog.Warn("dropping draft with unexpected shape", "contact", contactID)
			continue
		}
		if converted {
			shape = ShapeLegacyString
		}
		out[contactID] = draft
	}
	return out, shape, nil
}

// convertDraft decodes one draft value. Returns the draft, whether a legacy
// conversion happened, and whether the value was usable at all.
func convertDraft(raw json.RawMessage) (types.OutreachDraft, bool, bool) {
	var body string
	if err := json.Unmarshal(raw, &body); err == nil {
		return types.OutreachDraft{Subject: "", Body: body}, true, true
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return types.OutreachDraft{}, false, false
	}
	coerced, ok := coerceString(obj["body"])
	if !ok {
		return types.OutreachDraft{}, false, false
	}
	subject, _ := obj["subject"].(string)
	return types.OutreachDraft{Subject: subject, Body: coerced}, false, true
}

// coerceString accepts the JSON scalar types a legacy body field has been
// observed to hold.
func coerceString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}
