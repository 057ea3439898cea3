package migrate

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonathan/trackflow/internal/types"
)

// Contacts classifies raw persisted contact JSON and returns the
// current-shape equivalent. The top-level container must be a mapping of
// job id to contact list; anything else is rejected for this slice.
//
// Legacy detection inspects the first element of the first non-empty job
// list (jobs visited in sorted key order so the decision is stable): if that
// element's firstName field is not a string, the whole structure is treated
// as the old recruiter format and every entry is converted. Entries that
// already carry a string firstName pass through unchanged even inside a
// legacy-classified batch, so a mixed batch does not lose current data.
func Contacts(raw []byte) (map[string][]types.Contact, Shape, error) {
	var byJob map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byJob); err != nil {
		return nil, ShapeUnrecognized, fmt.Errorf("contacts: top-level container is not a mapping: %w", err)
	}

	entries := make(map[string][]map[string]any, len(byJob))
	jobIDs := make([]string, 0, len(byJob))
	for jobID, rawList := range byJob {
		var list []map[string]any
		if err := json.Unmarshal(rawList, &list); err != nil {
			slog.Warn("dropping contact list with unexpected shape", "job", jobID, "error", err)
			continue
		}
		entries[jobID] = list
		jobIDs = append(jobIDs, jobID)
	}
	sort.Strings(jobIDs)

	if shape := classifyContacts(jobIDs, entries); shape == ShapeCurrent {
		// Decode per job so a malformed list dropped above never blocks
		// the healthy ones.
		out := make(map[string][]types.Contact, len(entries))
		for _, jobID := range jobIDs {
			var current []types.Contact
			if err := json.Unmarshal(byJob[jobID], &current); err != nil {
				slog.Warn("dropping contact list that failed current-shape decode", "job", jobID, "error", err)
				continue
			}
			out[jobID] = current
		}
		return out, ShapeCurrent, nil
	}

	out := make(map[string][]types.Contact, len(entries))
	for _, jobID := range jobIDs {
		converted := make([]types.Contact, 0, len(entries[jobID]))
		for i, entry := range entries[jobID] {
			converted = append(converted, convertRecruiter(jobID, i, entry))
		}
		out[jobID] = converted
	}
	return out, ShapeLegacyList, nil
}

// classifyContacts decides the format for the whole batch from the first
// element of the first non-empty list.
func classifyContacts(jobIDs []string, entries map[string][]map[string]any) Shape {
	for _, jobID := range jobIDs {
		list := entries[jobID]
		if len(list) == 0 {
			continue
		}
		if _, ok := list[0]["firstName"].(string); ok {
			return ShapeCurrent
		}
		return ShapeLegacyList
	}
	// Nothing but empty lists: treat as current, there is nothing to convert.
	return ShapeCurrent
}

// convertRecruiter upconverts one legacy recruiter entry to a Contact. The
// legacy format carried a combined name field; splitting it heuristically is
// out of scope, so the name fills both first and last name unless the entry
// is already split. Ids are synthesized deterministically from the job id
// and position, so re-running the migration over the same legacy data yields
// the same ids.
func convertRecruiter(jobID string, index int, entry map[string]any) types.Contact {
	if first, ok := entry["firstName"].(string); ok {
		// Already current; carry the remaining fields through as-is.
		c := types.Contact{ID: stringField(entry, "id"), FirstName: first}
		c.LastName = stringField(entry, "lastName")
		c.CompanyNameOrURL = stringField(entry, "companyNameOrUrl")
		c.Email = stringField(entry, "email")
		c.Role = stringField(entry, "role")
		c.Avatar = stringField(entry, "avatar")
		if c.ID == "" {
			c.ID = SynthesizeContactID(jobID, index)
		}
		return c
	}

	name := stringField(entry, "name")
	company := stringField(entry, "company")
	if company == "" {
		company = stringField(entry, "companyNameOrUrl")
	}
	return types.Contact{
		ID:               SynthesizeContactID(jobID, index),
		FirstName:        name,
		LastName:         name,
		CompanyNameOrURL: company,
		Email:            stringField(entry, "email"),
		Role:             stringField(entry, "role"),
		Avatar:           stringField(entry, "avatar"),
	}
}

// SynthesizeContactID derives a stable uuid for a legacy contact from its
// job id and list position. Name-based (v5) uuids keep the id distinct from
// freshly generated v4 ids in the current batch while staying deterministic.
func SynthesizeContactID(jobID string, index int) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("trackflow/contact/"+jobID+"/"+strconv.Itoa(index))).String()
}

func stringField(entry map[string]any, key string) string {
	s, _ := entry[key].(string)
	return s
}
