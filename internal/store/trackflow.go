package store

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/trackflow/internal/types"
)

// Persister receives the full state after every mutation. DualTier is the
// production implementation.
type Persister interface {
	Save(ctx context.Context, userID uuid.UUID, st *types.State)
}

// TrackFlow is the in-memory container for one user's pipeline state. All
// mutations are synchronous; the container holds no timers of its own and
// delegates persistence to the Persister after every change.
type TrackFlow struct {
	userID  uuid.UUID
	state   *types.State
	persist Persister
}

// NewTrackFlow creates a container seeded with a previously loaded state.
// A nil seed starts empty.
func NewTrackFlow(userID uuid.UUID, seed *types.State, persist Persister) *TrackFlow {
	if seed == nil {
		seed = types.NewState()
	}
	seed.Normalize()
	return &TrackFlow{userID: userID, state: seed, persist: persist}
}

// UserID returns the owning user's id.
func (t *TrackFlow) UserID() uuid.UUID {
	return t.userID
}

// State returns a deep copy of the current state.
func (t *TrackFlow) State() *types.State {
	return t.state.Clone()
}

// Track pulls a job into the pipeline at the Customize stage. Tracking an
// already-tracked job is a no-op and preserves its current stage.
func (t *TrackFlow) Track(ctx context.Context, jobID string) {
	if _, tracked := t.state.TrackedJobs[jobID]; tracked {
		return
	}
	t.state.TrackedJobs[jobID] = types.StageCustomize
	t.save(ctx)
}

// MoveStage sets a tracked job's stage, overwriting unconditionally. An
// unknown stage value or untracked job is ignored.
func (t *TrackFlow) MoveStage(ctx context.Context, jobID string, stage types.Stage) {
	if !stage.Valid() {
		return
	}
	if _, tracked := t.state.TrackedJobs[jobID]; !tracked {
		return
	}
	t.state.TrackedJobs[jobID] = stage
	t.save(ctx)
}

// Untrack removes the job from the pipeline but leaves its resume,
// contacts, and drafts in place, so re-tracking does not lose history.
func (t *TrackFlow) Untrack(ctx context.Context, jobID string) {
	if _, tracked := t.state.TrackedJobs[jobID]; !tracked {
		return
	}
	delete(t.state.TrackedJobs, jobID)
	t.save(ctx)
}

// SetResume stores the tailored resume text for a job.
func (t *TrackFlow) SetResume(ctx context.Context, jobID, text string) {
	t.state.CustomizedResumes[jobID] = text
	t.save(ctx)
}

// AddContact appends a new contact to a job with a freshly generated id.
// If any of the three trimmed inputs is empty the call performs no mutation
// and reports false; this is a silent rejection, not an error.
func (t *TrackFlow) AddContact(ctx context.Context, jobID, firstName, lastName, companyOrURL string) (types.Contact, bool) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	companyOrURL = strings.TrimSpace(companyOrURL)
	if firstName == "" || lastName == "" || companyOrURL == "" {
		return types.Contact{}, false
	}

	contact := types.Contact{
		ID:               uuid.NewString(),
		FirstName:        firstName,
		LastName:         lastName,
		CompanyNameOrURL: companyOrURL,
	}
	t.state.JobContacts[jobID] = append(t.state.JobContacts[jobID], contact)
	t.save(ctx)
	return contact, true
}

// UpdateContact locates a contact by id across all jobs and merges the
// partial update: only non-nil fields overwrite, absent fields are
// preserved. Reports whether the contact was found.
func (t *TrackFlow) UpdateContact(ctx context.Context, contactID string, upd types.ContactUpdate) bool {
	jobID, idx, found := t.state.FindContact(contactID)
	if !found {
		return false
	}

	contact := &t.state.JobContacts[jobID][idx]
	if upd.FirstName != nil {
		contact.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		contact.LastName = *upd.LastName
	}
	if upd.CompanyNameOrURL != nil {
		contact.CompanyNameOrURL = *upd.CompanyNameOrURL
	}
	if upd.Email != nil {
		contact.Email = *upd.Email
	}
	if upd.Role != nil {
		contact.Role = *upd.Role
	}
	if upd.Avatar != nil {
		contact.Avatar = *upd.Avatar
	}
	t.save(ctx)
	return true
}

// SetDraft replaces a contact's outreach draft wholesale. The contact must
// exist; drafts never reference ids that were not introduced by a prior
// add-contact action.
func (t *TrackFlow) SetDraft(ctx context.Context, contactID string, draft types.OutreachDraft) bool {
	if _, _, found := t.state.FindContact(contactID); !found {
		return false
	}
	t.state.ContactDrafts[contactID] = draft
	t.save(ctx)
	return true
}

func (t *TrackFlow) save(ctx context.Context) {
	if t.persist != nil {
		t.persist.Save(ctx, t.userID, t.state)
	}
}
