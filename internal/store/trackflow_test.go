package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/trackflow/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingPersister records how many times the store asked to persist.
type countingPersister struct {
	saves int
	last  *types.State
}

func (c *countingPersister) Save(_ context.Context, _ uuid.UUID, st *types.State) {
	c.saves++
	c.last = st.Clone()
}

func newTestFlow() (*TrackFlow, *countingPersister) {
	p := &countingPersister{}
	return NewTrackFlow(uuid.New(), nil, p), p
}

func TestTrack_SetsCustomizeStage(t *testing.T) {
	flow, p := newTestFlow()
	ctx := context.Background()

	flow.Track(ctx, "42")
	assert.Equal(t, types.StageCustomize, flow.State().TrackedJobs["42"])
	assert.Equal(t, 1, p.saves)
}

func TestTrack_AlreadyTrackedIsNoOp(t *testing.T) {
	flow, p := newTestFlow()
	ctx := context.Background()

	flow.Track(ctx, "42")
	flow.MoveStage(ctx, "42", types.StageApply)
	savesBefore := p.saves

	flow.Track(ctx, "42")
	assert.Equal(t, types.StageApply, flow.State().TrackedJobs["42"], "re-tracking must not reset the stage")
	assert.Equal(t, savesBefore, p.saves, "a no-op must not trigger persistence")
}

func TestMoveStage(t *testing.T) {
	flow, _ := newTestFlow()
	ctx := context.Background()

	flow.Track(ctx, "42")
	flow.MoveStage(ctx, "42", types.StageDone)
	assert.Equal(t, types.StageDone, flow.State().TrackedJobs["42"])

	// Unknown stage and untracked job are both ignored.
	flow.MoveStage(ctx, "42", types.Stage("archived"))
	assert.Equal(t, types.StageDone, flow.State().TrackedJobs["42"])

	flow.MoveStage(ctx, "99", types.StageApply)
	assert.NotContains(t, flow.State().TrackedJobs, "99")
}

func TestUntrack_PreservesHistory(t *testing.T) {
	flow, _ := newTestFlow()
	ctx := context.Background()

	flow.Track(ctx, "42")
	flow.SetResume(ctx, "42", "X")
	contact, ok := flow.AddContact(ctx, "42", "Jane", "Doe", "acme.com")
	require.True(t, ok)

	flow.Untrack(ctx, "42")
	st := flow.State()
	assert.NotContains(t, st.TrackedJobs, "42")
	assert.Equal(t, "X", st.CustomizedResumes["42"], "untrack must keep the resume")
	assert.Len(t, st.JobContacts["42"], 1, "untrack must keep contacts")

	// Re-tracking picks the history back up.
	flow.Track(ctx, "42")
	st = flow.State()
	assert.Equal(t, types.StageCustomize, st.TrackedJobs["42"])
	assert.Equal(t, "X", st.CustomizedResumes["42"])
	assert.Equal(t, contact.ID, st.JobContacts["42"][0].ID)
}

func TestAddContact_Scenario(t *testing.T) {
	flow, _ := newTestFlow()
	ctx := context.Background()

	contact, ok := flow.AddContact(ctx, "42", "Jane", "Doe", "acme.com")
	require.True(t, ok)

	st := flow.State()
	require.Len(t, st.JobContacts["42"], 1)
	got := st.JobContacts["42"][0]
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "Jane", got.FirstName)
	assert.Equal(t, "Doe", got.LastName)
	assert.Equal(t, "acme.com", got.CompanyNameOrURL)
	assert.Empty(t, got.Email)

	email := "jane@acme.com"
	require.True(t, flow.UpdateContact(ctx, contact.ID, types.ContactUpdate{Email: &email}))

	st = flow.State()
	got = st.JobContacts["42"][0]
	assert.Equal(t, "jane@acme.com", got.Email)
	assert.Equal(t, "Jane", got.FirstName, "merge must leave the name intact")
	assert.Equal(t, "Doe", got.LastName)
	assert.Equal(t, "acme.com", got.CompanyNameOrURL)
}

func TestAddContact_EmptyInputRejectedSilently(t *testing.T) {
	flow, p := newTestFlow()
	ctx := context.Background()

	tests := []struct {
		name                  string
		first, last, company string
	}{
		{"empty first", "", "Doe", "acme.com"},
		{"empty last", "Jane", "", "acme.com"},
		{"empty company", "Jane", "Doe", ""},
		{"whitespace only", "   ", "Doe", "acme.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := flow.AddContact(ctx, "42", tt.first, tt.last, tt.company)
			assert.False(t, ok)
		})
	}
	assert.Empty(t, flow.State().JobContacts["42"])
	assert.Equal(t, 0, p.saves, "rejected input must not persist")
}

func TestAddContact_TrimsInputs(t *testing.T) {
	flow, _ := newTestFlow()

	contact, ok := flow.AddContact(context.Background(), "42", "  Jane ", " Doe", "acme.com ")
	require.True(t, ok)
	assert.Equal(t, "Jane", contact.FirstName)
	assert.Equal(t, "Doe", contact.LastName)
	assert.Equal(t, "acme.com", contact.CompanyNameOrURL)
}

func TestAddContact_IDsUnique(t *testing.T) {
	flow, _ := newTestFlow()
	ctx := context.Background()

	a, _ := flow.AddContact(ctx, "42", "Jane", "Doe", "acme.com")
	b, _ := flow.AddContact(ctx, "42", "John", "Smith", "acme.com")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestUpdateContact_AcrossJobs(t *testing.T) {
	flow, _ := newTestFlow()
	ctx := context.Background()

	_, _ = flow.AddContact(ctx, "42", "Jane", "Doe", "acme.com")
	other, _ := flow.AddContact(ctx, "99", "John", "Smith", "globex.com")

	role := "Recruiter"
	require.True(t, flow.UpdateContact(ctx, other.ID, types.ContactUpdate{Role: &role}))
	assert.Equal(t, "Recruiter", flow.State().JobContacts["99"][0].Role)

	assert.False(t, flow.UpdateContact(ctx, "missing", types.ContactUpdate{Role: &role}))
}

func TestSetDraft(t *testing.T) {
	flow, _ := newTestFlow()
	ctx := context.Background()

	contact, _ := flow.AddContact(ctx, "42", "Jane", "Doe", "acme.com")

	require.True(t, flow.SetDraft(ctx, contact.ID, types.OutreachDraft{Subject: "Hi", Body: "v1"}))
	require.True(t, flow.SetDraft(ctx, contact.ID, types.OutreachDraft{Subject: "", Body: "v2"}))

	// Wholesale replace: no field-level merge.
	assert.Equal(t, types.OutreachDraft{Subject: "", Body: "v2"}, flow.State().ContactDrafts[contact.ID])

	// Drafts for unknown contacts are rejected, keeping references intact.
	assert.False(t, flow.SetDraft(ctx, "missing", types.OutreachDraft{Body: "x"}))
	assert.NotContains(t, flow.State().ContactDrafts, "missing")
}

func TestEveryMutationPersists(t *testing.T) {
	flow, p := newTestFlow()
	ctx := context.Background()

	flow.Track(ctx, "42")
	flow.MoveStage(ctx, "42", types.StageConnect)
	flow.SetResume(ctx, "42", "resume")
	contact, _ := flow.AddContact(ctx, "42", "Jane", "Doe", "acme.com")
	email := "jane@acme.com"
	flow.UpdateContact(ctx, contact.ID, types.ContactUpdate{Email: &email})
	flow.SetDraft(ctx, contact.ID, types.OutreachDraft{Body: "hi"})
	flow.Untrack(ctx, "42")

	assert.Equal(t, 7, p.saves)
	require.NotNil(t, p.last)
	assert.Equal(t, "resume", p.last.CustomizedResumes["42"])
}
