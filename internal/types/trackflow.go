// Package types provides type definitions for structured data used throughout the trackflow system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Stage represents the pipeline position of a tracked job
type Stage string

// The four pipeline stages. A tracked job is always in exactly one of them.
const (
	// StageCustomize is the initial stage: tailoring the resume for the job
	StageCustomize Stage = "customize"
	// StageConnect is the outreach stage: finding and contacting people at the company
	StageConnect Stage = "connect"
	// StageApply is the submission stage
	StageApply Stage = "apply"
	// StageDone marks a finished job (offer, rejection, or abandoned)
	StageDone Stage = "done"
)

// Valid reports whether s is one of the four pipeline stages.
func (s Stage) Valid() bool {
	switch s {
	case StageCustomize, StageConnect, StageApply, StageDone:
		return true
	}
	return false
}

// Contact represents a person at a company associated with a tracked job.
// A contact is created only through an explicit add-contact action and is
// never deleted implicitly; email, role, and avatar are attached later as
// they are discovered.
type Contact struct {
	ID               string `json:"id"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	CompanyNameOrURL string `json:"companyNameOrUrl"`
	Email            string `json:"email,omitempty"`
	Role             string `json:"role,omitempty"`
	Avatar           string `json:"avatar,omitempty"`
}

// ContactUpdate carries a partial update for a contact. Nil fields are
// preserved by the merge; only non-nil fields overwrite existing values.
type ContactUpdate struct {
	FirstName        *string `json:"firstName,omitempty"`
	LastName         *string `json:"lastName,omitempty"`
	CompanyNameOrURL *string `json:"companyNameOrUrl,omitempty"`
	Email            *string `json:"email,omitempty"`
	Role             *string `json:"role,omitempty"`
	Avatar           *string `json:"avatar,omitempty"`
}

// OutreachDraft represents a drafted outreach email for a single contact.
// There is at most one draft per contact; regeneration or editing replaces
// the draft wholesale.
type OutreachDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// State aggregates everything trackflow persists for one user: which jobs
// are tracked and at what stage, the tailored resume text per job, the
// contacts found per job, and the outreach draft per contact.
type State struct {
	TrackedJobs       map[string]Stage         `json:"trackedJobs"`
	CustomizedResumes map[string]string        `json:"customizedResumes"`
	JobContacts       map[string][]Contact     `json:"jobContacts"`
	ContactDrafts     map[string]OutreachDraft `json:"contactDrafts"`
}

// NewState returns an empty State with all maps initialized.
func NewState() *State {
	return &State{
		TrackedJobs:       make(map[string]Stage),
		CustomizedResumes: make(map[string]string),
		JobContacts:       make(map[string][]Contact),
		ContactDrafts:     make(map[string]OutreachDraft),
	}
}

// Normalize initializes any nil maps in place. Useful after unmarshaling
// persisted JSON where empty slices may have been omitted.
func (s *State) Normalize() {
	if s.TrackedJobs == nil {
		s.TrackedJobs = make(map[string]Stage)
	}
	if s.CustomizedResumes == nil {
		s.CustomizedResumes = make(map[string]string)
	}
	if s.JobContacts == nil {
		s.JobContacts = make(map[string][]Contact)
	}
	if s.ContactDrafts == nil {
		s.ContactDrafts = make(map[string]OutreachDraft)
	}
}

// Clone returns a deep copy of the state. Debounced remote writes snapshot
// the state at save time so later mutations do not leak into a pending write.
func (s *State) Clone() *State {
	out := NewState()
	for k, v := range s.TrackedJobs {
		out.TrackedJobs[k] = v
	}
	for k, v := range s.CustomizedResumes {
		out.CustomizedResumes[k] = v
	}
	for k, v := range s.JobContacts {
		contacts := make([]Contact, len(v))
		copy(contacts, v)
		out.JobContacts[k] = contacts
	}
	for k, v := range s.ContactDrafts {
		out.ContactDrafts[k] = v
	}
	return out
}

// FindContact locates a contact by id across all jobs. Returns the job id
// the contact belongs to, its index within that job's list, and whether it
// was found.
func (s *State) FindContact(contactID string) (jobID string, index int, found bool) {
	for job, contacts := range s.JobContacts {
		for i, c := range contacts {
			if c.ID == contactID {
				return job, i, true
			}
		}
	}
	return "", 0, false
}
