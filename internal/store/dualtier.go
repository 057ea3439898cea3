// Package store holds a user's in-memory track-flow state and the
// dual-tier persistence logic that keeps it consistent across the local
// cache and the remote store.
package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/trackflow/internal/cache"
	"github.com/jonathan/trackflow/internal/migrate"
	"github.com/jonathan/trackflow/internal/types"
)

// DefaultSettleWindow is the quiescence period before a debounced remote
// write is committed.
const DefaultSettleWindow = 600 * time.Millisecond

// remoteWriteTimeout bounds the background remote write once the settle
// window has elapsed.
const remoteWriteTimeout = 10 * time.Second

// Cache slot names under the per-user prefix. Contacts and drafts kept
// legacy aliases through two schema generations; reads check the current
// slot first, then the aliases in order. Writes use the current slot only.
const (
	slotTracked  = "tracked"
	slotResumes  = "resumes"
	slotContacts = "contacts"
	slotDrafts   = "drafts"
)

var (
	contactSlots = []string{slotContacts, "jobRecruiters", "recruiters"}
	draftSlots   = []string{slotDrafts, "recruiterDrafts", "recruiterEmails"}
)

// Remote is the remote persistent store capability. Get returns (nil, nil)
// when the user has no remote state.
type Remote interface {
	GetState(ctx context.Context, userID uuid.UUID) (*types.State, error)
	PutState(ctx context.Context, userID uuid.UUID, st *types.State) error
}

// DualTier spans the local cache and the remote store. Every save hits the
// cache synchronously; the remote write is debounced so only the final
// state of a burst of rapid mutations is sent.
type DualTier struct {
	cache  cache.Cache
	remote Remote
	settle time.Duration
	logger *slog.Logger

	// The timer callback runs on its own goroutine, so the pending write
	// needs a lock even though the session itself is single-writer.
	mu          sync.Mutex
	timer       *time.Timer
	pendingUser uuid.UUID
	pending     *types.State
	closed      bool
}

// NewDualTier creates a dual-tier store. A zero settle window selects
// DefaultSettleWindow; a nil logger selects slog.Default().
func NewDualTier(c cache.Cache, r Remote, settle time.Duration, logger *slog.Logger) *DualTier {
	if settle <= 0 {
		settle = DefaultSettleWindow
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DualTier{cache: c, remote: r, settle: settle, logger: logger}
}

// Load hydrates a user's state. The remote tier wins when reachable — it is
// authoritative and already current-shape. On remote failure or absence the
// four cache slots are read and parsed independently, with legacy shapes
// migrated, so one corrupt slice never blocks the rest of the state.
func (d *DualTier) Load(ctx context.Context, userID uuid.UUID) (*types.State, error) {
	st, err := d.remote.GetState(ctx, userID)
	if err != nil {
		d.logger.Warn("remote load failed, falling back to local cache", "user", userID, "error", err)
	} else if st != nil {
		return st, nil
	}

	return d.loadLocal(userID), nil
}

func (d *DualTier) loadLocal(userID uuid.UUID) *types.State {
	st := types.NewState()
	prefix := keyPrefix(userID)

	if raw, ok := d.cache.Get(prefix + slotTracked); ok {
		var tracked map[string]types.Stage
		if err := json.Unmarshal([]byte(raw), &tracked); err != nil {
			d.logger.Warn("dropping unparseable tracked-jobs slice", "user", userID, "error", err)
		} else {
			for jobID, stage := range tracked {
				if stage.Valid() {
					st.TrackedJobs[jobID] = stage
				} else {
					d.logger.Warn("dropping tracked job with unknown stage", "job", jobID, "stage", string(stage))
				}
			}
		}
	}

	if raw, ok := d.cache.Get(prefix + slotResumes); ok {
		var resumes map[string]string
		if err := json.Unmarshal([]byte(raw), &resumes); err != nil {
			d.logger.Warn("dropping unparseable resumes slice", "user", userID, "error", err)
		} else {
			st.CustomizedResumes = resumes
		}
	}

	if raw, slot, ok := d.firstSlot(prefix, contactSlots); ok {
		contacts, shape, err := migrate.Contacts([]byte(raw))
		if err != nil {
			d.logger.Warn("dropping unrecognized contacts slice", "user", userID, "slot", slot, "error", err)
		} else {
			if shape != migrate.ShapeCurrent {
				d.logger.Info("migrated legacy contacts", "user", userID, "slot", slot, "shape", shape.String())
			}
			st.JobContacts = contacts
		}
	}

	if raw, slot, ok := d.firstSlot(prefix, draftSlots); ok {
		drafts, shape, err := migrate.Drafts([]byte(raw))
		if err != nil {
			d.logger.Warn("dropping unrecognized drafts slice", "user", userID, "slot", slot, "error", err)
		} else {
			if shape != migrate.ShapeCurrent {
				d.logger.Info("migrated legacy drafts", "user", userID, "slot", slot, "shape", shape.String())
			}
			st.ContactDrafts = drafts
		}
	}

	st.Normalize()
	return st
}

// firstSlot returns the value of the first present slot, checked in the
// fixed preference order.
func (d *DualTier) firstSlot(prefix string, slots []string) (value, slot string, ok bool) {
	for _, s := range slots {
		if v, present := d.cache.Get(prefix + s); present {
			return v, s, true
		}
	}
	return "", "", false
}

// Save writes the state to the local cache immediately and (re)schedules
// the debounced remote write. Each call within the settle window cancels
// the previous timer, so a burst of mutations produces exactly one remote
// write carrying the final state.
func (d *DualTier) Save(ctx context.Context, userID uuid.UUID, st *types.State) {
	_ = ctx // local writes are synchronous and best-effort; the remote write runs on its own deadline
	d.writeLocal(userID, st)

	snapshot := st.Clone()
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.pendingUser = userID
	d.pending = snapshot
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.settle, d.flushRemote)
}

// writeLocal persists all four slices synchronously. Failures are swallowed
// by the cache: the local tier is advisory.
func (d *DualTier) writeLocal(userID uuid.UUID, st *types.State) {
	prefix := keyPrefix(userID)
	d.writeSlot(prefix+slotTracked, st.TrackedJobs)
	d.writeSlot(prefix+slotResumes, st.CustomizedResumes)
	d.writeSlot(prefix+slotContacts, st.JobContacts)
	d.writeSlot(prefix+slotDrafts, st.ContactDrafts)
}

func (d *DualTier) writeSlot(key string, slice any) {
	payload, err := json.Marshal(slice)
	if err != nil {
		d.logger.Warn("local write dropped", "key", key, "error", err)
		return
	}
	d.cache.Set(key, string(payload))
}

// flushRemote runs when the settle window elapses without another save.
// Remote failures are swallowed: the cache already holds the latest state
// and the next save cycle reconciles.
func (d *DualTier) flushRemote() {
	d.mu.Lock()
	userID := d.pendingUser
	st := d.pending
	d.pending = nil
	d.timer = nil
	closed := d.closed
	d.mu.Unlock()

	if closed || st == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), remoteWriteTimeout)
	defer cancel()
	if err := d.remote.PutState(ctx, userID, st); err != nil {
		d.logger.Warn("remote write dropped", "user", userID, "error", err)
	}
}

// Flush commits any pending remote write immediately instead of waiting
// for the settle window. One-shot CLI commands call this before teardown;
// an interactive session never needs it.
func (d *DualTier) Flush(ctx context.Context) {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	userID := d.pendingUser
	st := d.pending
	d.pending = nil
	closed := d.closed
	d.mu.Unlock()

	if closed || st == nil {
		return
	}
	if err := d.remote.PutState(ctx, userID, st); err != nil {
		d.logger.Warn("remote write dropped on flush", "user", userID, "error", err)
	}
}

// Close cancels any pending remote write. Called at sign-out so a stale
// timer never writes into a different user's namespace.
func (d *DualTier) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}

func keyPrefix(userID uuid.UUID) string {
	return "trackflow:" + userID.String() + ":"
}
