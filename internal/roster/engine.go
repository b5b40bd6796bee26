package roster

import (
	"context"
	"errors"
	"fmt"

	"github.com/nlekkerman/hotelmate-roster/backend/internal/domain"
)

// Collection selects which half of a draft set an operation applies to.
type Collection string

const (
	CollectionDrafts Collection = "drafts"
	CollectionCopied Collection = "copied"
)

var ErrEmptyCollection = errors.New("no pending shifts in the selected collection")

// SelfConflictError blocks a publish outright: the batch overlaps with
// itself or with the other locally pending collection. Both sides are
// editable here, so the overlap must be resolved before anything is sent.
type SelfConflictError struct {
	Conflicts []Conflict
}

func (e *SelfConflictError) Error() string {
	return fmt.Sprintf("cannot publish roster: %d overlap(s) among pending shifts, resolve them first", len(e.Conflicts))
}

// CrossConflictError is a soft failure: the batch overlaps already-published
// shifts and the caller must confirm explicitly before publishing over them.
type CrossConflictError struct {
	Conflicts []Conflict
}

func (e *CrossConflictError) Error() string {
	return fmt.Sprintf("%d overlap(s) against published shifts, confirmation required", len(e.Conflicts))
}

// BulkSaveRejectedError carries the per-item backend errors of a partially
// rejected bulk save. The draft set is left untouched when it occurs.
type BulkSaveRejectedError struct {
	Result *domain.BulkSaveResult
}

func (e *BulkSaveRejectedError) Error() string {
	return fmt.Sprintf("bulk save rejected %d shift(s)", len(e.Result.Errors))
}

// Store persists draft sets durably, keyed by (hotel, period).
type Store interface {
	Load(ctx context.Context, hotel string, periodID int64) (*domain.DraftSet, error)
	Save(ctx context.Context, set *domain.DraftSet) error
	Clear(ctx context.Context, hotel string, periodID int64) error
}

// Publisher sends one pending batch upstream as a single bulk request.
type Publisher interface {
	BulkSaveShifts(ctx context.Context, hotel string, periodID int64, shifts []domain.Shift) (*domain.BulkSaveResult, error)
}

// Engine reconciles locally held draft shifts with the published roster.
type Engine struct {
	store     Store
	publisher Publisher
}

func NewEngine(store Store, publisher Publisher) *Engine {
	return &Engine{
		store:     store,
		publisher: publisher,
	}
}

func (e *Engine) Load(ctx context.Context, hotel string, periodID int64) (*domain.DraftSet, error) {
	return e.store.Load(ctx, hotel, periodID)
}

// UpsertDraft inserts the shift into the draft set, replacing any existing
// entry with the same id in either collection, and persists the set.
func (e *Engine) UpsertDraft(ctx context.Context, set *domain.DraftSet, shift domain.Shift) error {
	removeByID(set, shift.ID)
	if shift.IsCopiedDraft {
		set.CopiedDrafts = append(set.CopiedDrafts, shift)
	} else {
		set.Drafts = append(set.Drafts, shift)
	}
	return e.store.Save(ctx, set)
}

// RemoveDraft deletes the shift with the given id from whichever collection
// holds it. It reports whether anything was removed.
func (e *Engine) RemoveDraft(ctx context.Context, set *domain.DraftSet, id string) (bool, error) {
	if !removeByID(set, id) {
		return false, nil
	}
	if set.IsEmpty() {
		return true, e.store.Clear(ctx, set.Hotel, set.PeriodID)
	}
	return true, e.store.Save(ctx, set)
}

// AddCopiedDrafts appends the output of a copy planner to the copied-draft
// collection and persists the set.
func (e *Engine) AddCopiedDrafts(ctx context.Context, set *domain.DraftSet, shifts []domain.Shift) error {
	for _, s := range shifts {
		removeByID(set, s.ID)
		set.CopiedDrafts = append(set.CopiedDrafts, s)
	}
	return e.store.Save(ctx, set)
}

// ClearDrafts drops the whole draft set and its persisted copy.
func (e *Engine) ClearDrafts(ctx context.Context, set *domain.DraftSet) error {
	set.Drafts = nil
	set.CopiedDrafts = nil
	return e.store.Clear(ctx, set.Hotel, set.PeriodID)
}

func removeByID(set *domain.DraftSet, id string) bool {
	removed := false
	filter := func(shifts []domain.Shift) []domain.Shift {
		out := shifts[:0]
		for _, s := range shifts {
			if s.ID == id {
				removed = true
				continue
			}
			out = append(out, s)
		}
		return out
	}
	set.Drafts = filter(set.Drafts)
	set.CopiedDrafts = filter(set.CopiedDrafts)
	return removed
}

func (e *Engine) collection(set *domain.DraftSet, c Collection) []domain.Shift {
	if c == CollectionCopied {
		return set.CopiedDrafts
	}
	return set.Drafts
}

// Publish sends the selected collection upstream as one bulk-save batch.
//
// Preconditions: the collection must be non-empty and free of overlaps both
// internally and against the other pending collection, since every pending
// shift is still editable locally. Overlaps against serverShifts are
// tolerated only when confirmed is set (the caller has obtained explicit
// confirmation to overwrite).
//
// On success the collection is removed from the draft set and the persisted
// copy is updated (or cleared when the set becomes empty). On any failure,
// including per-item rejections, the draft set is left exactly as it was so
// no pending work is lost.
func (e *Engine) Publish(ctx context.Context, set *domain.DraftSet, c Collection, serverShifts []domain.Shift, confirmed bool) (*domain.BulkSaveResult, error) {
	batch := e.collection(set, c)
	if len(batch) == 0 {
		return nil, ErrEmptyCollection
	}

	if conflicts := DetectConflicts(batch); len(conflicts) > 0 {
		return nil, &SelfConflictError{Conflicts: conflicts}
	}

	other := set.CopiedDrafts
	if c == CollectionCopied {
		other = set.Drafts
	}
	if conflicts := DetectCrossConflicts(batch, other); len(conflicts) > 0 {
		return nil, &SelfConflictError{Conflicts: conflicts}
	}

	if conflicts := DetectCrossConflicts(batch, serverShifts); len(conflicts) > 0 && !confirmed {
		return nil, &CrossConflictError{Conflicts: conflicts}
	}

	result, err := e.publisher.BulkSaveShifts(ctx, set.Hotel, set.PeriodID, batch)
	if err != nil {
		return nil, err
	}
	if len(result.Errors) > 0 {
		return result, &BulkSaveRejectedError{Result: result}
	}

	if c == CollectionCopied {
		set.CopiedDrafts = nil
	} else {
		set.Drafts = nil
	}

	if set.IsEmpty() {
		if err := e.store.Clear(ctx, set.Hotel, set.PeriodID); err != nil {
			return result, err
		}
	} else {
		if err := e.store.Save(ctx, set); err != nil {
			return result, err
		}
	}

	return result, nil
}
