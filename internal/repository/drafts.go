package repository

import (
	"context"
	"encoding/json"

	"github.com/nlekkerman/hotelmate-roster/backend/internal/domain"
)

// Load returns the persisted draft set for (hotel, period). A missing entry
// yields an empty set, not an error.
func (r *Repository) Load(ctx context.Context, hotel string, periodID int64) (*domain.DraftSet, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT is_copied, payload FROM draft_shifts WHERE hotel = ? AND period_id = ? ORDER BY rowid`,
		hotel, periodID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := &domain.DraftSet{
		Hotel:        hotel,
		PeriodID:     periodID,
		Drafts:       []domain.Shift{},
		CopiedDrafts: []domain.Shift{},
	}

	for rows.Next() {
		var isCopied bool
		var payload string
		if err := rows.Scan(&isCopied, &payload); err != nil {
			return nil, err
		}

		var shift domain.Shift
		if err := json.Unmarshal([]byte(payload), &shift); err != nil {
			return nil, err
		}

		if isCopied {
			set.CopiedDrafts = append(set.CopiedDrafts, shift)
		} else {
			set.Drafts = append(set.Drafts, shift)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return set, nil
}

// Save replaces the persisted entry for the set's (hotel, period) key with
// the set's current contents, atomically.
func (r *Repository) Save(ctx context.Context, set *domain.DraftSet) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM draft_shifts WHERE hotel = ? AND period_id = ?`,
		set.Hotel, set.PeriodID,
	); err != nil {
		return err
	}

	insert := func(shifts []domain.Shift, isCopied bool) error {
		for i := range shifts {
			payload, err := json.Marshal(shifts[i])
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO draft_shifts (hotel, period_id, shift_id, is_copied, payload) VALUES (?, ?, ?, ?, ?)`,
				set.Hotel, set.PeriodID, shifts[i].ID, isCopied, string(payload),
			); err != nil {
				return err
			}
		}
		return nil
	}

	if err := insert(set.Drafts, false); err != nil {
		return err
	}
	if err := insert(set.CopiedDrafts, true); err != nil {
		return err
	}

	return tx.Commit()
}

// Clear removes the persisted entry for (hotel, period).
func (r *Repository) Clear(ctx context.Context, hotel string, periodID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM draft_shifts WHERE hotel = ? AND period_id = ?`,
		hotel, periodID,
	)
	return err
}
