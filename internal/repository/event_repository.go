// This file defines the EventRepo for claim event rows. Events follow
// the same ownership rules as insurance policies: created for an
// existing policyholder, removed with them on cascade.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pojisteni/insurance-agency/internal/model"
)

// EventRepo encapsulates all database queries related to claim events.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo constructs an EventRepo with the provided DB handle.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

const eventColumns = "id, policyholder_id, title, contract_no, event_date, `desc`, attach1, attach2, created, updated"

func scanEvent(row interface{ Scan(...any) error }, e *model.Event) error {
	return row.Scan(&e.ID, &e.PolicyHolderID, &e.Title, &e.ContractNo,
		&e.EventDate, &e.Desc, &e.Attach1, &e.Attach2, &e.Created, &e.Updated)
}

// Create inserts a new claim event inside a transaction and populates
// ID, Created and Updated. A foreign key failure maps to
// ErrPolicyHolderNotFound.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	const qInsert = "INSERT INTO events (policyholder_id, title, contract_no, event_date, `desc`, attach1, attach2) VALUES (?,?,?,?,?,?,?)"
	res, err := tx.ExecContext(ctx, qInsert,
		e.PolicyHolderID, e.Title, e.ContractNo, e.EventDate, e.Desc, e.Attach1, e.Attach2)
	if err != nil {
		if isFKViolation(err) {
			err = ErrPolicyHolderNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)

	err = tx.QueryRowContext(ctx,
		"SELECT created, updated FROM events WHERE id = ?", e.ID).
		Scan(&e.Created, &e.Updated)
	return err
}

// GetByID fetches an event by its ID, returning ErrEventNotFound when
// the id does not exist.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	const q = "SELECT " + eventColumns + " FROM events WHERE id = ?"
	var e model.Event
	if err := scanEvent(r.db.QueryRowContext(ctx, q, id), &e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

// List returns one page of events in primary-key order.
func (r *EventRepo) List(ctx context.Context, limit, offset int) ([]*model.Event, error) {
	const q = "SELECT " + eventColumns + " FROM events ORDER BY id LIMIT ? OFFSET ?"
	return r.queryEvents(ctx, q, limit, offset)
}

// ListByHolder returns every event owned by the given policyholder.
func (r *EventRepo) ListByHolder(ctx context.Context, holderID uint64) ([]*model.Event, error) {
	const q = "SELECT " + eventColumns + " FROM events WHERE policyholder_id = ? ORDER BY id"
	return r.queryEvents(ctx, q, holderID)
}

func (r *EventRepo) queryEvents(ctx context.Context, q string, args ...any) ([]*model.Event, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Event
	for rows.Next() {
		e := new(model.Event)
		if err := scanEvent(rows, e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the total number of events.
func (r *EventRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&n)
	return n, err
}

// CountByHolder returns how many events reference the given
// policyholder. Used by the delete confirmation preview.
func (r *EventRepo) CountByHolder(ctx context.Context, holderID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM events WHERE policyholder_id = ?", holderID).Scan(&n)
	return n, err
}

// Update persists the writable fields of an existing event and bumps
// the updated timestamp.
func (r *EventRepo) Update(ctx context.Context, e *model.Event) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	const q = "UPDATE events SET title = ?, contract_no = ?, event_date = ?, `desc` = ?, attach1 = ?, attach2 = ?, updated = CURRENT_TIMESTAMP WHERE id = ?"
	if _, err = tx.ExecContext(ctx, q,
		e.Title, e.ContractNo, e.EventDate, e.Desc, e.Attach1, e.Attach2, e.ID); err != nil {
		return err
	}
	err = tx.QueryRowContext(ctx,
		"SELECT updated FROM events WHERE id = ?", e.ID).Scan(&e.Updated)
	return err
}

// Delete removes a single event independently of its policyholder.
// Returns ErrEventNotFound when no row was deleted.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEventNotFound
	}
	return nil
}
