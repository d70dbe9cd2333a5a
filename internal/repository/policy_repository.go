// This file defines the PolicyRepo for insurance policy rows. A policy
// is always created in the context of an existing policyholder; the
// foreign key backs up the application-level existence check so that a
// race with a concurrent policyholder delete still fails cleanly.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pojisteni/insurance-agency/internal/model"
)

// PolicyRepo encapsulates all database queries related to insurance
// policies.
type PolicyRepo struct {
	db *sql.DB
}

// NewPolicyRepo constructs a PolicyRepo with the provided DB handle.
func NewPolicyRepo(db *sql.DB) *PolicyRepo {
	return &PolicyRepo{db: db}
}

const policyColumns = `id, policyholder_id, paid_by, insurance_type, target_amount,
	valid_from, valid_to, created, updated`

func scanPolicy(row interface{ Scan(...any) error }, p *model.InsurancePolicy) error {
	return row.Scan(&p.ID, &p.PolicyHolderID, &p.PaidBy, &p.InsuranceType,
		&p.TargetAmount, &p.ValidFrom, &p.ValidTo, &p.Created, &p.Updated)
}

// Create inserts a new insurance policy inside a transaction and
// populates ID, Created and Updated. A foreign key failure (the
// policyholder vanished between the handler's check and the insert)
// maps to ErrPolicyHolderNotFound.
func (r *PolicyRepo) Create(ctx context.Context, p *model.InsurancePolicy) error {
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

	const qInsert = `INSERT INTO insurance_policies
		(policyholder_id, paid_by, insurance_type, target_amount, valid_from, valid_to)
		VALUES (?,?,?,?,?,?)`
	res, err := tx.ExecContext(ctx, qInsert,
		p.PolicyHolderID, p.PaidBy, p.InsuranceType, p.TargetAmount, p.ValidFrom, p.ValidTo)
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
	p.ID = uint64(id)

	err = tx.QueryRowContext(ctx,
		"SELECT created, updated FROM insurance_policies WHERE id = ?", p.ID).
		Scan(&p.Created, &p.Updated)
	return err
}

// GetByID fetches a policy by its ID, returning ErrPolicyNotFound when
// the id does not exist.
func (r *PolicyRepo) GetByID(ctx context.Context, id uint64) (*model.InsurancePolicy, error) {
	const q = "SELECT " + policyColumns + " FROM insurance_policies WHERE id = ?"
	var p model.InsurancePolicy
	if err := scanPolicy(r.db.QueryRowContext(ctx, q, id), &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPolicyNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns one page of policies in primary-key order.
func (r *PolicyRepo) List(ctx context.Context, limit, offset int) ([]*model.InsurancePolicy, error) {
	const q = "SELECT " + policyColumns + " FROM insurance_policies ORDER BY id LIMIT ? OFFSET ?"
	return r.queryPolicies(ctx, q, limit, offset)
}

// ListByHolder returns every policy owned by the given policyholder.
func (r *PolicyRepo) ListByHolder(ctx context.Context, holderID uint64) ([]*model.InsurancePolicy, error) {
	const q = "SELECT " + policyColumns + " FROM insurance_policies WHERE policyholder_id = ? ORDER BY id"
	return r.queryPolicies(ctx, q, holderID)
}

func (r *PolicyRepo) queryPolicies(ctx context.Context, q string, args ...any) ([]*model.InsurancePolicy, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.InsurancePolicy
	for rows.Next() {
		p := new(model.InsurancePolicy)
		if err := scanPolicy(rows, p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the total number of policies.
func (r *PolicyRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM insurance_policies").Scan(&n)
	return n, err
}

// CountByHolder returns how many policies reference the given
// policyholder. Used by the delete confirmation preview.
func (r *PolicyRepo) CountByHolder(ctx context.Context, holderID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM insurance_policies WHERE policyholder_id = ?", holderID).Scan(&n)
	return n, err
}

// Update persists the writable fields of an existing policy and bumps
// the updated timestamp.
func (r *PolicyRepo) Update(ctx context.Context, p *model.InsurancePolicy) error {
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

	const q = `UPDATE insurance_policies
		SET paid_by = ?, insurance_type = ?, target_amount = ?, valid_from = ?, valid_to = ?,
		    updated = CURRENT_TIMESTAMP
		WHERE id = ?`
	if _, err = tx.ExecContext(ctx, q,
		p.PaidBy, p.InsuranceType, p.TargetAmount, p.ValidFrom, p.ValidTo, p.ID); err != nil {
		return err
	}
	err = tx.QueryRowContext(ctx,
		"SELECT updated FROM insurance_policies WHERE id = ?", p.ID).Scan(&p.Updated)
	return err
}

// Delete removes a single policy independently of its policyholder.
// Returns ErrPolicyNotFound when no row was deleted.
func (r *PolicyRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM insurance_policies WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPolicyNotFound
	}
	return nil
}
