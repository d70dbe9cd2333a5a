// This file defines the PolicyHolderRepo with CRUD and listing
// operations for policyholders. A policyholder is the root entity of
// the system: insurance policies and claim events belong to exactly
// one policyholder, so deleting one must cascade over the dependent
// rows inside a single transaction.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pojisteni/insurance-agency/internal/model"
)

// PolicyHolderRepo encapsulates all database queries related to
// policyholders. It depends on a sql.DB connection configured at
// startup.
type PolicyHolderRepo struct {
	db *sql.DB
}

// NewPolicyHolderRepo constructs a PolicyHolderRepo with the provided
// DB handle.
func NewPolicyHolderRepo(db *sql.DB) *PolicyHolderRepo {
	return &PolicyHolderRepo{db: db}
}

const policyHolderColumns = `id, name, lastname, birth_id, cell_phone_no, email,
	street, street_no, city, country, zip_code, photo, created, updated`

func scanPolicyHolder(row interface{ Scan(...any) error }, p *model.PolicyHolder) error {
	return row.Scan(&p.ID, &p.Name, &p.Lastname, &p.BirthID, &p.CellPhoneNo, &p.Email,
		&p.Street, &p.StreetNo, &p.City, &p.Country, &p.ZipCode, &p.Photo,
		&p.Created, &p.Updated)
}

// Create inserts a new policyholder inside a transaction. On success
// the ID, Created and Updated fields are populated from the database.
// A birth_id collision returns ErrBirthIDExists and nothing is
// written.
func (r *PolicyHolderRepo) Create(ctx context.Context, p *model.PolicyHolder) error {
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

	const qInsert = `INSERT INTO policyholders
		(name, lastname, birth_id, cell_phone_no, email, street, street_no, city, country, zip_code, photo)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`
	res, err := tx.ExecContext(ctx, qInsert,
		p.Name, p.Lastname, p.BirthID, p.CellPhoneNo, p.Email,
		p.Street, p.StreetNo, p.City, p.Country, p.ZipCode, p.Photo)
	if err != nil {
		if isDuplicate(err) {
			err = ErrBirthIDExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)

	// Follow-up SELECT to populate the default timestamp columns.
	err = tx.QueryRowContext(ctx,
		"SELECT created, updated FROM policyholders WHERE id = ?", p.ID).
		Scan(&p.Created, &p.Updated)
	return err
}

// GetByID fetches a policyholder by its ID. It returns
// ErrPolicyHolderNotFound if no row is found.
func (r *PolicyHolderRepo) GetByID(ctx context.Context, id uint64) (*model.PolicyHolder, error) {
	const q = "SELECT " + policyHolderColumns + " FROM policyholders WHERE id = ?"
	var p model.PolicyHolder
	if err := scanPolicyHolder(r.db.QueryRowContext(ctx, q, id), &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPolicyHolderNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns one page of policyholders in primary-key order.
func (r *PolicyHolderRepo) List(ctx context.Context, limit, offset int) ([]*model.PolicyHolder, error) {
	const q = "SELECT " + policyHolderColumns + " FROM policyholders ORDER BY id LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.PolicyHolder
	for rows.Next() {
		p := new(model.PolicyHolder)
		if err := scanPolicyHolder(rows, p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the total number of policyholders.
func (r *PolicyHolderRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM policyholders").Scan(&n)
	return n, err
}

// Update persists the writable fields of an existing policyholder and
// bumps the updated timestamp. Callers load the record first, so a
// missing row surfaces as ErrPolicyHolderNotFound at read time; here a
// birth_id collision with another record returns ErrBirthIDExists.
func (r *PolicyHolderRepo) Update(ctx context.Context, p *model.PolicyHolder) error {
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

	const q = `UPDATE policyholders
		SET name = ?, lastname = ?, birth_id = ?, cell_phone_no = ?, email = ?,
		    street = ?, street_no = ?, city = ?, country = ?, zip_code = ?, photo = ?,
		    updated = CURRENT_TIMESTAMP
		WHERE id = ?`
	_, err = tx.ExecContext(ctx, q,
		p.Name, p.Lastname, p.BirthID, p.CellPhoneNo, p.Email,
		p.Street, p.StreetNo, p.City, p.Country, p.ZipCode, p.Photo, p.ID)
	if err != nil {
		if isDuplicate(err) {
			err = ErrBirthIDExists
		}
		return err
	}
	err = tx.QueryRowContext(ctx,
		"SELECT updated FROM policyholders WHERE id = ?", p.ID).Scan(&p.Updated)
	return err
}

// Delete removes a policyholder and all dependent insurance policies
// and claim events. The child rows are deleted before the parent and
// the whole cascade runs in one transaction so that a failure leaves
// the store untouched. Returns ErrPolicyHolderNotFound when the id
// does not exist.
func (r *PolicyHolderRepo) Delete(ctx context.Context, id uint64) error {
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

	var exists uint64
	if err = tx.QueryRowContext(ctx,
		"SELECT id FROM policyholders WHERE id = ?", id).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrPolicyHolderNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx,
		"DELETE FROM events WHERE policyholder_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		"DELETE FROM insurance_policies WHERE policyholder_id = ?", id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, "DELETE FROM policyholders WHERE id = ?", id)
	return err
}
