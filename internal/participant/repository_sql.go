package participant

import (
	"context"
	"database/sql"
	"errors"

	"github.com/wichananm65/participant-registry/internal/infrastructure/database"
)

// SQLRepository stores participants in the `participants` table.
// Table layout expected:
//
//	participant_id  integer primary key, auto increment
//	email           text
//	first_name      text
//	last_name       text
//	phone           text
//	registration    text
type SQLRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

const (
	listParticipantsQuery = `
		SELECT participant_id, email, first_name, last_name, phone, registration
		FROM participants
	`
	getParticipantByIDQuery = `
		SELECT participant_id, email, first_name, last_name, phone, registration
		FROM participants
		WHERE participant_id = ?
	`
	insertParticipantQuery = `
		INSERT INTO participants (email, first_name, last_name, phone, registration)
		VALUES (?, ?, ?, ?, ?)
	`
	updateParticipantQuery = `
		UPDATE participants
		SET email = ?, first_name = ?, last_name = ?, phone = ?, registration = ?
		WHERE participant_id = ?
	`
	deleteParticipantQuery = `DELETE FROM participants WHERE participant_id = ?`
)

func NewSQLRepository(db *sql.DB, dialect database.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

type scanner interface {
	Scan(dest ...any) error
}

// scanParticipant tolerates NULL text columns and reads them as "".
func scanParticipant(s scanner) (Participant, error) {
	var (
		p                                      Participant
		email, firstName, lastName, phone, reg sql.NullString
	)
	if err := s.Scan(&p.ID, &email, &firstName, &lastName, &phone, &reg); err != nil {
		return Participant{}, err
	}
	p.Email = email.String
	p.FirstName = firstName.String
	p.LastName = lastName.String
	p.Phone = phone.String
	p.Registration = reg.String
	return p, nil
}

func (r *SQLRepository) List(ctx context.Context) ([]Participant, error) {
	rows, err := r.db.QueryContext(ctx, listParticipantsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Participant, 0)
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (Participant, bool, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(getParticipantByIDQuery), id)
	p, err := scanParticipant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Participant{}, false, nil
		}
		return Participant{}, false, err
	}
	return p, true, nil
}

func (r *SQLRepository) Create(ctx context.Context, p Participant) (int64, error) {
	args := []any{p.Email, p.FirstName, p.LastName, p.Phone, p.Registration}

	if r.dialect.UsesReturning() {
		var id int64
		q := r.dialect.Rebind(insertParticipantQuery + " RETURNING participant_id")
		if err := r.db.QueryRowContext(ctx, q, args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(insertParticipantQuery), args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update does not check RowsAffected: updating a missing id succeeds.
func (r *SQLRepository) Update(ctx context.Context, id int64, p Participant) error {
	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(updateParticipantQuery),
		p.Email, p.FirstName, p.LastName, p.Phone, p.Registration, id)
	return err
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(deleteParticipantQuery), id)
	return err
}
