package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cesizen/api/internal/database"
	"cesizen/api/internal/models"
)

var (
	ErrAlreadyLinked    = errors.New("patient already followed")
	ErrPatientNotLinked = errors.New("patient not linked to practitioner")
)

type PractitionerRepository struct {
	pool *pgxpool.Pool
}

func NewPractitionerRepository(pool *pgxpool.Pool) *PractitionerRepository {
	return &PractitionerRepository{pool: pool}
}

func (r *PractitionerRepository) Patients(ctx context.Context, practitionerID string) ([]models.Patient, error) {
	const query = `
		SELECT u.id, u.first_name, u.last_name, u.email, pp.created_at AS patient_since
		FROM users u
		JOIN practitioner_patients pp ON pp.patient_id = u.id
		WHERE pp.practitioner_id = $1
		ORDER BY u.last_name, u.first_name
	`

	rows, err := r.pool.Query(ctx, query, practitionerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patients []models.Patient
	for rows.Next() {
		var p models.Patient
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.PatientSince); err != nil {
			return nil, err
		}
		patients = append(patients, p)
	}
	return patients, rows.Err()
}

func (r *PractitionerRepository) Link(ctx context.Context, practitionerID, patientID string) error {
	return database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (
				SELECT 1 FROM practitioner_patients
				WHERE practitioner_id = $1 AND patient_id = $2
			)`, practitionerID, patientID).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return ErrAlreadyLinked
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO practitioner_patients (practitioner_id, patient_id) VALUES ($1, $2)`,
			practitionerID, patientID)
		return err
	})
}

func (r *PractitionerRepository) Notes(ctx context.Context, practitionerID, patientID string) ([]models.FollowUpNote, error) {
	const query = `
		SELECT fn.id, fn.practitioner_id, fn.patient_id, fn.content, fn.category,
		       fn.created_at, fn.updated_at
		FROM follow_up_notes fn
		JOIN practitioner_patients pp
			ON pp.patient_id = fn.patient_id
			AND pp.practitioner_id = fn.practitioner_id
		WHERE fn.practitioner_id = $1 AND fn.patient_id = $2
		ORDER BY fn.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, practitionerID, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []models.FollowUpNote
	for rows.Next() {
		var n models.FollowUpNote
		if err := rows.Scan(
			&n.ID,
			&n.PractitionerID,
			&n.PatientID,
			&n.Content,
			&n.Category,
			&n.CreatedAt,
			&n.UpdatedAt,
		); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *PractitionerRepository) CreateNote(ctx context.Context, note *models.FollowUpNote) error {
	return database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var linked bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (
				SELECT 1 FROM practitioner_patients
				WHERE practitioner_id = $1 AND patient_id = $2
			)`, note.PractitionerID, note.PatientID).Scan(&linked); err != nil {
			return err
		}
		if !linked {
			return ErrPatientNotLinked
		}

		const query = `
			INSERT INTO follow_up_notes (id, practitioner_id, patient_id, content, category, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			RETURNING created_at, updated_at
		`
		return tx.QueryRow(ctx, query,
			note.ID,
			note.PractitionerID,
			note.PatientID,
			note.Content,
			note.Category,
		).Scan(&note.CreatedAt, &note.UpdatedAt)
	})
}
