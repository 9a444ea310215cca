package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"soins-suite-services/internal/infrastructure/database/postgres"
	"soins-suite-services/internal/modules/patient/dto"
	"soins-suite-services/internal/modules/patient/queries"
	"soins-suite-services/internal/shared/utils"
)

type PostgresPatientRepository struct {
	db *postgres.Client
}

func NewPostgresPatientRepository(db *postgres.Client) *PostgresPatientRepository {
	return &PostgresPatientRepository{db: db}
}

func (r *PostgresPatientRepository) FindByID(ctx context.Context, patientID string) (*dto.Patient, error) {
	patient, err := scanPatient(r.db.QueryRow(ctx, queries.PatientQueries.GetByID, patientID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lecture patient %s échouée: %w", patientID, err)
	}
	return patient, nil
}

func (r *PostgresPatientRepository) FindByIDsIn(ctx context.Context, patientIDs []string) ([]dto.Patient, error) {
	if len(patientIDs) == 0 {
		return []dto.Patient{}, nil
	}
	return r.list(ctx, queries.PatientQueries.ListByIDs, patientIDs)
}

func (r *PostgresPatientRepository) FindAll(ctx context.Context) ([]dto.Patient, error) {
	return r.list(ctx, queries.PatientQueries.ListAll)
}

func (r *PostgresPatientRepository) Insert(ctx context.Context, patient *dto.Patient) error {
	tag, err := r.db.Exec(ctx, queries.PatientQueries.Insert,
		patient.PatientID,
		patient.FirstName,
		patient.LastName,
		postgres.DateParam(patient.CreateDateTimeGmt.Time),
		postgres.DateParam(patient.UpdateDateTimeGmt.Time),
		string(patient.PatientState),
	)
	if err != nil {
		return fmt.Errorf("insertion patient %s échouée: %w", patient.PatientID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (r *PostgresPatientRepository) Save(ctx context.Context, patient *dto.Patient) error {
	_, err := r.db.Exec(ctx, queries.PatientQueries.Upsert,
		patient.PatientID,
		patient.FirstName,
		patient.LastName,
		postgres.DateParam(patient.CreateDateTimeGmt.Time),
		postgres.DateParam(patient.UpdateDateTimeGmt.Time),
		string(patient.PatientState),
	)
	if err != nil {
		return fmt.Errorf("enregistrement patient %s échoué: %w", patient.PatientID, err)
	}
	return nil
}

func (r *PostgresPatientRepository) DeleteByID(ctx context.Context, patientID string) error {
	tag, err := r.db.Exec(ctx, queries.PatientQueries.Delete, patientID)
	if err != nil {
		return fmt.Errorf("suppression patient %s échouée: %w", patientID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresPatientRepository) MaxSequence(ctx context.Context, prefix string) (int64, error) {
	var sequence int64
	if err := r.db.QueryRow(ctx, queries.PatientQueries.MaxSequence, prefix).Scan(&sequence); err != nil {
		return 0, fmt.Errorf("lecture séquence %s échouée: %w", prefix, err)
	}
	return sequence, nil
}

func (r *PostgresPatientRepository) list(ctx context.Context, sql string, args ...interface{}) ([]dto.Patient, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("recherche patients échouée: %w", err)
	}
	defer rows.Close()

	patients := []dto.Patient{}
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("lecture ligne patient échouée: %w", err)
		}
		patients = append(patients, *patient)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("parcours patients échoué: %w", err)
	}
	return patients, nil
}

func scanPatient(row pgx.Row) (*dto.Patient, error) {
	var (
		patient              dto.Patient
		firstName, lastName  pgtype.Text
		state                pgtype.Text
		createdAt, updatedAt pgtype.Date
	)

	if err := row.Scan(&patient.PatientID, &firstName, &lastName, &createdAt, &updatedAt, &state); err != nil {
		return nil, err
	}

	patient.FirstName = firstName.String
	patient.LastName = lastName.String
	patient.PatientState = dto.PatientState(state.String)
	patient.CreateDateTimeGmt = utils.NewLocalDate(postgres.DateValue(createdAt))
	patient.UpdateDateTimeGmt = utils.NewLocalDate(postgres.DateValue(updatedAt))
	return &patient, nil
}
