package repositories

import (
	"context"
	"errors"

	"soins-suite-services/internal/modules/patient/dto"
)

var (
	// ErrNotFound patient absent du stockage
	ErrNotFound = errors.New("patient introuvable")
	// ErrAlreadyExists identifiant déjà attribué à un autre patient
	ErrAlreadyExists = errors.New("identifiant patient déjà utilisé")
)

// PatientRepository accès au stockage des patients
type PatientRepository interface {
	FindByID(ctx context.Context, patientID string) (*dto.Patient, error)
	// FindByIDsIn ignore silencieusement les identifiants inconnus
	FindByIDsIn(ctx context.Context, patientIDs []string) ([]dto.Patient, error)
	FindAll(ctx context.Context) ([]dto.Patient, error)
	// Insert n'écrase jamais un patient existant (ErrAlreadyExists)
	Insert(ctx context.Context, patient *dto.Patient) error
	Save(ctx context.Context, patient *dto.Patient) error
	DeleteByID(ctx context.Context, patientID string) error
	// MaxSequence plus grand suffixe numérique des identifiants commençant par prefix (0 si aucun)
	MaxSequence(ctx context.Context, prefix string) (int64, error)
}
