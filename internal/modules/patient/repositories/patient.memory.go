package repositories

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"

	"soins-suite-services/internal/modules/patient/dto"
)

// MemoryPatientRepository stockage en mémoire (développement et tests)
type MemoryPatientRepository struct {
	mu       sync.RWMutex
	patients map[string]dto.Patient
	keys     []string
}

func NewMemoryPatientRepository() *MemoryPatientRepository {
	return &MemoryPatientRepository{
		patients: make(map[string]dto.Patient),
	}
}

func (r *MemoryPatientRepository) FindByID(_ context.Context, patientID string) (*dto.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	patient, ok := r.patients[patientID]
	if !ok {
		return nil, ErrNotFound
	}
	return &patient, nil
}

func (r *MemoryPatientRepository) FindByIDsIn(_ context.Context, patientIDs []string) ([]dto.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	patients := []dto.Patient{}
	for _, key := range r.keys {
		if slices.Contains(patientIDs, key) {
			patients = append(patients, r.patients[key])
		}
	}
	return patients, nil
}

func (r *MemoryPatientRepository) FindAll(_ context.Context) ([]dto.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	patients := make([]dto.Patient, 0, len(r.keys))
	for _, key := range r.keys {
		patients = append(patients, r.patients[key])
	}
	return patients, nil
}

func (r *MemoryPatientRepository) Insert(_ context.Context, patient *dto.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.patients[patient.PatientID]; exists {
		return ErrAlreadyExists
	}
	r.keys = append(r.keys, patient.PatientID)
	r.patients[patient.PatientID] = *patient
	return nil
}

func (r *MemoryPatientRepository) Save(_ context.Context, patient *dto.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.patients[patient.PatientID]; !exists {
		r.keys = append(r.keys, patient.PatientID)
	}
	r.patients[patient.PatientID] = *patient
	return nil
}

func (r *MemoryPatientRepository) DeleteByID(_ context.Context, patientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.patients[patientID]; !exists {
		return ErrNotFound
	}
	delete(r.patients, patientID)
	r.keys = slices.DeleteFunc(r.keys, func(key string) bool { return key == patientID })
	return nil
}

func (r *MemoryPatientRepository) MaxSequence(_ context.Context, prefix string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sequence int64
	for _, key := range r.keys {
		suffix, found := strings.CutPrefix(key, prefix)
		if !found {
			continue
		}
		if n, err := strconv.ParseInt(suffix, 10, 64); err == nil && n > sequence {
			sequence = n
		}
	}
	return sequence, nil
}
