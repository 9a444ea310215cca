package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"soins-suite-services/internal/modules/patient/dto"
	"soins-suite-services/internal/modules/patient/repositories"
	"soins-suite-services/internal/shared/utils"
)

const (
	errCodePatientNotFound    = "PATIENT_NOT_FOUND"
	errCodePatientIDsRequired = "PATIENT_IDS_REQUIRED"
	errCodeIDUnavailable      = "PATIENT_ID_UNAVAILABLE"
	errCodeOrderUnavailable   = "ORDER_SERVICE_UNAVAILABLE"
	errCodeIDConflict         = "PATIENT_ID_CONFLICT"

	maxCreateAttempts = 3
)

// IDGenerator fournit les identifiants des nouveaux patients
type IDGenerator interface {
	Generate(ctx context.Context) (string, error)
	// Resync repart de la plus grande séquence persistée après une collision
	Resync(ctx context.Context) error
}

// OrderFetcher recherche des commandes auprès du service commande
type OrderFetcher interface {
	FindOrders(ctx context.Context, patientIDs []string, state string) ([]dto.Order, error)
}

type PatientService struct {
	repo   repositories.PatientRepository
	ids    IDGenerator
	orders OrderFetcher
	logger *slog.Logger
}

func NewPatientService(
	repo repositories.PatientRepository,
	ids IDGenerator,
	orders OrderFetcher,
	logger *slog.Logger,
) *PatientService {
	return &PatientService{
		repo:   repo,
		ids:    ids,
		orders: orders,
		logger: logger,
	}
}

// CreatePatient l'identifiant est toujours généré, celui de la requête est ignoré
func (s *PatientService) CreatePatient(ctx context.Context, req dto.PatientRequest) (*dto.Patient, error) {
	patient := &dto.Patient{}
	req.ApplyTo(patient)

	if patient.CreateDateTimeGmt.IsZero() {
		patient.CreateDateTimeGmt = utils.Today()
	}
	if patient.UpdateDateTimeGmt.IsZero() {
		patient.UpdateDateTimeGmt = utils.Today()
	}

	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		patientID, err := s.ids.Generate(ctx)
		if err != nil {
			return nil, utils.NewUnavailableError(errCodeIDUnavailable, "Génération de l'identifiant patient impossible", err)
		}
		patient.PatientID = patientID

		err = s.repo.Insert(ctx, patient)
		if err == nil {
			s.logger.Info("patient créé", "patient_id", patient.PatientID)
			return patient, nil
		}
		if !errors.Is(err, repositories.ErrAlreadyExists) {
			return nil, utils.NewInternalError("Erreur lors de la création du patient", err)
		}

		s.logger.Warn("identifiant patient déjà attribué, resynchronisation du compteur",
			"patient_id", patientID, "tentative", attempt)
		if err := s.ids.Resync(ctx); err != nil {
			return nil, utils.NewUnavailableError(errCodeIDUnavailable, "Génération de l'identifiant patient impossible", err)
		}
	}

	return nil, utils.NewConflictError(errCodeIDConflict, "Aucun identifiant patient libre après resynchronisation")
}

// UpdatePatient applique les champs renseignés; updateDateTimeGmt vaut aujourd'hui par défaut
func (s *PatientService) UpdatePatient(ctx context.Context, patientID string, req dto.PatientRequest) (*dto.Patient, error) {
	patient, err := s.repo.FindByID(ctx, patientID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, patientNotFound(patientID)
	}
	if err != nil {
		return nil, utils.NewInternalError("Erreur lors de la lecture du patient", err)
	}

	req.ApplyTo(patient)
	if req.UpdateDateTimeGmt == nil {
		patient.UpdateDateTimeGmt = utils.Today()
	}

	if err := s.repo.Save(ctx, patient); err != nil {
		return nil, utils.NewInternalError("Erreur lors de la mise à jour du patient", err)
	}
	return patient, nil
}

// DeactivatePatient supprime définitivement le patient
func (s *PatientService) DeactivatePatient(ctx context.Context, patientID string) error {
	err := s.repo.DeleteByID(ctx, patientID)
	if errors.Is(err, repositories.ErrNotFound) {
		return patientNotFound(patientID)
	}
	if err != nil {
		return utils.NewInternalError("Erreur lors de la désactivation du patient", err)
	}

	s.logger.Info("patient désactivé", "patient_id", patientID)
	return nil
}

func (s *PatientService) ListPatients(ctx context.Context) ([]dto.Patient, error) {
	patients, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, utils.NewInternalError("Erreur lors de la lecture des patients", err)
	}
	return patients, nil
}

// GetPatientsWithActiveOrders associe à chaque patient connu ses commandes ACTIVE.
// Les patients sans commande active ou inconnus localement sont omis.
func (s *PatientService) GetPatientsWithActiveOrders(ctx context.Context, wrapper dto.PatientIdWrapper) (map[string]dto.PatientWithOrders, error) {
	patientIDs := uniqueIDs(wrapper.PatientIDs)
	if len(patientIDs) == 0 {
		return nil, utils.NewValidationError(errCodePatientIDsRequired, "Au moins un identifiant patient est requis")
	}

	orders, err := s.orders.FindOrders(ctx, patientIDs, string(dto.PatientStateActive))
	if err != nil {
		s.logger.Warn("service commande indisponible", "error", err)
		return nil, utils.NewUnavailableError(errCodeOrderUnavailable, "Service commande indisponible", err)
	}

	ordersByPatient := make(map[string][]dto.Order)
	for _, order := range orders {
		ordersByPatient[order.PatientID] = append(ordersByPatient[order.PatientID], order)
	}

	patients, err := s.repo.FindByIDsIn(ctx, patientIDs)
	if err != nil {
		return nil, utils.NewInternalError("Erreur lors de la lecture des patients", err)
	}

	result := make(map[string]dto.PatientWithOrders)
	for _, patient := range patients {
		patientOrders := ordersByPatient[patient.PatientID]
		if len(patientOrders) == 0 {
			continue
		}
		result[patient.PatientID] = dto.PatientWithOrders{
			Patient: patient,
			Orders:  patientOrders,
		}
	}
	return result, nil
}

// uniqueIDs dédoublonne en conservant l'ordre; les identifiants vides sont écartés
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

func patientNotFound(patientID string) error {
	return utils.NewNotFoundError(errCodePatientNotFound, fmt.Sprintf("Patient %s introuvable", patientID))
}
