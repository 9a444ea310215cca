package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Pallinder/go-randomdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soins-suite-services/internal/modules/patient/dto"
	"soins-suite-services/internal/modules/patient/repositories"
	"soins-suite-services/internal/shared/utils"
)

// stubOrders renvoie des commandes figées et mémorise le dernier appel
type stubOrders struct {
	orders []dto.Order
	err    error

	calls      int
	patientIDs []string
	state      string
}

func (s *stubOrders) FindOrders(_ context.Context, patientIDs []string, state string) ([]dto.Order, error) {
	s.calls++
	s.patientIDs = patientIDs
	s.state = state
	return s.orders, s.err
}

func newPatientService(orders OrderFetcher) (*PatientService, *repositories.MemoryPatientRepository) {
	repo := repositories.NewMemoryPatientRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPatientService(repo, NewLocalPatientIDGenerator(repo), orders, logger), repo
}

func ptr[T any](v T) *T { return &v }

// requireErrorType vérifie le type de la ServiceError renvoyée
func requireErrorType(t *testing.T, err error, errorType string) {
	t.Helper()
	var serviceErr *utils.ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, errorType, serviceErr.Type)
}

func TestCreatePatient(t *testing.T) {
	service, repo := newPatientService(&stubOrders{})
	ctx := context.Background()

	firstName := randomdata.FirstName(randomdata.Female)
	lastName := randomdata.LastName()

	patient, err := service.CreatePatient(ctx, dto.PatientRequest{
		PatientID:    ptr("IGNORED"),
		FirstName:    ptr(firstName),
		LastName:     ptr(lastName),
		PatientState: ptr(dto.PatientStateActive),
	})
	require.NoError(t, err)

	assert.Regexp(t, `^PAT-\d{4}-\d{6}$`, patient.PatientID)
	assert.Equal(t, firstName+" "+lastName, patient.FullName())
	assert.Equal(t, utils.Today(), patient.CreateDateTimeGmt)
	assert.Equal(t, utils.Today(), patient.UpdateDateTimeGmt)

	stored, err := repo.FindByID(ctx, patient.PatientID)
	require.NoError(t, err)
	assert.Equal(t, *patient, *stored)
}

func TestCreatePatient_KeepsProvidedDates(t *testing.T) {
	service, _ := newPatientService(&stubOrders{})
	created, _ := utils.ParseLocalDate("2024-02-29")

	patient, err := service.CreatePatient(context.Background(), dto.PatientRequest{
		FirstName:         ptr("Ada"),
		CreateDateTimeGmt: &created,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", patient.CreateDateTimeGmt.String())
}

func TestCreatePatient_DistinctIDs(t *testing.T) {
	service, _ := newPatientService(&stubOrders{})

	first, err := service.CreatePatient(context.Background(), dto.PatientRequest{FirstName: ptr("A")})
	require.NoError(t, err)
	second, err := service.CreatePatient(context.Background(), dto.PatientRequest{FirstName: ptr("A")})
	require.NoError(t, err)

	assert.NotEqual(t, first.PatientID, second.PatientID)
}

func TestCreatePatient_CounterResetKeepsExistingPatient(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryPatientRepository()
	counter := NewLocalCounter()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewPatientService(repo, NewPatientIDGenerator(counter, repo), &stubOrders{}, logger)

	ada, err := service.CreatePatient(ctx, dto.PatientRequest{FirstName: ptr("Ada"), LastName: ptr("Lovelace")})
	require.NoError(t, err)

	// Redis redémarré sans persistance: le compteur repart de zéro
	clear(counter.values)

	eve, err := service.CreatePatient(ctx, dto.PatientRequest{FirstName: ptr("Eve"), LastName: ptr("Martin")})
	require.NoError(t, err)
	assert.NotEqual(t, ada.PatientID, eve.PatientID)

	stored, err := repo.FindByID(ctx, ada.PatientID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", stored.FullName())

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCreatePatient_TwoLocalInstances(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryPatientRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// Les deux instances initialisent leur compteur sur la même base vide
	firstIDs, secondIDs := NewLocalPatientIDGenerator(repo), NewLocalPatientIDGenerator(repo)
	require.NoError(t, firstIDs.Resync(ctx))
	require.NoError(t, secondIDs.Resync(ctx))

	first := NewPatientService(repo, firstIDs, &stubOrders{}, logger)
	second := NewPatientService(repo, secondIDs, &stubOrders{}, logger)

	a, err := first.CreatePatient(ctx, dto.PatientRequest{FirstName: ptr(randomdata.FirstName(randomdata.Male))})
	require.NoError(t, err)
	b, err := second.CreatePatient(ctx, dto.PatientRequest{FirstName: ptr(randomdata.FirstName(randomdata.Female))})
	require.NoError(t, err)

	assert.NotEqual(t, a.PatientID, b.PatientID)
	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

// fixedIDs renvoie toujours le même identifiant
type fixedIDs struct {
	id      string
	resyncs int
}

func (f *fixedIDs) Generate(context.Context) (string, error) { return f.id, nil }

func (f *fixedIDs) Resync(context.Context) error {
	f.resyncs++
	return nil
}

func TestCreatePatient_NoFreeID(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryPatientRepository()
	require.NoError(t, repo.Insert(ctx, &dto.Patient{PatientID: "PAT-2025-000001", FirstName: "Ada"}))

	ids := &fixedIDs{id: "PAT-2025-000001"}
	service := NewPatientService(repo, ids, &stubOrders{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := service.CreatePatient(ctx, dto.PatientRequest{FirstName: ptr("Eve")})
	requireErrorType(t, err, utils.ErrorTypeConflict)
	assert.Equal(t, maxCreateAttempts, ids.resyncs)

	stored, err := repo.FindByID(ctx, "PAT-2025-000001")
	require.NoError(t, err)
	assert.Equal(t, "Ada", stored.FirstName)
}

func TestUpdatePatient(t *testing.T) {
	service, _ := newPatientService(&stubOrders{})
	ctx := context.Background()

	created, err := service.CreatePatient(ctx, dto.PatientRequest{
		FirstName:    ptr("Jean"),
		LastName:     ptr("Kouassi"),
		PatientState: ptr(dto.PatientStateActive),
	})
	require.NoError(t, err)

	updated, err := service.UpdatePatient(ctx, created.PatientID, dto.PatientRequest{
		PatientID:    ptr("PAT-1999-000001"),
		PatientState: ptr(dto.PatientStateInactive),
	})
	require.NoError(t, err)

	assert.Equal(t, created.PatientID, updated.PatientID)
	assert.Equal(t, dto.PatientStateInactive, updated.PatientState)
	assert.Equal(t, "Jean Kouassi", updated.FullName())
	assert.Equal(t, utils.Today(), updated.UpdateDateTimeGmt)
}

func TestUpdatePatient_NotFound(t *testing.T) {
	service, _ := newPatientService(&stubOrders{})

	_, err := service.UpdatePatient(context.Background(), "PAT-2025-999999", dto.PatientRequest{})
	requireErrorType(t, err, utils.ErrorTypeNotFound)
}

func TestDeactivatePatient(t *testing.T) {
	service, repo := newPatientService(&stubOrders{})
	ctx := context.Background()

	created, err := service.CreatePatient(ctx, dto.PatientRequest{FirstName: ptr("Awa")})
	require.NoError(t, err)

	require.NoError(t, service.DeactivatePatient(ctx, created.PatientID))

	_, err = repo.FindByID(ctx, created.PatientID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	err = service.DeactivatePatient(ctx, created.PatientID)
	requireErrorType(t, err, utils.ErrorTypeNotFound)
}

func TestGetPatientsWithActiveOrders(t *testing.T) {
	ctx := context.Background()
	orders := &stubOrders{orders: []dto.Order{
		{OrderID: "o1", PatientID: "P1", PatientState: "ACTIVE"},
		{OrderID: "o2", PatientID: "P1", PatientState: "ACTIVE"},
		{OrderID: "o3", PatientID: "P3", PatientState: "ACTIVE"},
		{OrderID: "o4", PatientID: "P9", PatientState: "ACTIVE"},
	}}
	service, repo := newPatientService(orders)

	for _, id := range []string{"P1", "P2", "P3"} {
		require.NoError(t, repo.Save(ctx, &dto.Patient{PatientID: id, FirstName: randomdata.FirstName(randomdata.Male), LastName: randomdata.LastName()}))
	}

	result, err := service.GetPatientsWithActiveOrders(ctx, dto.PatientIdWrapper{
		PatientIDs: []string{"P1", "P2", "P1", "P3", "P9"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, orders.calls)
	assert.Equal(t, []string{"P1", "P2", "P3", "P9"}, orders.patientIDs)
	assert.Equal(t, "ACTIVE", orders.state)

	require.Len(t, result, 2)
	assert.Len(t, result["P1"].Orders, 2)
	assert.Equal(t, "P1", result["P1"].Patient.PatientID)
	assert.Len(t, result["P3"].Orders, 1)
	assert.NotContains(t, result, "P2")
	assert.NotContains(t, result, "P9")
}

func TestGetPatientsWithActiveOrders_EmptySet(t *testing.T) {
	orders := &stubOrders{}
	service, _ := newPatientService(orders)

	_, err := service.GetPatientsWithActiveOrders(context.Background(), dto.PatientIdWrapper{PatientIDs: []string{" ", ""}})
	requireErrorType(t, err, utils.ErrorTypeValidation)
	assert.Zero(t, orders.calls)
}

func TestGetPatientsWithActiveOrders_RemoteFailure(t *testing.T) {
	service, repo := newPatientService(&stubOrders{err: errors.New("connection refused")})
	require.NoError(t, repo.Save(context.Background(), &dto.Patient{PatientID: "P1"}))

	result, err := service.GetPatientsWithActiveOrders(context.Background(), dto.PatientIdWrapper{PatientIDs: []string{"P1"}})
	assert.Nil(t, result)
	requireErrorType(t, err, utils.ErrorTypeUnavailable)
}

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, uniqueIDs([]string{"a", " b ", "a", ""}))
	assert.Empty(t, uniqueIDs(nil))
}
