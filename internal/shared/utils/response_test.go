package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondError(ctx, err)
	return w
}

func TestRespondError_StatusByType(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{NewNotFoundError("ORDER_NOT_FOUND", "absente"), http.StatusNotFound},
		{NewValidationError("PATIENT_IDS_REQUIRED", "vide"), http.StatusBadRequest},
		{NewConflictError("PATIENT_ID_CONFLICT", "déjà attribué"), http.StatusConflict},
		{NewUnavailableError("ORDER_SERVICE_UNAVAILABLE", "indisponible", errors.New("refused")), http.StatusServiceUnavailable},
		{NewInternalError("échec", errors.New("disk")), http.StatusInternalServerError},
		{errors.New("brute"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.status, respond(tt.err).Code)
		})
	}
}

func TestRespondError_Body(t *testing.T) {
	wrapped := fmt.Errorf("contexte: %w", NewNotFoundError("PATIENT_NOT_FOUND", "Patient P1 introuvable"))
	w := respond(wrapped)

	require.Equal(t, http.StatusNotFound, w.Code)

	var body struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Patient P1 introuvable", body.Error)
	assert.Equal(t, "PATIENT_NOT_FOUND", body.Details["code"])
}

func TestServiceError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewUnavailableError("X", "indisponible", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "indisponible: connection refused", err.Error())
}

func TestRespondBindingError_FieldDetails(t *testing.T) {
	type payload struct {
		PatientIDs []string `validate:"required,min=1"`
	}
	err := validator.New().Struct(payload{PatientIDs: []string{}})
	require.Error(t, err)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	RespondBindingError(ctx, err)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Details struct {
			Code   string            `json:"code"`
			Champs map[string]string `json:"champs"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Details.Code)
	assert.Equal(t, "Au moins 1 élément(s) requis", body.Details.Champs["PatientIDs"])
}
