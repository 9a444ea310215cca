package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"soins-suite-services/internal/app/config"
)

func setServiceEnv(t *testing.T, env map[string]string) {
	t.Helper()
	base := map[string]string{
		"APP_ENV":               "development",
		"STORAGE_DRIVER":        config.StorageMemory,
		"REDIS_ENABLED":         "false",
		"REGISTRY_ENABLED":      "",
		"ORDER_SERVICE_URL":     "",
		"ORDER_SERVICE_NAME":    "",
		"SERVICE_ADVERTISE_URL": "",
		"MONGODB_URI":           "",
		"LOG_LEVEL":             "error",
	}
	for key, value := range env {
		base[key] = value
	}
	for key, value := range base {
		t.Setenv(key, value)
	}
}

func loadConfig(t *testing.T, service string, env map[string]string) *config.Config {
	t.Helper()
	setServiceEnv(t, env)
	cfg, err := config.NewConfig(service)
	require.NoError(t, err)
	return cfg
}

// buildRouter construit le graphe Fx complet sans démarrer le serveur
func buildRouter(t *testing.T, module fx.Option) *gin.Engine {
	t.Helper()
	var router *gin.Engine
	fxtest.New(t, module, fx.NopLogger, fx.Populate(&router))
	require.NotNil(t, router)
	return router
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestServiceModules_Validate(t *testing.T) {
	tests := []struct {
		name    string
		service string
		env     map[string]string
		module  func(*config.Config) fx.Option
	}{
		{"order memory", config.OrderService, nil, NewOrderServiceModule},
		{"order postgres", config.OrderService, map[string]string{"STORAGE_DRIVER": config.StoragePostgres}, NewOrderServiceModule},
		{"order mongodb", config.OrderService, map[string]string{"STORAGE_DRIVER": config.StorageMongoDB}, NewOrderServiceModule},
		{"order registry", config.OrderService, map[string]string{"REDIS_ENABLED": "true", "REGISTRY_ENABLED": "true"}, NewOrderServiceModule},
		{"patient memory", config.PatientService, map[string]string{"ORDER_SERVICE_URL": "http://localhost:4001"}, NewPatientServiceModule},
		{"patient postgres redis", config.PatientService, map[string]string{
			"STORAGE_DRIVER":   config.StoragePostgres,
			"REDIS_ENABLED":    "true",
			"REGISTRY_ENABLED": "true",
		}, NewPatientServiceModule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadConfig(t, tt.service, tt.env)
			assert.NoError(t, fx.ValidateApp(tt.module(cfg), fx.NopLogger))
		})
	}
}

func TestOrderServiceModule_Routes(t *testing.T) {
	router := buildRouter(t, NewOrderServiceModule(loadConfig(t, config.OrderService, nil)))

	w := doJSON(t, router, http.MethodPost, "/orders/create",
		`{"patientId":"PAT-2025-000001","orderComment":"NFS","patientState":"ACTIVE"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	orderID, _ := created["orderId"].(string)
	require.NotEmpty(t, orderID)

	w = doJSON(t, router, http.MethodPut, "/orders/update/"+orderID, `{"orderComment":"NFS + CRP"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/orders/"+orderID, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "NFS + CRP")

	w = doJSON(t, router, http.MethodGet, "/orders?patientIds=PAT-2025-000001&patientState=ACTIVE", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), orderID)

	w = doJSON(t, router, http.MethodDelete, "/orders/decline/"+orderID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/orders/"+orderID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPatientServiceModule_Routes(t *testing.T) {
	orderRouter := buildRouter(t, NewOrderServiceModule(loadConfig(t, config.OrderService, nil)))
	orderServer := httptest.NewServer(orderRouter)
	defer orderServer.Close()

	router := buildRouter(t, NewPatientServiceModule(loadConfig(t, config.PatientService, map[string]string{
		"ORDER_SERVICE_URL": orderServer.URL,
	})))

	w := doJSON(t, router, http.MethodPost, "/patients/create",
		`{"firstName":"Awa","lastName":"Traoré","patientState":"ACTIVE"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var patient map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &patient))
	patientID, _ := patient["patientId"].(string)
	require.NotEmpty(t, patientID)
	assert.Equal(t, "Awa Traoré", patient["fullName"])

	w = doJSON(t, orderRouter, http.MethodPost, "/orders/create",
		`{"patientId":"`+patientID+`","orderComment":"Radio thorax","patientState":"ACTIVE"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/patients/orders/active", `{"patientIds":["`+patientID+`"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Radio thorax")

	w = doJSON(t, router, http.MethodGet, "/patients", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), patientID)

	w = doJSON(t, router, http.MethodPut, "/patients/update/"+patientID, `{"patientState":"INACTIVE"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/patients/deactivate/"+patientID, "")
	assert.Equal(t, http.StatusAccepted, w.Code)
}
