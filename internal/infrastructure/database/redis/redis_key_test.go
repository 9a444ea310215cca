package redis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKey(t *testing.T) {
	generator := NewRedisKeyGenerator()

	key, err := generator.GenerateKey("patient_sequence", "2025")
	require.NoError(t, err)
	assert.Equal(t, "soins_suite_patient_sequence:2025", key)

	key, err = generator.GenerateKey("registry_instance", "order-service", "9b1c-44")
	require.NoError(t, err)
	assert.Equal(t, "soins_suite_registry_instance:order-service_9b1c-44", key)

	key, err = generator.GenerateKey("patient_sequence")
	require.NoError(t, err)
	assert.Equal(t, "soins_suite_patient_sequence", key)
}

func TestGenerateKey_Invalid(t *testing.T) {
	generator := NewRedisKeyGenerator()

	_, err := generator.GenerateKey("unknown", "x")
	assert.Error(t, err)

	_, err = generator.GenerateKey("patient_sequence", "with space")
	assert.Error(t, err)

	_, err = generator.GenerateKey("patient_sequence", strings.Repeat("a", 260))
	assert.Error(t, err)
}

func TestValidateKey(t *testing.T) {
	generator := NewRedisKeyGenerator()

	assert.NoError(t, generator.ValidateKey("soins_suite_patient_sequence:2025"))
	assert.Error(t, generator.ValidateKey(""))
	assert.Error(t, generator.ValidateKey("other_prefix:1"))
}

func TestGenerateWildcardPattern(t *testing.T) {
	pattern, err := NewRedisKeyGenerator().GenerateWildcardPattern("registry_instance", "order-service_")
	require.NoError(t, err)
	assert.Equal(t, "soins_suite_registry_instance:order-service_*", pattern)
}
