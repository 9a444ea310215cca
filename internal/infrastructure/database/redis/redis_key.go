package redis

import (
	"fmt"
	"regexp"
	"strings"
)

const keyPrefix = "soins_suite"

var validKeyRegex = regexp.MustCompile(`^[a-zA-Z0-9_:\-.]+$`)

// RedisKeyGenerator génère et valide les clés Redis selon les conventions du projet
type RedisKeyGenerator struct{}

// NewRedisKeyGenerator crée une nouvelle instance du générateur
func NewRedisKeyGenerator() *RedisKeyGenerator {
	return &RedisKeyGenerator{}
}

// RedisKeyPattern définit les patterns standards des clés
// Pattern: soins_suite_{domain}_{context}:{identifier}
type RedisKeyPattern struct {
	Domain  string // patient, registry...
	Context string // sequence, instance...
}

// Patterns réellement utilisés par les services
var RedisKeyPatterns = map[string]RedisKeyPattern{
	// Séquence annuelle des identifiants patient
	"patient_sequence": {Domain: "patient", Context: "sequence"},
	// Instances enregistrées dans l'annuaire des services
	"registry_instance": {Domain: "registry", Context: "instance"},
}

// GenerateKey génère une clé Redis selon la convention : soins_suite_{domain}_{context}:{identifier}
func (rkg *RedisKeyGenerator) GenerateKey(patternName string, identifier ...string) (string, error) {
	pattern, exists := RedisKeyPatterns[patternName]
	if !exists {
		return "", fmt.Errorf("pattern Redis non trouvé: %s", patternName)
	}

	prefix := fmt.Sprintf("%s_%s_%s", keyPrefix, pattern.Domain, pattern.Context)

	if len(identifier) > 0 {
		// Joindre les identifiants avec "_" s'il y en a plusieurs
		key := fmt.Sprintf("%s:%s", prefix, strings.Join(identifier, "_"))
		if err := rkg.ValidateKey(key); err != nil {
			return "", err
		}
		return key, nil
	}

	// Clé singleton
	return prefix, nil
}

// ValidateKey valide qu'une clé respecte les conventions
func (rkg *RedisKeyGenerator) ValidateKey(key string) error {
	if len(key) == 0 {
		return fmt.Errorf("clé vide")
	}

	if len(key) > 250 {
		return fmt.Errorf("clé trop longue (max 250 caractères): %d", len(key))
	}

	if !validKeyRegex.MatchString(key) {
		return fmt.Errorf("clé contient des caractères invalides: %s", key)
	}

	if !strings.HasPrefix(key, keyPrefix+"_") {
		return fmt.Errorf("clé doit commencer par '%s_': %s", keyPrefix, key)
	}

	return nil
}

// GenerateWildcardPattern génère un pattern wildcard pour un pattern et un préfixe d'identifiant
func (rkg *RedisKeyGenerator) GenerateWildcardPattern(patternName string, identifierPrefix string) (string, error) {
	pattern, exists := RedisKeyPatterns[patternName]
	if !exists {
		return "", fmt.Errorf("pattern Redis non trouvé: %s", patternName)
	}
	return fmt.Sprintf("%s_%s_%s:%s*", keyPrefix, pattern.Domain, pattern.Context, identifierPrefix), nil
}
