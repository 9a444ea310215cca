package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"soins-suite-services/internal/infrastructure/database/redis"
	"soins-suite-services/internal/modules/patient/repositories"
)

const sequencePattern = "patient_sequence"

// SequenceCounter compteur atomique partagé (Redis en production)
type SequenceCounter interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
}

// PatientIDGenerator génère les identifiants patient
// Format: PAT-{YYYY}-{NNNNNN}
// Exemple: PAT-2025-000042
type PatientIDGenerator struct {
	counter SequenceCounter
	keys    *redis.RedisKeyGenerator
	repo    repositories.PatientRepository
	now     func() time.Time

	mu         sync.Mutex
	seededYear int
}

// NewRedisPatientIDGenerator compteur partagé entre toutes les instances du service
func NewRedisPatientIDGenerator(client *redis.Client, repo repositories.PatientRepository) *PatientIDGenerator {
	return NewPatientIDGenerator(client, repo)
}

// NewLocalPatientIDGenerator compteur propre au processus (Redis désactivé, une seule instance)
func NewLocalPatientIDGenerator(repo repositories.PatientRepository) *PatientIDGenerator {
	return NewPatientIDGenerator(NewLocalCounter(), repo)
}

func NewPatientIDGenerator(counter SequenceCounter, repo repositories.PatientRepository) *PatientIDGenerator {
	return &PatientIDGenerator{
		counter: counter,
		keys:    redis.NewRedisKeyGenerator(),
		repo:    repo,
		now:     time.Now,
	}
}

// Generate réserve la séquence suivante de l'année courante
func (g *PatientIDGenerator) Generate(ctx context.Context) (string, error) {
	year := g.now().UTC().Year()
	prefix := fmt.Sprintf("PAT-%d-", year)

	key, err := g.keys.GenerateKey(sequencePattern, strconv.Itoa(year))
	if err != nil {
		return "", err
	}

	if err := g.seed(ctx, key, prefix, year); err != nil {
		return "", err
	}

	sequence, err := g.counter.Incr(ctx, key)
	if err != nil {
		return "", fmt.Errorf("incrément séquence %s échoué: %w", key, err)
	}

	return fmt.Sprintf("%s%06d", prefix, sequence), nil
}

// seed initialise le compteur de l'année depuis la base, une fois par processus et par année.
// SETNX garantit qu'une seule instance pose la valeur initiale.
func (g *PatientIDGenerator) seed(ctx context.Context, key, prefix string, year int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.seededYear == year {
		return nil
	}

	current, err := g.repo.MaxSequence(ctx, prefix)
	if err != nil {
		return fmt.Errorf("initialisation séquence %d échouée: %w", year, err)
	}

	if _, err := g.counter.SetNX(ctx, key, current, g.ttlUntilYearEnd(year)); err != nil {
		return fmt.Errorf("initialisation compteur %s échouée: %w", key, err)
	}

	g.seededYear = year
	return nil
}

// Resync réaligne le compteur de l'année sur la plus grande séquence persistée.
// Appelé quand un identifiant généré est déjà attribué (compteur Redis perdu, plusieurs instances locales).
func (g *PatientIDGenerator) Resync(ctx context.Context) error {
	year := g.now().UTC().Year()
	prefix := fmt.Sprintf("PAT-%d-", year)

	key, err := g.keys.GenerateKey(sequencePattern, strconv.Itoa(year))
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	current, err := g.repo.MaxSequence(ctx, prefix)
	if err != nil {
		return fmt.Errorf("resynchronisation séquence %d échouée: %w", year, err)
	}

	if err := g.counter.Set(ctx, key, current, g.ttlUntilYearEnd(year)); err != nil {
		return fmt.Errorf("resynchronisation compteur %s échouée: %w", key, err)
	}

	g.seededYear = year
	return nil
}

// ttlUntilYearEnd expire un jour après le 31 décembre, le compteur doit survivre au dernier appel de l'année
func (g *PatientIDGenerator) ttlUntilYearEnd(year int) time.Duration {
	endOfYear := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	return endOfYear.Sub(g.now().UTC()) + 24*time.Hour
}

// LocalCounter compteur en mémoire respectant la sémantique SETNX / INCR
type LocalCounter struct {
	mu     sync.Mutex
	values map[string]int64
}

func NewLocalCounter() *LocalCounter {
	return &LocalCounter{values: make(map[string]int64)}
}

func (c *LocalCounter) SetNX(_ context.Context, key string, value interface{}, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.values[key]; exists {
		return false, nil
	}

	sequence, err := counterValue(value)
	if err != nil {
		return false, err
	}
	c.values[key] = sequence
	return true, nil
}

func (c *LocalCounter) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	sequence, err := counterValue(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.values[key] = sequence
	return nil
}

func (c *LocalCounter) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.values[key]++
	return c.values[key], nil
}

func counterValue(value interface{}) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("valeur de compteur non entière: %T", value)
	}
}
