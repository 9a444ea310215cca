package discovery

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"soins-suite-services/internal/infrastructure/database/redis"
)

// ErrServiceNotFound aucune instance connue pour le service demandé
var ErrServiceNotFound = errors.New("service introuvable dans l'annuaire")

const instancePattern = "registry_instance"

// Instance une instance de service annoncée dans l'annuaire
type Instance struct {
	ServiceName string
	InstanceID  string
	BaseURL     string
}

// InstanceStore stockage clé/valeur avec expiration (implémenté par le client Redis)
type InstanceStore interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	Keys(ctx context.Context, pattern string) ([]string, error)
}

// Registry résout un nom de service en URL de base.
// Les entrées statiques sont prioritaires sur les instances dynamiques.
type Registry struct {
	static  map[string]string
	store   InstanceStore
	keys    *redis.RedisKeyGenerator
	ttl     time.Duration
	pickOne func(n int) int
}

// NewRegistry crée un annuaire; store peut être nil (annuaire purement statique)
func NewRegistry(static map[string]string, store InstanceStore, ttl time.Duration) *Registry {
	entries := make(map[string]string, len(static))
	for name, url := range static {
		entries[name] = strings.TrimRight(url, "/")
	}

	return &Registry{
		static:  entries,
		store:   store,
		keys:    redis.NewRedisKeyGenerator(),
		ttl:     ttl,
		pickOne: rand.IntN,
	}
}

// Register annonce (ou rafraîchit) une instance pour la durée du TTL
func (r *Registry) Register(ctx context.Context, instance Instance) error {
	if r.store == nil {
		return nil
	}

	key, err := r.instanceKey(instance.ServiceName, instance.InstanceID)
	if err != nil {
		return err
	}

	if err := r.store.Set(ctx, key, strings.TrimRight(instance.BaseURL, "/"), r.ttl); err != nil {
		return fmt.Errorf("enregistrement instance %s échoué: %w", instance.InstanceID, err)
	}
	return nil
}

// Deregister retire une instance de l'annuaire
func (r *Registry) Deregister(ctx context.Context, instance Instance) error {
	if r.store == nil {
		return nil
	}

	key, err := r.instanceKey(instance.ServiceName, instance.InstanceID)
	if err != nil {
		return err
	}
	return r.store.Del(ctx, key)
}

// Resolve retourne l'URL de base d'une instance vivante du service
func (r *Registry) Resolve(ctx context.Context, serviceName string) (string, error) {
	if url, ok := r.static[serviceName]; ok {
		return url, nil
	}

	if r.store == nil {
		return "", fmt.Errorf("%w: %s", ErrServiceNotFound, serviceName)
	}

	pattern, err := r.keys.GenerateWildcardPattern(instancePattern, serviceName+"_")
	if err != nil {
		return "", err
	}

	keys, err := r.store.Keys(ctx, pattern)
	if err != nil {
		return "", fmt.Errorf("lecture annuaire échouée: %w", err)
	}

	var urls []string
	for _, key := range keys {
		url, err := r.store.Get(ctx, key)
		if errors.Is(err, redis.Nil) {
			// Instance expirée entre le scan et la lecture
			continue
		}
		if err != nil {
			return "", fmt.Errorf("lecture instance %s échouée: %w", key, err)
		}
		if url != "" {
			urls = append(urls, url)
		}
	}

	if len(urls) == 0 {
		return "", fmt.Errorf("%w: %s", ErrServiceNotFound, serviceName)
	}

	sort.Strings(urls)
	return urls[r.pickOne(len(urls))], nil
}

func (r *Registry) instanceKey(serviceName, instanceID string) (string, error) {
	return r.keys.GenerateKey(instancePattern, serviceName, instanceID)
}
