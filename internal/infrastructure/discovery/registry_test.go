package discovery

import (
	"context"
	"path"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soins-suite-services/internal/infrastructure/database/redis"
)

// memoryStore InstanceStore en mémoire; les motifs suivent la syntaxe glob de SCAN
type memoryStore struct {
	mu     sync.Mutex
	values map[string]string
	ttls   map[string]time.Duration
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (s *memoryStore) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value.(string)
	s.ttls[key] = expiration
	return nil
}

func (s *memoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (s *memoryStore) Del(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func (s *memoryStore) Keys(_ context.Context, pattern string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var keys []string
	for key := range s.values {
		if ok, _ := path.Match(pattern, key); ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func TestResolve_StaticFirst(t *testing.T) {
	store := newMemoryStore()
	registry := NewRegistry(map[string]string{"order-service": "http://orders:4001/"}, store, time.Minute)

	require.NoError(t, registry.Register(context.Background(), Instance{
		ServiceName: "order-service", InstanceID: "a1", BaseURL: "http://10.0.0.5:4001",
	}))

	url, err := registry.Resolve(context.Background(), "order-service")
	require.NoError(t, err)
	assert.Equal(t, "http://orders:4001", url)
}

func TestRegisterAndResolve(t *testing.T) {
	store := newMemoryStore()
	registry := NewRegistry(nil, store, 30*time.Second)
	ctx := context.Background()

	instance := Instance{ServiceName: "order-service", InstanceID: "7f3c-11", BaseURL: "http://10.0.0.5:4001/"}
	require.NoError(t, registry.Register(ctx, instance))

	assert.Equal(t, "http://10.0.0.5:4001", store.values["soins_suite_registry_instance:order-service_7f3c-11"])
	assert.Equal(t, 30*time.Second, store.ttls["soins_suite_registry_instance:order-service_7f3c-11"])

	url, err := registry.Resolve(ctx, "order-service")
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:4001", url)

	_, err = registry.Resolve(ctx, "patient-service")
	assert.ErrorIs(t, err, ErrServiceNotFound)

	require.NoError(t, registry.Deregister(ctx, instance))
	_, err = registry.Resolve(ctx, "order-service")
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestResolve_PicksAmongLiveInstances(t *testing.T) {
	store := newMemoryStore()
	registry := NewRegistry(nil, store, time.Minute)
	registry.pickOne = func(n int) int { return n - 1 }
	ctx := context.Background()

	require.NoError(t, registry.Register(ctx, Instance{ServiceName: "order-service", InstanceID: "a", BaseURL: "http://a:4001"}))
	require.NoError(t, registry.Register(ctx, Instance{ServiceName: "order-service", InstanceID: "b", BaseURL: "http://b:4001"}))
	require.NoError(t, registry.Register(ctx, Instance{ServiceName: "order-service-legacy", InstanceID: "c", BaseURL: "http://c:4001"}))

	url, err := registry.Resolve(ctx, "order-service")
	require.NoError(t, err)
	assert.Equal(t, "http://b:4001", url)
}

func TestStaticRegistry(t *testing.T) {
	registry := NewRegistry(map[string]string{"order-service": "http://localhost:4001"}, nil, time.Minute)
	// Sans stockage, Register est sans effet
	require.NoError(t, registry.Register(context.Background(), Instance{ServiceName: "patient-service", InstanceID: "x"}))

	_, err := registry.Resolve(context.Background(), "patient-service")
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
