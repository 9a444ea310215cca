package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"soins-suite-services/internal/infrastructure/database/mongodb"
	"soins-suite-services/internal/infrastructure/database/postgres"
	"soins-suite-services/internal/infrastructure/database/redis"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Uniquement variables d'environnement (+ fichier .env optionnel)

// Noms des services déployables
const (
	OrderService   = "order-service"
	PatientService = "patient-service"
)

// Drivers de stockage supportés par les repositories
const (
	StoragePostgres = "postgres"
	StorageMongoDB  = "mongodb"
	StorageMemory   = "memory"
)

// Config structure unifiée
type Config struct {
	Environment string
	Service     ServiceConfig
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	MongoDB     MongoConfig
	Storage     StorageConfig
	Registry    RegistryConfig
	Clients     ClientsConfig
	Logging     LoggingConfig
	CORS        CORSConfig
}

// ServiceConfig identité de l'instance courante
type ServiceConfig struct {
	Name         string
	InstanceID   string `env:"SERVICE_INSTANCE_ID"`
	AdvertiseURL string `env:"SERVICE_ADVERTISE_URL"`
}

// ServerConfig configuration serveur HTTP
type ServerConfig struct {
	Host         string        `env:"SERVER_HOST"`
	Port         int           `env:"SERVER_PORT"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT"`
}

// DatabaseConfig configuration PostgreSQL
type DatabaseConfig struct {
	Host           string        `env:"DB_HOST"`
	Port           int           `env:"DB_PORT"`
	Database       string        `env:"DB_NAME"`
	Username       string        `env:"DB_USERNAME"`
	Password       string        `env:"DB_PASSWORD"`
	MaxConnections int           `env:"DB_MAX_CONNECTIONS"`
	ConnectionTTL  time.Duration `env:"DB_CONNECTION_TTL"`
	QueryTimeout   time.Duration `env:"DB_QUERY_TIMEOUT"`
	SSLMode        string        `env:"DB_SSL_MODE"`
}

// RedisConfig configuration Redis
type RedisConfig struct {
	Enabled     bool          `env:"REDIS_ENABLED"`
	Host        string        `env:"REDIS_HOST"`
	Port        int           `env:"REDIS_PORT"`
	Password    string        `env:"REDIS_PASSWORD"`
	Database    int           `env:"REDIS_DATABASE"`
	MaxRetries  int           `env:"REDIS_MAX_RETRIES"`
	PoolSize    int           `env:"REDIS_POOL_SIZE"`
	PoolTimeout time.Duration `env:"REDIS_POOL_TIMEOUT"`
}

// MongoConfig configuration MongoDB (stockage alternatif des commandes)
type MongoConfig struct {
	URI            string        `env:"MONGODB_URI"`
	Database       string        `env:"MONGODB_DATABASE"`
	ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT"`
	MaxPoolSize    int           `env:"MONGODB_MAX_POOL_SIZE"`
}

// StorageConfig sélection du backend des repositories
type StorageConfig struct {
	Driver string `env:"STORAGE_DRIVER"`
}

// RegistryConfig annuaire des services (remplace Eureka)
type RegistryConfig struct {
	Enabled           bool          `env:"REGISTRY_ENABLED"`
	TTL               time.Duration `env:"REGISTRY_TTL"`
	HeartbeatInterval time.Duration `env:"REGISTRY_HEARTBEAT_INTERVAL"`
	// StaticServices adresses fixes par nom de service, prioritaires sur Redis
	StaticServices map[string]string
}

// ClientsConfig appels sortants vers les autres services
type ClientsConfig struct {
	OrderServiceName string        `env:"ORDER_SERVICE_NAME"`
	OrderServiceURL  string        `env:"ORDER_SERVICE_URL"`
	Timeout          time.Duration `env:"ORDER_CLIENT_TIMEOUT"`
}

// LoggingConfig configuration logging
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL"`
}

// CORSConfig configuration CORS
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"`
	MaxAge           int      `env:"CORS_MAX_AGE"`
}

// serviceDefaults valeurs par défaut propres à chaque service
type serviceDefaults struct {
	port     int
	database string
}

var defaultsByService = map[string]serviceDefaults{
	OrderService:   {port: 4001, database: "orders"},
	PatientService: {port: 4002, database: "patients"},
}

// NewConfig charge la configuration du service depuis les variables d'environnement
func NewConfig(serviceName string) (*Config, error) {
	defaults, ok := defaultsByService[serviceName]
	if !ok {
		return nil, fmt.Errorf("service inconnu: %s", serviceName)
	}

	// Charger le fichier .env (optionnel)
	if err := godotenv.Load(".env"); err != nil {
		fmt.Printf("[CONFIG] Warning: Fichier .env non trouvé: %v\n", err)
	}

	config := &Config{}

	// Déterminer environnement
	config.Environment = getEnv("APP_ENV", "development")

	// Charger configuration serveur
	config.Server = ServerConfig{
		Host:         getEnv("SERVER_HOST", "localhost"),
		Port:         getEnvInt("SERVER_PORT", defaults.port),
		ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 30) * time.Second,
		WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 30) * time.Second,
	}

	config.Service = ServiceConfig{
		Name:         serviceName,
		InstanceID:   getEnv("SERVICE_INSTANCE_ID", uuid.NewString()),
		AdvertiseURL: getEnv("SERVICE_ADVERTISE_URL", fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)),
	}

	// Charger configuration database
	config.Database = DatabaseConfig{
		Host:           getEnv("DB_HOST", "localhost"),
		Port:           getEnvInt("DB_PORT", 5432),
		Database:       getEnv("DB_NAME", defaults.database),
		Username:       getEnv("DB_USERNAME", "postgres"),
		Password:       getEnv("DB_PASSWORD", ""),
		MaxConnections: getEnvInt("DB_MAX_CONNECTIONS", 25),
		ConnectionTTL:  getEnvDuration("DB_CONNECTION_TTL", 300) * time.Second,
		QueryTimeout:   getEnvDuration("DB_QUERY_TIMEOUT", 30) * time.Second,
		SSLMode:        getEnv("DB_SSL_MODE", "disable"),
	}

	// Charger configuration Redis
	config.Redis = RedisConfig{
		Enabled:     getEnvBool("REDIS_ENABLED", true),
		Host:        getEnv("REDIS_HOST", "localhost"),
		Port:        getEnvInt("REDIS_PORT", 6379),
		Password:    getEnv("REDIS_PASSWORD", ""),
		Database:    getEnvInt("REDIS_DATABASE", 0),
		MaxRetries:  getEnvInt("REDIS_MAX_RETRIES", 3),
		PoolSize:    getEnvInt("REDIS_POOL_SIZE", 10),
		PoolTimeout: getEnvDuration("REDIS_POOL_TIMEOUT", 30) * time.Second,
	}

	// Charger configuration MongoDB
	defaultMongoURI := ""
	if config.Environment == "development" {
		defaultMongoURI = "mongodb://localhost:27017"
	}

	config.MongoDB = MongoConfig{
		URI:            getEnv("MONGODB_URI", defaultMongoURI),
		Database:       getEnv("MONGODB_DATABASE", defaults.database),
		ConnectTimeout: getEnvDuration("MONGODB_CONNECT_TIMEOUT", 10) * time.Second,
		MaxPoolSize:    getEnvInt("MONGODB_MAX_POOL_SIZE", 100),
	}

	config.Storage = StorageConfig{
		Driver: strings.ToLower(getEnv("STORAGE_DRIVER", StoragePostgres)),
	}

	// Annuaire des services
	config.Registry = RegistryConfig{
		Enabled:           getEnvBool("REGISTRY_ENABLED", config.Redis.Enabled),
		TTL:               getEnvDuration("REGISTRY_TTL", 30) * time.Second,
		HeartbeatInterval: getEnvDuration("REGISTRY_HEARTBEAT_INTERVAL", 10) * time.Second,
		StaticServices:    getEnvServiceMap("SERVICE_URL_"),
	}

	config.Clients = ClientsConfig{
		OrderServiceName: getEnv("ORDER_SERVICE_NAME", OrderService),
		OrderServiceURL:  getEnv("ORDER_SERVICE_URL", ""),
		Timeout:          getEnvDuration("ORDER_CLIENT_TIMEOUT", 5) * time.Second,
	}

	// ORDER_SERVICE_URL est un raccourci pour l'entrée statique du service commande
	if config.Clients.OrderServiceURL != "" {
		config.Registry.StaticServices[config.Clients.OrderServiceName] = config.Clients.OrderServiceURL
	}

	// Charger configuration logging
	config.Logging = LoggingConfig{
		Level: getEnv("LOG_LEVEL", "debug"),
	}

	// Charger configuration CORS
	config.CORS = CORSConfig{
		AllowedOrigins:   getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		AllowedMethods:   getEnvStringSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		AllowedHeaders:   getEnvStringSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization"}),
		AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", true),
		MaxAge:           getEnvInt("CORS_MAX_AGE", 3600),
	}

	// Validation configuration critique
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("validation configuration échouée: %w", err)
	}

	fmt.Printf("[CONFIG] ✅ Configuration %s chargée pour environnement: %s (stockage: %s)\n",
		serviceName, config.Environment, config.Storage.Driver)
	return config, nil
}

// Getters
func (c *Config) GetServer() ServerConfig { return c.Server }
func (c *Config) GetCORS() CORSConfig     { return c.CORS }

// UsesPostgres indique si les repositories du service s'appuient sur PostgreSQL
func (c *Config) UsesPostgres() bool {
	return c.Storage.Driver == StoragePostgres
}

// Convertisseurs vers configurations infrastructure
func NewPostgresConfig(config *Config) *postgres.DatabaseConfig {
	return &postgres.DatabaseConfig{
		Host:           config.Database.Host,
		Port:           config.Database.Port,
		Database:       config.Database.Database,
		Username:       config.Database.Username,
		Password:       config.Database.Password,
		SSLMode:        config.Database.SSLMode,
		MaxConnections: config.Database.MaxConnections,
		ConnectionTTL:  config.Database.ConnectionTTL,
		QueryTimeout:   config.Database.QueryTimeout,
	}
}

func NewRedisConfig(config *Config) *redis.RedisConfig {
	return &redis.RedisConfig{
		Host:        config.Redis.Host,
		Port:        config.Redis.Port,
		Password:    config.Redis.Password,
		Database:    config.Redis.Database,
		MaxRetries:  config.Redis.MaxRetries,
		PoolSize:    config.Redis.PoolSize,
		PoolTimeout: config.Redis.PoolTimeout,
	}
}

func NewMongoConfig(config *Config) *mongodb.MongoConfig {
	return &mongodb.MongoConfig{
		URI:            config.MongoDB.URI,
		Database:       config.MongoDB.Database,
		ConnectTimeout: config.MongoDB.ConnectTimeout,
		MaxPoolSize:    config.MongoDB.MaxPoolSize,
	}
}

// Helpers pour parsing variables d'environnement
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvInt(key, defaultSeconds))
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

// getEnvServiceMap lit les variables SERVICE_URL_ORDER_SERVICE=http://... en map nom -> URL
func getEnvServiceMap(prefix string) map[string]string {
	services := make(map[string]string)
	for _, entry := range os.Environ() {
		key, value, found := strings.Cut(entry, "=")
		if !found || value == "" || !strings.HasPrefix(key, prefix) {
			continue
		}
		name := strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(key, prefix), "_", "-"))
		services[name] = strings.TrimRight(value, "/")
	}
	return services
}

// validateConfig valide la configuration selon l'environnement
func validateConfig(config *Config) error {
	env := config.Environment

	// Validation environnements supportés
	if env != "development" && env != "docker" {
		return fmt.Errorf("environnement non supporté: %s (utilisez 'development' ou 'docker')", env)
	}

	switch config.Storage.Driver {
	case StoragePostgres, StorageMemory:
	case StorageMongoDB:
		if config.Service.Name != OrderService {
			return fmt.Errorf("stockage %s disponible uniquement pour %s", StorageMongoDB, OrderService)
		}
		if config.MongoDB.URI == "" {
			return fmt.Errorf("MONGODB_URI requis pour le stockage %s", StorageMongoDB)
		}
	default:
		return fmt.Errorf("driver de stockage non supporté: %s", config.Storage.Driver)
	}

	if config.Registry.Enabled && !config.Redis.Enabled {
		return fmt.Errorf("REGISTRY_ENABLED nécessite REDIS_ENABLED")
	}

	// Le service patient doit pouvoir joindre le service commande
	if config.Service.Name == PatientService {
		if _, static := config.Registry.StaticServices[config.Clients.OrderServiceName]; !static && !config.Registry.Enabled {
			return fmt.Errorf("aucune résolution possible pour %s: définir ORDER_SERVICE_URL ou activer le registre",
				config.Clients.OrderServiceName)
		}
	}

	missingVars := []string{}

	// Variables critiques en mode docker
	if env == "docker" {
		if config.UsesPostgres() && config.Database.Password == "" {
			missingVars = append(missingVars, "DB_PASSWORD")
		}

		if config.Redis.Enabled && config.Redis.Password == "" {
			fmt.Printf("[CONFIG] ⚠️ REDIS_PASSWORD non défini pour environnement docker\n")
		}
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("variables critiques manquantes pour environnement docker: %v", missingVars)
	}

	return nil
}
