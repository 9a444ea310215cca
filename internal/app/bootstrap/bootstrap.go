package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"
)

// BootstrapSystem orchestre la préparation de la base avant l'ouverture du serveur HTTP
type BootstrapSystem struct {
	schemaManager *SchemaManager
	timeout       time.Duration
}

// BootstrapResult contient le résultat d'exécution du bootstrap
type BootstrapResult struct {
	Success        bool          `json:"success"`
	TotalDuration  time.Duration `json:"total_duration"`
	PhasesExecuted []PhaseResult `json:"phases_executed"`
	ErrorMessage   string        `json:"error_message,omitempty"`
}

// PhaseResult contient le résultat d'une phase du bootstrap
type PhaseResult struct {
	Phase       string        `json:"phase"`
	Success     bool          `json:"success"`
	Duration    time.Duration `json:"duration"`
	Description string        `json:"description"`
	Error       string        `json:"error,omitempty"`
}

// NewBootstrapSystem crée une nouvelle instance du système de bootstrap
func NewBootstrapSystem(schemaManager *SchemaManager) *BootstrapSystem {
	return &BootstrapSystem{
		schemaManager: schemaManager,
		timeout:       time.Minute,
	}
}

// Execute lance le bootstrap
func (bs *BootstrapSystem) Execute(ctx context.Context) (*BootstrapResult, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, bs.timeout)
	defer cancel()

	fmt.Printf("[BOOTSTRAP] Démarrage BootstrapSystem (timeout: %v)\n", bs.timeout)

	result := &BootstrapResult{
		Success:        true,
		PhasesExecuted: []PhaseResult{},
	}

	// Phase 1: Schéma PostgreSQL
	phase1Result := bs.executeSchemaPhase(ctx)
	result.PhasesExecuted = append(result.PhasesExecuted, phase1Result)
	if !phase1Result.Success {
		result.Success = false
		result.ErrorMessage = fmt.Sprintf("Phase 1 échouée: %s", phase1Result.Error)
		result.TotalDuration = time.Since(startTime)
		return result, fmt.Errorf("bootstrap failed at phase 1: %s", phase1Result.Error)
	}

	result.TotalDuration = time.Since(startTime)
	fmt.Printf("[BOOTSTRAP] ✅ BootstrapSystem terminé avec succès en %v\n", result.TotalDuration)

	return result, nil
}

// executeSchemaPhase applique les schémas déclarés par les modules
func (bs *BootstrapSystem) executeSchemaPhase(ctx context.Context) PhaseResult {
	startTime := time.Now()
	phase := "Phase 1: Schéma PostgreSQL"

	fmt.Printf("[BOOTSTRAP] 🗄️  Démarrage %s\n", phase)

	applied, err := bs.schemaManager.EnsureSchemas(ctx)
	duration := time.Since(startTime)

	if err != nil {
		fmt.Printf("[BOOTSTRAP] ❌ %s échouée en %v: %v\n", phase, duration, err)
		return PhaseResult{
			Phase:       phase,
			Success:     false,
			Duration:    duration,
			Description: "Création des tables",
			Error:       err.Error(),
		}
	}

	fmt.Printf("[BOOTSTRAP] ✅ %s terminée en %v\n", phase, duration)
	return PhaseResult{
		Phase:       phase,
		Success:     true,
		Duration:    duration,
		Description: fmt.Sprintf("%d schéma(s) appliqué(s)", applied),
	}
}

// Module bootstrap, à inclure uniquement pour les services adossés à PostgreSQL
var Module = fx.Options(
	fx.Provide(NewSchemaManager),
	fx.Provide(NewBootstrapSystem),
	fx.Invoke(RegisterBootstrapLifecycle),
)

// RegisterBootstrapLifecycle enregistre le système de bootstrap dans le cycle de vie Fx
func RegisterBootstrapLifecycle(lc fx.Lifecycle, bootstrap *BootstrapSystem) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			fmt.Printf("[LIFECYCLE] 🚀 Démarrage BootstrapSystem AVANT serveur HTTP\n")

			result, err := bootstrap.Execute(ctx)
			if err != nil {
				fmt.Printf("[LIFECYCLE] ❌ Bootstrap échoué: %v\n", err)
				return fmt.Errorf("bootstrap system failed: %w", err)
			}

			fmt.Printf("[LIFECYCLE] ✅ Bootstrap terminé en %v\n", result.TotalDuration)
			return nil
		},
	})
}
