package middleware

import (
	"go.uber.org/fx"

	"soins-suite-services/internal/shared/middleware/core"
	"soins-suite-services/internal/shared/middleware/security"
)

// Module regroupe tous les providers des middlewares partagés
var Module = fx.Options(
	fx.Provide(core.RequestIDMiddleware),
	fx.Provide(core.RecoveryMiddleware),
	fx.Provide(security.CORSMiddleware),
)
