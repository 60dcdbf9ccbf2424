package promise

import (
	"go.uber.org/zap"

	"github.com/TelephoneTan/GoResult/internal/logging"
)

// SetLogger sets where the package writes its debug entries about recovered
// job panics and timeouts. A nil logger turns them off.
func SetLogger(logger *zap.Logger) {
	if logger == nil {
		logging.SetCustomGlobalLogger(nil)
		return
	}
	logging.SetCustomGlobalLogger(logger.WithOptions(zap.AddCallerSkip(1)))
}
