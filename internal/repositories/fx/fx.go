package fx

import (
	"github.com/orgball2608/status-engine/internal/repositories/status"
	"go.uber.org/fx"
)

var Module = fx.Options(
	status.Module,
)
