package status

import (
	"fmt"

	"github.com/orgball2608/status-engine/pkg/config"
	"github.com/orgball2608/status-engine/pkg/logger"
	"github.com/orgball2608/status-engine/pkg/pgx"
	"go.uber.org/fx"
)

type Params struct {
	fx.In

	LC     fx.Lifecycle
	Logger logger.Logger
	Config *config.Config
}

// NewFromConfig picks the adapter named by STORAGE_DRIVER. The postgres pool is only
// opened when it is actually used.
func NewFromConfig(p Params) (Repository, error) {
	switch p.Config.Storage.Driver {
	case config.StorageDriverMemory:
		p.Logger.Warn("Using in-memory status storage, posts will not survive a restart")
		return NewMemory(p.Logger), nil
	case config.StorageDriverPostgres, "":
		pool, err := pgx.New(pgx.Opts{LC: p.LC, Logger: p.Logger, Config: p.Config})
		if err != nil {
			return nil, err
		}
		return NewPgx(pool, p.Logger), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", p.Config.Storage.Driver)
	}
}

var Module = fx.Module("status_repository",
	fx.Provide(NewFromConfig),
)
