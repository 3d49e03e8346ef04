package postgres

import (
	"github.com/ajiwo/crptapi/backends"
)

func init() {
	backends.Register("postgres", func(config any) (backends.Backend, error) {
		pgConfig, ok := config.(Config)
		if !ok || pgConfig.ConnString == "" {
			return nil, backends.NewInvalidConfigError("postgres", config)
		}
		return New(pgConfig)
	})
}
