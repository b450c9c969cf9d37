package snowflake

import (
	"context"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
)

// newRepository is a test hook that points to NewRepository by default.
var newRepository = NewRepository

type wrappedRepo struct {
	*Repository
	closeFn func()
}

var _ storage.Store = (*wrappedRepo)(nil)

func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

func init() {
	storage.Register("snowflake", func(ctx context.Context, cfg storage.Config) (storage.Store, error) {
		r, closeFn, err := newRepository(ctx, Config{
			DSN:       cfg.DSN,
			Account:   cfg.Account,
			User:      cfg.User,
			Password:  cfg.Password,
			Role:      cfg.Role,
			Warehouse: cfg.Warehouse,
			Database:  cfg.Database,
		})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})
}
