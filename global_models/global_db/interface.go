// Абстракция хранилища журнала поверх пула соединений
package global_db

import "context"

// Pool - то, что нужно журналу от базы: разовые команды и транзакции
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
	Begin(ctx context.Context) (Tx, error)
	Close() error
}

// Tx - транзакция, в которой журнал пишет пачку записей
type Tx interface {
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
