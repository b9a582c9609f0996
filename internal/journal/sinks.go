package journal

import (
	"context"
	"errors"
	"fmt"

	"github.com/qiniu/x/xlog"

	"hr_dashboard/global_models/global_db"
)

const createTableQuery = `
	CREATE TABLE IF NOT EXISTS dashboard_journal (
		id           BIGSERIAL PRIMARY KEY,
		operator     TEXT        NOT NULL,
		action       TEXT        NOT NULL,
		vacancy_id   TEXT        NOT NULL DEFAULT '',
		candidate_id INTEGER,
		request_id   TEXT        NOT NULL DEFAULT '',
		success      BOOLEAN     NOT NULL,
		details      TEXT        NOT NULL DEFAULT '',
		created_at   TIMESTAMPTZ NOT NULL
	)`

const insertEntryQuery = `
	INSERT INTO dashboard_journal
		(operator, action, vacancy_id, candidate_id, request_id, success, details, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// PgSink пишет журнал в PostgreSQL, одна пачка - одна транзакция
type PgSink struct {
	pool global_db.Pool
}

func NewPgSink(pool global_db.Pool) (*PgSink, error) {
	if pool == nil {
		return nil, errors.New("pool is required")
	}
	return &PgSink{pool: pool}, nil
}

// EnsureSchema создаёт таблицу журнала, если её нет
func (s *PgSink) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createTableQuery); err != nil {
		return fmt.Errorf("failed to create dashboard_journal: %w", err)
	}
	return nil
}

func (s *PgSink) Write(ctx context.Context, entries []Entry) (err error) {
	if len(entries) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	for _, e := range entries {
		var candidateID any
		if e.CandidateID != 0 {
			candidateID = e.CandidateID
		}
		if _, err = tx.Exec(ctx, insertEntryQuery,
			e.Operator, string(e.Action), e.VacancyID, candidateID, e.RequestID, e.Success, e.Details, e.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert journal entry: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit journal entries: %w", err)
	}
	return nil
}

// LogSink - журнал без базы, только в лог
type LogSink struct {
	xl *xlog.Logger
}

func NewLogSink() *LogSink {
	return &LogSink{xl: xlog.New("journal")}
}

func (s *LogSink) Write(_ context.Context, entries []Entry) error {
	for _, e := range entries {
		s.xl.Infof("[%s] %s by %s: vacancy=%s candidate=%d success=%v %s",
			e.RequestID, e.Action, e.Operator, e.VacancyID, e.CandidateID, e.Success, e.Details)
	}
	return nil
}
