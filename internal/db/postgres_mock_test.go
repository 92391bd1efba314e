package db

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func withMockStore(t *testing.T, fn func(*PostgresStore, sqlmock.Sqlmock)) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	fn(newPostgresStore(db), mock)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestDollarPlaceholders(t *testing.T) {
	assert.Equal(t, "SELECT a FROM t WHERE x = $1 AND y = $2", dollarPlaceholders("SELECT a FROM t WHERE x = ? AND y = ?"))
	assert.Equal(t, "SELECT 1", dollarPlaceholders("SELECT 1"))
}

func TestPostgresStore_Mocked(t *testing.T) {
	ctx := context.Background()
	report := sampleReport()

	t.Run("SaveRun Success", func(t *testing.T) {
		withMockStore(t, func(store *PostgresStore, mock sqlmock.Sqlmock) {
			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta("INSERT INTO runs (id, started_at, finished_at, seed, git_commit, cases, failed) VALUES ($1, $2, $3, $4, $5, $6, $7)")).
				WithArgs("run-1", report.Started.UnixNano(), report.Finished.UnixNano(), "18446744073709551615", "abc", 2, 1).
				WillReturnResult(sqlmock.NewResult(1, 1))
			mock.ExpectExec("INSERT INTO cases").
				WithArgs("run-1", "KeyedLookup/N=10/LinearScanArray", "KeyedLookup", "LinearScanArray", "N=10", "passed", "", 2, 100.0).
				WillReturnResult(sqlmock.NewResult(1, 1))
			mock.ExpectExec("INSERT INTO samples").
				WithArgs("run-1", "KeyedLookup/N=10/LinearScanArray", 0, int64(120), int64(0)).
				WillReturnResult(sqlmock.NewResult(1, 1))
			mock.ExpectExec("INSERT INTO samples").
				WithArgs("run-1", "KeyedLookup/N=10/LinearScanArray", 1, int64(80), int64(16)).
				WillReturnResult(sqlmock.NewResult(1, 1))
			mock.ExpectExec("INSERT INTO cases").
				WithArgs("run-1", "KeyedLookup/N=10/HashedLookup", "KeyedLookup", "HashedLookup", "N=10", "disqualified", "oracle violation", 0, 0.0).
				WillReturnResult(sqlmock.NewResult(2, 1))
			mock.ExpectCommit()

			assert.NoError(t, store.SaveRun(ctx, "run-1", "abc", report))
		})
	})

	t.Run("SaveRun Rollback", func(t *testing.T) {
		withMockStore(t, func(store *PostgresStore, mock sqlmock.Sqlmock) {
			mock.ExpectBegin()
			mock.ExpectExec("INSERT INTO runs").WillReturnError(errors.New("insert error"))
			mock.ExpectRollback()

			err := store.SaveRun(ctx, "run-1", "abc", report)
			assert.ErrorContains(t, err, "failed to insert run")
		})
	})

	t.Run("SaveRun Begin Error", func(t *testing.T) {
		withMockStore(t, func(store *PostgresStore, mock sqlmock.Sqlmock) {
			mock.ExpectBegin().WillReturnError(errors.New("no connection"))

			err := store.SaveRun(ctx, "run-1", "abc", report)
			assert.ErrorContains(t, err, "failed to begin transaction")
		})
	})

	t.Run("ListRuns Success", func(t *testing.T) {
		withMockStore(t, func(store *PostgresStore, mock sqlmock.Sqlmock) {
			rows := sqlmock.NewRows([]string{"id", "started_at", "finished_at", "seed", "git_commit", "cases", "failed"}).
				AddRow("run-1", report.Started.UnixNano(), report.Finished.UnixNano(), "7", "abc", 2, 1)
			mock.ExpectQuery(regexp.QuoteMeta("FROM runs ORDER BY started_at DESC LIMIT $1")).
				WithArgs(5).
				WillReturnRows(rows)

			runs, err := store.ListRuns(ctx, 5)
			assert.NoError(t, err)
			if assert.Len(t, runs, 1) {
				assert.Equal(t, uint64(7), runs[0].Seed)
				assert.Equal(t, report.Started, runs[0].StartedAt)
			}
		})
	})

	t.Run("ListRuns Bad Seed", func(t *testing.T) {
		withMockStore(t, func(store *PostgresStore, mock sqlmock.Sqlmock) {
			rows := sqlmock.NewRows([]string{"id", "started_at", "finished_at", "seed", "git_commit", "cases", "failed"}).
				AddRow("run-1", int64(0), int64(0), "not-a-number", "", 0, 0)
			mock.ExpectQuery("FROM runs").WillReturnRows(rows)

			_, err := store.ListRuns(ctx, 5)
			assert.ErrorContains(t, err, "invalid seed")
		})
	})

	t.Run("Cases Error", func(t *testing.T) {
		withMockStore(t, func(store *PostgresStore, mock sqlmock.Sqlmock) {
			mock.ExpectQuery(regexp.QuoteMeta("FROM cases WHERE run_id = $1")).
				WithArgs("run-1").
				WillReturnError(errors.New("query error"))

			_, err := store.Cases(ctx, "run-1")
			assert.ErrorContains(t, err, "failed to query cases")
		})
	})

	t.Run("Samples Success", func(t *testing.T) {
		withMockStore(t, func(store *PostgresStore, mock sqlmock.Sqlmock) {
			rows := sqlmock.NewRows([]string{"trial", "duration_ns", "alloc_bytes"}).
				AddRow(0, int64(50), int64(8)).
				AddRow(1, int64(60), int64(8))
			mock.ExpectQuery(regexp.QuoteMeta("FROM samples WHERE run_id = $1 AND case_id = $2")).
				WithArgs("run-1", "C").
				WillReturnRows(rows)

			samples, err := store.Samples(ctx, "run-1", "C")
			assert.NoError(t, err)
			assert.Len(t, samples, 2)
		})
	})
}
