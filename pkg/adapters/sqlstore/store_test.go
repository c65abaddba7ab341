package sqlstore_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aretw0/thermoprops/pkg/adapters/sqlstore"
	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/aretw0/thermoprops/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_Contract(t *testing.T) {
	db, err := sqlstore.Open(sqlstore.SQLite, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	store, err := sqlstore.New(context.Background(), db, sqlstore.SQLite)
	require.NoError(t, err)

	ports.RunQueryStoreContract(t, store)
}

func TestNew_UnsupportedDialect(t *testing.T) {
	_, err := sqlstore.New(context.Background(), nil, "oracle")
	assert.Error(t, err)
}

func TestPostgresStore_Statements(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS workspaces")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	store, err := sqlstore.New(ctx, db, sqlstore.Postgres)
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO workspaces (id, query, updated_at) VALUES ($1, $2, $3)")).
		WithArgs("ws-1", "fluid=Argon", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, store.Save(ctx, "ws-1", "fluid=Argon"))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT query FROM workspaces WHERE id = $1")).
		WithArgs("ws-1").
		WillReturnRows(sqlmock.NewRows([]string{"query"}).AddRow("fluid=Argon"))
	got, err := store.Load(ctx, "ws-1")
	require.NoError(t, err)
	assert.Equal(t, "fluid=Argon", got)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT query FROM workspaces WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"query"}))
	_, err = store.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrWorkspaceNotFound)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM workspaces WHERE id = $1")).
		WithArgs("ws-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, store.Delete(ctx, "ws-1"))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM workspaces ORDER BY updated_at DESC, id")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("b").AddRow("a"))
	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DatabaseErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	mock.ExpectExec("CREATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	store, err := sqlstore.New(ctx, db, sqlstore.SQLite, sqlstore.WithTable("ws"))
	require.NoError(t, err)

	boom := errors.New("connection reset")
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ws")).WillReturnError(boom)
	assert.ErrorIs(t, store.Save(ctx, "x", "q"), boom)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT query FROM ws WHERE id = ?")).WillReturnError(boom)
	_, err = store.Load(ctx, "x")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrWorkspaceNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied"))
	_, err = sqlstore.New(context.Background(), db, sqlstore.Postgres)
	assert.Error(t, err)
}
