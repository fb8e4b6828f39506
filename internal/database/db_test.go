package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

var (
	_ DB = (*pgxpool.Pool)(nil)
	_ DB = (*FakeDB)(nil)
)

type stubRow struct{ id string }

func (r stubRow) Scan(dest ...any) error {
	*dest[0].(*string) = r.id
	return nil
}

func TestFakeDBUnsetPanics(t *testing.T) {
	ctx := context.Background()
	db := &FakeDB{}
	require.PanicsWithValue(t, "unexpected Exec", func() { db.Exec(ctx, "DELETE FROM tasks") })
	require.PanicsWithValue(t, "unexpected Query", func() { db.Query(ctx, "SELECT 1") })
	require.PanicsWithValue(t, "unexpected QueryRow", func() { db.QueryRow(ctx, "SELECT 1") })
	require.PanicsWithValue(t, "unexpected Ping", func() { db.Ping(ctx) })
	require.NotPanics(t, db.Close)
}

func TestFakeDBPingUsesPingFn(t *testing.T) {
	// 只設定 QueryRowFn 時 Ping 仍應視為未設定
	db := &FakeDB{QueryRowFn: func(context.Context, string, ...any) pgx.Row { return stubRow{} }}
	require.Panics(t, func() { db.Ping(context.Background()) })

	down := errors.New("db down")
	db.PingFn = func(context.Context) error { return down }
	require.ErrorIs(t, db.Ping(context.Background()), down)
}

func TestFakeDBForwardsArgs(t *testing.T) {
	ctx := context.Background()
	var gotSQL string
	var gotArgs []any
	db := &FakeDB{
		ExecFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			gotSQL, gotArgs = sql, args
			return pgconn.NewCommandTag("DELETE 1"), nil
		},
		QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			return stubRow{id: args[0].(string)}
		},
	}

	tag, err := db.Exec(ctx, "DELETE FROM tasks WHERE id = $1 AND user_id = $2", "t1", "u1")
	require.NoError(t, err)
	require.EqualValues(t, 1, tag.RowsAffected())
	require.Contains(t, gotSQL, "DELETE FROM tasks")
	require.Equal(t, []any{"t1", "u1"}, gotArgs)

	var id string
	require.NoError(t, db.QueryRow(ctx, "SELECT id FROM users WHERE id = $1", "u1").Scan(&id))
	require.Equal(t, "u1", id)

	closed := 0
	db.CloseFn = func() { closed++ }
	db.Close()
	require.Equal(t, 1, closed)
}
