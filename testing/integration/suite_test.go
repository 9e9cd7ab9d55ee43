package integration

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitinet/dblink-core"
	"github.com/nitinet/dblink-core/adapter"
)

// schema holds the dialect specific DDL used by the suite.
type schema struct {
	drop   []string
	create []string
}

func setupSchema(ctx context.Context, t *testing.T, db *adapter.DB, s schema) {
	t.Helper()
	for _, q := range append(append([]string{}, s.drop...), s.create...) {
		if _, err := db.Run(ctx, q, nil, nil); err != nil {
			t.Fatalf("Failed to execute SQL: %v\nSQL: %s", err, q)
		}
	}
}

// toFloat normalizes numeric results that drivers return in different forms.
func toFloat(t *testing.T, v any) float64 {
	t.Helper()
	switch x := v.(type) {
	case float64:
		return x
	case int64:
		return float64(x)
	case string:
		f, err := strconv.ParseFloat(x, 64)
		require.NoError(t, err)
		return f
	default:
		t.Fatalf("unexpected numeric value %#v (%T)", v, v)
		return 0
	}
}

func names(rows []map[string]any) []any {
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r["name"]
	}
	return out
}

// runSuite exercises the compiler and adapter end to end on one database.
func runSuite(t *testing.T, db *adapter.DB, s schema) {
	ctx := context.Background()
	setupSchema(ctx, t, db, s)
	h := db.Dialect()

	users := dblink.T("users")
	seed := []struct {
		name   string
		age    int
		active bool
	}{
		{"alice", 31, true},
		{"bob", 25, true},
		{"carol", 19, false},
	}
	for _, u := range seed {
		_, err := db.RunStatement(ctx, nil, dblink.Insert(users).
			Columns(dblink.Cols("name", "age", "active")...).
			Values(u.name, u.age, u.active).
			MustBuild())
		require.NoError(t, err, "insert %s", u.name)
	}

	rs, err := db.RunStatement(ctx, nil, dblink.Select(users).
		Columns(dblink.Cols("id", "name")...).
		OrderBy(dblink.Asc(dblink.C("", "id"))).
		MustBuild())
	require.NoError(t, err)
	require.Len(t, rs.Rows, 3)
	ids := make(map[string]any, len(rs.Rows))
	for _, r := range rs.Rows {
		ids[fmt.Sprint(r["name"])] = r["id"]
	}

	orders := dblink.T("orders")
	for _, o := range []struct {
		user  string
		total float64
	}{{"alice", 10.5}, {"alice", 20}, {"bob", 7.25}} {
		_, err := db.RunStatement(ctx, nil, dblink.Insert(orders).
			Columns(dblink.Cols("user_id", "total")...).
			Values(ids[o.user], o.total).
			MustBuild())
		require.NoError(t, err)
	}

	t.Run("where", func(t *testing.T) {
		rs, err := db.RunStatement(ctx, nil, dblink.Select(users).
			Columns(dblink.C("", "name")).
			Where(dblink.Eq(dblink.C("", "active"), true)).
			Where(dblink.Between(dblink.C("", "age"), 20, 40)).
			OrderBy(dblink.Desc(dblink.C("", "name"))).
			MustBuild())
		require.NoError(t, err)
		assert.Equal(t, []any{"bob", "alice"}, names(rs.Rows))
	})

	t.Run("or and like", func(t *testing.T) {
		rs, err := db.RunStatement(ctx, nil, dblink.Select(users).
			Columns(dblink.C("", "name")).
			Where(dblink.Or(
				dblink.Like(dblink.C("", "name"), "c%"),
				dblink.Lt(dblink.C("", "age"), 26),
			)).
			OrderBy(dblink.Asc(dblink.C("", "name"))).
			MustBuild())
		require.NoError(t, err)
		assert.Equal(t, []any{"bob", "carol"}, names(rs.Rows))
	})

	t.Run("paging", func(t *testing.T) {
		rs, err := db.RunStatement(ctx, nil, dblink.Select(users).
			Columns(dblink.C("", "name")).
			OrderBy(dblink.Asc(dblink.C("", "id"))).
			Limit(1).
			Offset(1).
			MustBuild())
		require.NoError(t, err)
		assert.Equal(t, []any{"bob"}, names(rs.Rows))
	})

	t.Run("join and group by", func(t *testing.T) {
		u, o := dblink.T("users", "u"), dblink.T("orders", "o")
		joined := dblink.Join(dblink.InnerJoin, u, o, dblink.Eq(dblink.C("u", "id"), dblink.C("o", "user_id")))
		rs, err := db.RunStatement(ctx, nil, dblink.Select(joined).
			Columns(dblink.C("u", "name"), dblink.E("count(o.id) as order_count"), dblink.E("sum(o.total) as spent")).
			GroupBy(dblink.C("u", "name")).
			OrderBy(dblink.Asc(dblink.C("u", "name"))).
			MustBuild())
		require.NoError(t, err)
		require.Len(t, rs.Rows, 2)

		assert.Equal(t, "alice", rs.Rows[0]["name"])
		assert.InDelta(t, 2, toFloat(t, rs.Rows[0]["order_count"]), 0)
		assert.InDelta(t, 30.5, toFloat(t, rs.Rows[0]["spent"]), 0.001)
		assert.Equal(t, "bob", rs.Rows[1]["name"])
		assert.InDelta(t, 7.25, toFloat(t, rs.Rows[1]["spent"]), 0.001)
	})

	t.Run("exists subquery", func(t *testing.T) {
		big := dblink.Select(dblink.T("orders", "o")).
			Columns(dblink.C("o", "id")).
			Where(dblink.Eq(dblink.C("o", "user_id"), dblink.C("u", "id"))).
			Where(dblink.Gt(dblink.C("o", "total"), 15)).
			MustBuild()
		rs, err := db.RunStatement(ctx, nil, dblink.Select(dblink.T("users", "u")).
			Columns(dblink.C("u", "name")).
			Where(dblink.Exists(dblink.SubExpr(h, big))).
			MustBuild())
		require.NoError(t, err)
		assert.Equal(t, []any{"alice"}, names(rs.Rows))
	})

	t.Run("update arithmetic", func(t *testing.T) {
		rs, err := db.RunStatement(ctx, nil, dblink.Update(users).
			Set(dblink.C("", "age"), dblink.Plus(dblink.C("", "age"), 1)).
			Where(dblink.Eq(dblink.C("", "name"), "carol")).
			MustBuild())
		require.NoError(t, err)
		assert.Equal(t, int64(1), rs.RowCount)

		rs, err = db.RunStatement(ctx, nil, dblink.Select(users).
			Columns(dblink.C("", "age")).
			Where(dblink.Eq(dblink.C("", "name"), "carol")).
			MustBuild())
		require.NoError(t, err)
		require.Len(t, rs.Rows, 1)
		assert.InDelta(t, 20, toFloat(t, rs.Rows[0]["age"]), 0)
	})

	t.Run("transaction rollback", func(t *testing.T) {
		sess, err := db.GetConnection(ctx)
		require.NoError(t, err)
		defer func() { _ = db.Close(sess) }()

		require.NoError(t, db.InitTransaction(ctx, sess))
		rs, err := db.RunStatement(ctx, sess, dblink.Delete(orders).
			Where(dblink.In(dblink.C("", "user_id"), ids["alice"], ids["bob"])).
			MustBuild())
		require.NoError(t, err)
		assert.Equal(t, int64(3), rs.RowCount)
		require.NoError(t, db.Rollback(sess))

		rs, err = db.RunStatement(ctx, sess, dblink.Select(orders).Columns(dblink.C("", "id")).MustBuild())
		require.NoError(t, err)
		assert.Len(t, rs.Rows, 3)
	})

	t.Run("stream", func(t *testing.T) {
		st, err := db.StreamStatement(ctx, nil, dblink.Select(users).
			Columns(dblink.C("", "name")).
			Where(dblink.NotNull(dblink.C("", "name"))).
			OrderBy(dblink.Asc(dblink.C("", "name"))).
			MustBuild())
		require.NoError(t, err)
		defer func() { _ = st.Close() }()

		var got []any
		for st.Next() {
			got = append(got, st.Row()["name"])
		}
		require.NoError(t, st.Err())
		assert.Equal(t, []any{"alice", "bob", "carol"}, got)
	})

	t.Run("returning", func(t *testing.T) {
		stmt := dblink.Insert(users).
			Columns(dblink.Cols("name", "age", "active")...).
			Values("dave", 40, false).
			Returning(dblink.C("", "id")).
			MustBuild()

		rs, err := db.RunStatement(ctx, nil, stmt)
		var unsupported dblink.UnsupportedFeatureError
		if errors.As(err, &unsupported) {
			assert.Equal(t, "RETURNING", unsupported.Feature)
			return
		}
		require.NoError(t, err)
		assert.NotNil(t, rs.ID)
	})

	t.Run("delete", func(t *testing.T) {
		_, err := db.RunStatement(ctx, nil, dblink.Delete(orders).MustBuild())
		require.NoError(t, err)
		rs, err := db.RunStatement(ctx, nil, dblink.Delete(users).
			Where(dblink.Ge(dblink.C("", "age"), 20)).
			MustBuild())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, rs.RowCount, int64(3))
	})
}
