package repository

import (
	"database/sql"
	"os"
	"testing"
	"tradescore/internal/db/models/postgres/public/model"
	"tradescore/internal/db/models/postgres/public/table"
	"tradescore/internal/util"

	"github.com/go-jet/jet/v2/postgres"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func newRepositoryTestDb(t *testing.T) *sql.DB {
	if os.Getenv("TRADESCORE_TEST_DB") == "" {
		t.Skip("TRADESCORE_TEST_DB not set, skipping db-backed test")
	}
	db, err := util.NewTestDb()
	require.NoError(t, err)

	return db
}

func cleanupScoreTables(db *sql.DB) error {
	if _, err := table.TradeFactorDetail.DELETE().WHERE(postgres.Bool(true)).Exec(db); err != nil {
		return err
	}
	if _, err := table.TradeScore.DELETE().WHERE(postgres.Bool(true)).Exec(db); err != nil {
		return err
	}
	if _, err := table.StrategyRubric.DELETE().WHERE(postgres.Bool(true)).Exec(db); err != nil {
		return err
	}
	return nil
}

func Test_rubricRepositoryHandler_Get(t *testing.T) {
	db := newRepositoryTestDb(t)

	t.Run("no persisted rubric returns nil", func(t *testing.T) {
		require.NoError(t, cleanupScoreTables(db))
		tx, err := db.Begin()
		require.NoError(t, err)
		defer tx.Rollback()

		handler := rubricRepositoryHandler{tx}

		out, err := handler.Get("iron-condor")
		require.NoError(t, err)
		require.Nil(t, out)
	})

	t.Run("round trips a persisted document", func(t *testing.T) {
		require.NoError(t, cleanupScoreTables(db))
		tx, err := db.Begin()
		require.NoError(t, err)
		defer tx.Rollback()

		handler := rubricRepositoryHandler{tx}

		added, err := handler.Add(model.StrategyRubric{
			Name:          "desk-tuned",
			Strategy:      "put-credit-spread",
			RubricVersion: "2.3.0",
			Document:      `{"name": "desk-tuned"}`,
		})
		require.NoError(t, err)

		out, err := handler.Get("put-credit-spread")
		require.NoError(t, err)
		require.NotNil(t, out)
		require.Equal(t, added.StrategyRubricID, out.StrategyRubricID)
		require.Equal(t, "2.3.0", out.RubricVersion)
		require.Equal(t, `{"name": "desk-tuned"}`, out.Document)
	})

	t.Run("other strategies do not leak into the lookup", func(t *testing.T) {
		require.NoError(t, cleanupScoreTables(db))
		tx, err := db.Begin()
		require.NoError(t, err)
		defer tx.Rollback()

		handler := rubricRepositoryHandler{tx}

		_, err = handler.Add(model.StrategyRubric{
			Name:          "baseline",
			Strategy:      "iron-condor",
			RubricVersion: "1.0.0",
			Document:      `{}`,
		})
		require.NoError(t, err)

		out, err := handler.Get("put-credit-spread")
		require.NoError(t, err)
		require.Nil(t, out)
	})
}
