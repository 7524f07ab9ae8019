package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
	"tradescore/internal/db/models/postgres/public/model"
	"tradescore/internal/db/models/postgres/public/table"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

type RubricRepository interface {
	Get(strategy string) (*model.StrategyRubric, error)
	Add(m model.StrategyRubric) (*model.StrategyRubric, error)
}

type rubricRepositoryHandler struct {
	Db qrm.Queryable
}

func NewRubricRepository(db *sql.DB) RubricRepository {
	return rubricRepositoryHandler{
		Db: db,
	}
}

// Get returns the newest rubric row for a strategy, or nil when none
// has been persisted yet.
func (h rubricRepositoryHandler) Get(strategy string) (*model.StrategyRubric, error) {
	query := table.StrategyRubric.
		SELECT(table.StrategyRubric.AllColumns).
		WHERE(table.StrategyRubric.Strategy.EQ(postgres.String(strategy))).
		ORDER_BY(table.StrategyRubric.CreatedAt.DESC()).
		LIMIT(1)

	out := model.StrategyRubric{}
	err := query.Query(h.Db, &out)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get rubric for strategy %s: %w", strategy, err)
	}

	return &out, nil
}

func (h rubricRepositoryHandler) Add(m model.StrategyRubric) (*model.StrategyRubric, error) {
	m.CreatedAt = time.Now().UTC()
	m.UpdatedAt = time.Now().UTC()

	query := table.StrategyRubric.
		INSERT(table.StrategyRubric.MutableColumns).
		MODEL(m).
		RETURNING(table.StrategyRubric.AllColumns)

	out := model.StrategyRubric{}
	err := query.Query(h.Db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert rubric: %w", err)
	}

	return &out, nil
}
