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

type TradeScoreRepository interface {
	Get(fingerprint, rubricVersion, calibrationVersion string) (*model.TradeScore, error)
	Add(m model.TradeScore) (*model.TradeScore, error)
}

type tradeScoreRepositoryHandler struct {
	Db qrm.Queryable
}

func NewTradeScoreRepository(db *sql.DB) TradeScoreRepository {
	return tradeScoreRepositoryHandler{
		Db: db,
	}
}

func (h tradeScoreRepositoryHandler) Get(fingerprint, rubricVersion, calibrationVersion string) (*model.TradeScore, error) {
	query := table.TradeScore.
		SELECT(table.TradeScore.AllColumns).
		WHERE(postgres.AND(
			table.TradeScore.Fingerprint.EQ(postgres.String(fingerprint)),
			table.TradeScore.RubricVersion.EQ(postgres.String(rubricVersion)),
			table.TradeScore.CalibrationVersion.EQ(postgres.String(calibrationVersion)),
		))

	out := model.TradeScore{}
	err := query.Query(h.Db, &out)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get trade score: %w", err)
	}

	return &out, nil
}

// Add upserts on the (fingerprint, rubric version, calibration version)
// unique key. A duplicate write only touches updated_at; the scored
// payload for a given key never changes. A fresh insert comes back with
// created_at == updated_at, which is how callers tell the two apart.
func (h tradeScoreRepositoryHandler) Add(m model.TradeScore) (*model.TradeScore, error) {
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	query := table.TradeScore.
		INSERT(table.TradeScore.MutableColumns).
		MODEL(m).
		ON_CONFLICT(
			table.TradeScore.Fingerprint,
			table.TradeScore.RubricVersion,
			table.TradeScore.CalibrationVersion,
		).
		DO_UPDATE(
			postgres.SET(
				table.TradeScore.UpdatedAt.SET(table.TradeScore.EXCLUDED.UpdatedAt),
			),
		).
		RETURNING(table.TradeScore.AllColumns)

	out := model.TradeScore{}
	err := query.Query(h.Db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert trade score: %w", err)
	}

	return &out, nil
}
