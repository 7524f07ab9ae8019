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
	"github.com/google/uuid"
)

type TradeFactorDetailRepository interface {
	AddMany(in []*model.TradeFactorDetail) error
	List(tradeScoreID uuid.UUID) ([]model.TradeFactorDetail, error)
}

type tradeFactorDetailRepositoryHandler struct {
	Db qrm.DB
}

func NewTradeFactorDetailRepository(db *sql.DB) TradeFactorDetailRepository {
	return tradeFactorDetailRepositoryHandler{db}
}

func (h tradeFactorDetailRepositoryHandler) AddMany(in []*model.TradeFactorDetail) error {
	if len(in) == 0 {
		return nil
	}

	for _, x := range in {
		x.CreatedAt = time.Now().UTC()
	}
	query := table.TradeFactorDetail.
		INSERT(table.TradeFactorDetail.MutableColumns).
		MODELS(in)

	_, err := query.Exec(h.Db)
	if err != nil {
		return fmt.Errorf("failed to create trade factor details in db: %w", err)
	}

	return nil
}

func (h tradeFactorDetailRepositoryHandler) List(tradeScoreID uuid.UUID) ([]model.TradeFactorDetail, error) {
	query := table.TradeFactorDetail.
		SELECT(table.TradeFactorDetail.AllColumns).
		WHERE(table.TradeFactorDetail.TradeScoreID.EQ(postgres.UUID(tradeScoreID))).
		ORDER_BY(
			table.TradeFactorDetail.CriterionName.ASC(),
			table.TradeFactorDetail.MetricName.ASC(),
		)

	out := []model.TradeFactorDetail{}
	err := query.Query(h.Db, &out)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return out, nil
}
