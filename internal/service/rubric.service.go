package service

import (
	"context"
	"errors"
	"fmt"
	"tradescore/internal/domain"
	"tradescore/internal/logger"
	"tradescore/internal/repository"
)

// RubricService resolves a strategy name to the rubric that should score
// it. The engine must always be able to score something, so every lookup
// failure short of corrupt configuration falls back to the built-in
// default rubric. Loaded rubrics are immutable; callers share them across
// an evaluation batch without copying.
type RubricService interface {
	Load(ctx context.Context, strategy string) (*domain.StrategyRubric, error)
}

type rubricServiceHandler struct {
	RubricRepository repository.RubricRepository
}

func NewRubricService(rubricRepository repository.RubricRepository) RubricService {
	return rubricServiceHandler{
		RubricRepository: rubricRepository,
	}
}

func (h rubricServiceHandler) Load(ctx context.Context, strategy string) (*domain.StrategyRubric, error) {
	lg := logger.FromContext(ctx)

	row, err := h.RubricRepository.Get(strategy)
	if err != nil {
		lg.Warnf("rubric lookup for %s failed, using default: %v", strategy, err)
		return domain.DefaultRubric(strategy), nil
	}
	if row == nil {
		return domain.DefaultRubric(strategy), nil
	}

	rubric, warnings, err := domain.ParseRubric([]byte(row.Document))
	if err != nil {
		// a weight pointing at a criterion that doesn't exist is the one
		// configuration error we refuse to paper over
		if errors.Is(err, domain.ErrWeightCriterionMismatch) {
			return nil, fmt.Errorf("rubric %s (%s) is corrupt: %w", row.Name, row.RubricVersion, err)
		}
		lg.Warnf("failed to parse rubric document for %s, using default: %v", strategy, err)
		return domain.DefaultRubric(strategy), nil
	}
	for _, warning := range warnings {
		lg.Warnf("rubric %s (%s): %s", rubric.Name, rubric.RubricVersion, warning)
	}

	return rubric, nil
}
