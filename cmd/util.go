package cmd

import (
	"database/sql"
	"fmt"
	"log"
	"tradescore/internal/calculator"
	"tradescore/internal/repository"
	"tradescore/internal/service"
	"tradescore/internal/util"

	_ "github.com/lib/pq"
)

// Dependencies holds the wired evaluation stack the CLI commands
// dispatch to.
type Dependencies struct {
	Db                *sql.DB
	EvaluationService service.EvaluationService
	NarrativeService  service.NarrativeService
}

func CloseDependencies(deps *Dependencies) {
	err := deps.Db.Close()
	if err != nil {
		log.Fatalf("failed to close db: %v", err)
	}
}

// InitializeDependencies wires the full stack against the configured
// Postgres instance. The redis hot tier and the gpt client are optional:
// when their secrets are absent the cache degrades to row-store-only and
// narratives fall back to the deterministic template.
func InitializeDependencies(calibrator calculator.Calibrator) (*Dependencies, error) {
	secrets, err := util.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	dbConn, err := sql.Open("postgres", secrets.Db.ToConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	var gptRepository repository.GptRepository
	if secrets.ChatGPTApiKey != "" {
		gptRepository, err = repository.NewGptRepository(secrets.ChatGPTApiKey)
		if err != nil {
			return nil, err
		}
	}

	var hotTier repository.ScoreCacheRepository
	if secrets.Redis.Host != "" {
		redisClient := repository.NewRedisClient(secrets.Redis.ToAddr(), secrets.Redis.Password)
		hotTier = repository.NewScoreCacheRepository(redisClient)
	}

	rubricRepository := repository.NewRubricRepository(dbConn)
	tradeScoreRepository := repository.NewTradeScoreRepository(dbConn)
	tradeFactorDetailRepository := repository.NewTradeFactorDetailRepository(dbConn)

	rubricService := service.NewRubricService(rubricRepository)
	scoreCacheService := service.NewScoreCacheService(hotTier, tradeScoreRepository)
	evaluationService := service.NewEvaluationService(
		rubricService,
		scoreCacheService,
		tradeFactorDetailRepository,
		calibrator,
	)

	return &Dependencies{
		Db:                dbConn,
		EvaluationService: evaluationService,
		NarrativeService:  service.NewNarrativeService(gptRepository),
	}, nil
}
