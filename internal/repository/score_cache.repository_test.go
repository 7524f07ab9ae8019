package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"
	"tradescore/internal/domain"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/require"
)

func cachedPayloadFixture() domain.ScorePayload {
	return domain.ScorePayload{
		Fingerprint:           "abc123",
		RubricVersion:         "1.0.0",
		CalibrationVersion:    "none",
		RawScore:              81.25,
		CalibratedProbability: 0.81,
		Reasons:               []string{"delta_short: 0.12 → 80"},
		Violations:            []string{},
		Confidence:            domain.ConfidenceHigh,
		PolicyID:              "baseline",
	}
}

func Test_scoreCacheRepositoryHandler_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("hit decodes the stored payload", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		handler := scoreCacheRepositoryHandler{client}

		payload := cachedPayloadFixture()
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		mock.ExpectGet("score:1.0.0:none:abc123").SetVal(string(data))

		out, found, err := handler.Get(ctx, "score:1.0.0:none:abc123")
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, payload, *out)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss is not an error", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		handler := scoreCacheRepositoryHandler{client}

		mock.ExpectGet("score:1.0.0:none:missing").RedisNil()

		out, found, err := handler.Get(ctx, "score:1.0.0:none:missing")
		require.NoError(t, err)
		require.False(t, found)
		require.Nil(t, out)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unreachable server surfaces an error", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		handler := scoreCacheRepositoryHandler{client}

		mock.ExpectGet("score:1.0.0:none:abc123").SetErr(redis.TxFailedErr)

		_, found, err := handler.Get(ctx, "score:1.0.0:none:abc123")
		require.Error(t, err)
		require.False(t, found)
	})

	t.Run("corrupt payload surfaces an error", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		handler := scoreCacheRepositoryHandler{client}

		mock.ExpectGet("score:1.0.0:none:abc123").SetVal("{not json")

		_, found, err := handler.Get(ctx, "score:1.0.0:none:abc123")
		require.Error(t, err)
		require.False(t, found)
	})
}

func Test_scoreCacheRepositoryHandler_Set(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the encoded payload with a ttl", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		handler := scoreCacheRepositoryHandler{client}

		payload := cachedPayloadFixture()
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		mock.ExpectSet("score:1.0.0:none:abc123", data, time.Hour).SetVal("OK")

		err = handler.Set(ctx, "score:1.0.0:none:abc123", payload, time.Hour)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("write failure surfaces an error", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		handler := scoreCacheRepositoryHandler{client}

		payload := cachedPayloadFixture()
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		mock.ExpectSet("score:1.0.0:none:abc123", data, time.Hour).SetErr(redis.TxFailedErr)

		err = handler.Set(ctx, "score:1.0.0:none:abc123", payload, time.Hour)
		require.Error(t, err)
	})
}
