package calculator

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"tradescore/internal/domain"
	"tradescore/internal/util"
)

func Test_Fingerprint(t *testing.T) {
	t.Run("deterministic across calls", func(t *testing.T) {
		draft := validDraft()
		factors := map[string]interface{}{
			"delta_short": 0.12,
			"iv_rank":     55,
			"strategy":    "put-credit-spread",
		}

		first, err := Fingerprint(draft, factors)
		require.NoError(t, err)
		second, err := Fingerprint(draft, factors)
		require.NoError(t, err)

		require.Equal(t, first, second)
		require.Len(t, first, 64)
	})

	t.Run("insertion order does not matter", func(t *testing.T) {
		draft := validDraft()

		forward := map[string]interface{}{}
		forward["delta_short"] = 0.12
		forward["iv_rank"] = 55
		forward["macro_event_flag"] = false

		reversed := map[string]interface{}{}
		reversed["macro_event_flag"] = false
		reversed["iv_rank"] = 55
		reversed["delta_short"] = 0.12

		a, err := Fingerprint(draft, forward)
		require.NoError(t, err)
		b, err := Fingerprint(draft, reversed)
		require.NoError(t, err)

		require.Equal(t, a, b)
	})

	t.Run("nested maps canonicalize too", func(t *testing.T) {
		draft := validDraft()

		a, err := Fingerprint(draft, map[string]interface{}{
			"legs": map[string]interface{}{"short": 180, "long": 175},
		})
		require.NoError(t, err)
		b, err := Fingerprint(draft, map[string]interface{}{
			"legs": map[string]interface{}{"long": 175, "short": 180},
		})
		require.NoError(t, err)

		require.Equal(t, a, b)
	})

	t.Run("numeric encodings that marshal alike hash alike", func(t *testing.T) {
		draft := validDraft()

		asInt, err := Fingerprint(draft, map[string]interface{}{"iv_rank": 55})
		require.NoError(t, err)
		asFloat, err := Fingerprint(draft, map[string]interface{}{"iv_rank": float64(55)})
		require.NoError(t, err)
		asNumber, err := Fingerprint(draft, map[string]interface{}{"iv_rank": json.Number("55")})
		require.NoError(t, err)

		require.Equal(t, asInt, asFloat)
		require.Equal(t, asInt, asNumber)
	})

	t.Run("different factor values change the hash", func(t *testing.T) {
		draft := validDraft()

		a, err := Fingerprint(draft, map[string]interface{}{"iv_rank": 55})
		require.NoError(t, err)
		b, err := Fingerprint(draft, map[string]interface{}{"iv_rank": 56})
		require.NoError(t, err)

		require.NotEqual(t, a, b)
	})

	t.Run("different drafts change the hash", func(t *testing.T) {
		factors := map[string]interface{}{"iv_rank": 55}

		a, err := Fingerprint(validDraft(), factors)
		require.NoError(t, err)

		other := validDraft()
		other.ShortPutStrike = util.DecimalPointer(decimal.NewFromFloat(182.5))
		b, err := Fingerprint(other, factors)
		require.NoError(t, err)

		require.NotEqual(t, a, b)
	})

	t.Run("empty factor map still hashes", func(t *testing.T) {
		got, err := Fingerprint(validDraft(), map[string]interface{}{})
		require.NoError(t, err)
		require.Len(t, got, 64)

		asNil, err := Fingerprint(validDraft(), nil)
		require.NoError(t, err)
		require.NotEqual(t, got, asNil)
	})

	t.Run("unencodable values surface an error", func(t *testing.T) {
		_, err := Fingerprint(validDraft(), map[string]interface{}{
			"fill_vs_mid_bps": math.NaN(),
		})
		require.Error(t, err)
	})
}

func Test_FingerprintIgnoresDraftFieldMutationOrder(t *testing.T) {
	// Struct fields marshal in declaration order, so two drafts with the
	// same values always produce identical JSON.
	a := domain.TradeDraft{Symbol: "SPY", ContractType: "iron-condor"}
	b := domain.TradeDraft{ContractType: "iron-condor", Symbol: "SPY"}

	hashA, err := Fingerprint(a, nil)
	require.NoError(t, err)
	hashB, err := Fingerprint(b, nil)
	require.NoError(t, err)

	require.Equal(t, hashA, hashB)
}
