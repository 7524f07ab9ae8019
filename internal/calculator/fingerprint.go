package calculator

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"tradescore/internal/domain"
)

// Fingerprint hashes the canonicalized trade draft and factor map. Map
// keys marshal in sorted order at every nesting level, so logically
// identical inputs hash the same regardless of insertion order.
func Fingerprint(draft domain.TradeDraft, factors map[string]interface{}) (string, error) {
	input := struct {
		TradeDraft domain.TradeDraft      `json:"tradeDraft"`
		Factors    map[string]interface{} `json:"factors"`
	}{
		TradeDraft: draft,
		Factors:    factors,
	}

	inputBytes, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize scoring input: %w", err)
	}

	hasher := sha256.New()
	hasher.Write(inputBytes)
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
