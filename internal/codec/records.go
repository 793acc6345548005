package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/gradix/internal/domain/gradient"
)

// RecordsKey is the key the saved gradient list is persisted under.
const RecordsKey = "savedGradients"

// EncodeRecords serializes the saved list as a JSON array.
func EncodeRecords(gradients []gradient.Gradient) (string, error) {
	if gradients == nil {
		gradients = []gradient.Gradient{}
	}

	data, err := json.Marshal(gradients)
	if err != nil {
		return "", fmt.Errorf("failed to encode saved gradients: %w", err)
	}
	return string(data), nil
}

// DecodeRecords parses a persisted list. It never fails: an empty or corrupt
// payload yields an empty list, and records that cannot be normalized or
// carry no id are dropped. Anything skipped is reported through the returned
// error so the caller can log it.
func DecodeRecords(data string) ([]gradient.Gradient, error) {
	if strings.TrimSpace(data) == "" {
		return []gradient.Gradient{}, nil
	}

	var raw []gradientRecord
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return []gradient.Gradient{}, fmt.Errorf("saved gradients are corrupt: %w", err)
	}

	out := make([]gradient.Gradient, 0, len(raw))
	var problems []error
	for i, rec := range raw {
		g, err := rec.canonical(true)
		if err != nil {
			problems = append(problems, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		if g.ID == "" {
			problems = append(problems, fmt.Errorf("record %d: missing id", i))
			continue
		}
		out = append(out, g)
	}

	return out, errors.Join(problems...)
}
