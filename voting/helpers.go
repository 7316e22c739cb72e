package voting

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

///////////////////////////////////////////////////
// Conversions from/to json strings
///////////////////////////////////////////////////

func ToJSON[T any](v T, objectType string) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s: %w", objectType, err)
	}
	return string(b), nil
}

func FromJSON[T any](data string, objectType string) (*T, error) {
	data = strings.TrimSpace(data)
	var v T
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", objectType, err)
	}
	return &v, nil
}

// LoadSessionConfig reads a JSON session file and normalizes it.
func LoadSessionConfig(path string) (*SessionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := FromJSON[SessionConfig](string(data), "session config")
	if err != nil {
		return nil, err
	}
	cfg.Normalize()
	return cfg, nil
}

// unitRecord is the file form of an NFT unit, token ids as decimal or 0x strings.
type unitRecord struct {
	Owner   string `json:"owner"`
	TokenID string `json:"tokenId"`
}

// LoadUnits reads a JSON array of {"owner","tokenId"} records.
func LoadUnits(path string) ([]VotingPowerUnit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	records, err := FromJSON[[]unitRecord](string(data), "units")
	if err != nil {
		return nil, err
	}
	units := make([]VotingPowerUnit, 0, len(*records))
	for _, r := range *records {
		unit, err := newUnit(r.Owner, r.TokenID)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return units, nil
}
