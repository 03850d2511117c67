package source

import (
	"bytes"
	"encoding/json"

	"github.com/nextcareer/nextcareer/internal/models"
	"github.com/rs/zerolog"
)

// DecodePayload accepts a bare array, {"data": [...]} or {"jobs": [...]}.
// Any other body yields no records. Elements that are not objects are
// skipped and logged.
func DecodePayload(body []byte, logger zerolog.Logger) []models.RawJobRecord {
	elements, ok := payloadElements(body)
	if !ok {
		logger.Warn().Int("bytes", len(body)).Msg("unrecognized payload shape")
		return []models.RawJobRecord{}
	}

	records := make([]models.RawJobRecord, 0, len(elements))
	for idx, element := range elements {
		var record models.RawJobRecord
		if err := json.Unmarshal(element, &record); err != nil {
			logger.Warn().Int("index", idx).Err(err).Msg("skipping record")
			continue
		}
		records = append(records, record)
	}
	return records
}

func payloadElements(body []byte) ([]json.RawMessage, bool) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, false
	}

	switch body[0] {
	case '[':
		return rawArray(body)
	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, false
		}
		for _, key := range []string{"data", "jobs"} {
			if elements, ok := rawArray(envelope[key]); ok {
				return elements, true
			}
		}
	}
	return nil, false
}

func rawArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, false
	}
	return elements, true
}
