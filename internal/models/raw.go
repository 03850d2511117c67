package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrNotObject is returned when a payload element is not a JSON object.
var ErrNotObject = errors.New("record is not a JSON object")

// RawJobRecord is one vacancy as received from the listing API. Every field
// is optional; a field with the wrong JSON type decodes as absent.
type RawJobRecord struct {
	NumericID     string
	StringID      string
	AltID         string
	Title         *string
	Description   *string
	Qualification *string
	WorkType      *string
	Status        *int
	CompanyName   *string
	CompanyLogo   *string
	CompanyCity   *string
	SalaryMin     *float64
	SalaryMax     *float64
	CreatedAt     *string
}

// UnmarshalJSON decodes field by field so one malformed value never
// discards the rest of the record.
func (r *RawJobRecord) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return ErrNotObject
	}
	if fields == nil {
		return ErrNotObject
	}

	*r = RawJobRecord{}
	if raw, ok := fields["id"]; ok {
		if num, ok := numberLiteral(raw); ok {
			r.NumericID = num
		} else if s := looseString(raw); s != nil {
			r.StringID = strings.TrimSpace(*s)
		}
	}
	if s := looseString(fields["_id"]); s != nil {
		r.AltID = strings.TrimSpace(*s)
	}

	r.Title = looseString(fields["title"])
	r.Description = looseString(fields["job_description"])
	r.Qualification = looseString(fields["job_qualification"])
	r.WorkType = looseString(fields["job_type"])
	r.Status = looseInt(fields["job_status"])
	r.CompanyName = looseString(fields["company_name"])
	r.CompanyLogo = looseString(fields["company_image_url"])
	r.CompanyCity = looseString(fields["company_city"])
	r.SalaryMin = looseNumber(fields["salary_min"])
	r.SalaryMax = looseNumber(fields["salary_max"])
	r.CreatedAt = looseString(fields["createdAt"])
	return nil
}

func numberLiteral(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '"' {
		return "", false
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return "", false
	}
	if n, err := num.Int64(); err == nil {
		return strconv.FormatInt(n, 10), true
	}
	f, err := num.Float64()
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}

func looseString(raw json.RawMessage) *string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		return &s
	}
	if num, ok := numberLiteral(raw); ok {
		return &num
	}
	return nil
}

func looseNumber(raw json.RawMessage) *float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isNull(raw) {
		return nil
	}
	var f float64
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
		f = parsed
	} else if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &f
}

func looseInt(raw json.RawMessage) *int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isNull(raw) || raw[0] == '"' {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return nil
	}
	n := int(f)
	return &n
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}
