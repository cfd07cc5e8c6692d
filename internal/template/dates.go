// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package template

import (
	"fmt"
	"time"

	"github.com/pelletier/go-toml/v2"

	seedererrors "github.com/sirseerhq/backlog-seeder/internal/errors"
)

// dateOnly is the short absolute form accepted alongside RFC-3339.
const dateOnly = "2006-01-02"

// deltaUnits maps time-delta table keys to their duration unit.
var deltaUnits = map[string]time.Duration{
	"weeks":        7 * 24 * time.Hour,
	"days":         24 * time.Hour,
	"hours":        time.Hour,
	"minutes":      time.Minute,
	"seconds":      time.Second,
	"milliseconds": time.Millisecond,
	"microseconds": time.Microsecond,
}

// DateValue holds a raw TOML date value: an absolute timestamp (TOML
// datetime, bare date, or string) or a time-delta table such as
// {days = -3}. Validation is deferred to resolution so that errors can
// carry the issue's position in the template.
type DateValue struct {
	raw any
}

// UnmarshalTOML captures the raw TOML value without interpreting it.
func (d *DateValue) UnmarshalTOML(v any) error {
	d.raw = v
	return nil
}

// IsZero reports whether the template set no value.
func (d DateValue) IsZero() bool {
	return d.raw == nil
}

// resolveBase interprets config.basedate. Only absolute values are
// allowed; a time-delta table here has nothing to anchor against.
func resolveBase(v DateValue) (*time.Time, error) {
	switch raw := v.raw.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &raw, nil
	case toml.LocalDate:
		ts := time.Date(raw.Year, time.Month(raw.Month), raw.Day, 0, 0, 0, 0, time.UTC)
		return &ts, nil
	case string:
		ts, err := parseAbsolute(raw)
		if err != nil {
			return nil, fmt.Errorf("config.basedate: %w", err)
		}
		return &ts, nil
	default:
		return nil, fmt.Errorf("config.basedate must be an absolute timestamp: %w", seedererrors.ErrInvalidDate)
	}
}

// resolveDueDate turns a due date value into an RFC-3339 string, or ""
// when no due date is set. Absolute values pass through; time-delta
// tables are added to base. String values are placeholder-resolved
// before being parsed.
func resolveDueDate(v DateValue, repl map[string]string, base *time.Time) (string, error) {
	switch raw := v.raw.(type) {
	case nil:
		return "", nil
	case time.Time:
		return raw.Format(time.RFC3339), nil
	case toml.LocalDate:
		return raw.String(), nil
	case string:
		s, err := Resolve(raw, repl)
		if err != nil {
			return "", err
		}
		if _, err := parseAbsolute(s); err != nil {
			return "", err
		}
		return s, nil
	case map[string]any:
		if base == nil {
			return "", fmt.Errorf("relative due date requires config.basedate: %w", seedererrors.ErrMissingBaseDate)
		}
		delta, err := sumDelta(raw)
		if err != nil {
			return "", err
		}
		return base.Add(delta).Format(time.RFC3339), nil
	default:
		return "", fmt.Errorf("due date must be a timestamp or a time-delta table, got %T: %w", raw, seedererrors.ErrInvalidDate)
	}
}

func parseAbsolute(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if ts, err := time.Parse(dateOnly, s); err == nil {
		return ts, nil
	}
	return time.Time{}, fmt.Errorf("%q is not a recognized timestamp: %w", s, seedererrors.ErrInvalidDate)
}

func sumDelta(fields map[string]any) (time.Duration, error) {
	var total time.Duration
	for key, raw := range fields {
		unit, ok := deltaUnits[key]
		if !ok {
			return 0, fmt.Errorf("unknown time-delta key %q: %w", key, seedererrors.ErrInvalidDate)
		}
		n, ok := raw.(int64)
		if !ok {
			return 0, fmt.Errorf("time-delta key %q must be an integer: %w", key, seedererrors.ErrInvalidDate)
		}
		total += time.Duration(n) * unit
	}
	return total, nil
}
