package leaderboard

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Sanitizer turns untrusted submissions into entries ready for the board.
type Sanitizer struct {
	newID IDGenerator
	now   Clock
}

// NewSanitizer creates a sanitizer that stamps entries with ids from newID and times from now.
func NewSanitizer(newID IDGenerator, now Clock) *Sanitizer {
	if now == nil {
		now = time.Now
	}

	return &Sanitizer{newID: newID, now: now}
}

// Sanitize validates sub and returns a normalized entry.
// Names longer than MaxNameLength are rejected rather than truncated.
func (s *Sanitizer) Sanitize(sub ScoreSubmission) (Entry, error) {
	name := strings.TrimSpace(sub.Name)
	if name == "" {
		return Entry{}, ErrEmptyName
	}

	if utf8.RuneCountInString(name) > MaxNameLength {
		return Entry{}, ErrNameTooLong
	}

	score, ok := coerceNumber(sub.Score)
	if !ok || score < 0 {
		return Entry{}, fmt.Errorf("%w: got %v", ErrInvalidScore, describe(sub.Score))
	}

	level, ok := coerceNumber(sub.Level)
	if !ok || level < 1 {
		return Entry{}, fmt.Errorf("%w: got %v", ErrInvalidLevel, describe(sub.Level))
	}

	return Entry{
		ID:        s.newID(),
		Name:      name,
		Score:     max(0, floorInt(score)),
		Level:     max(1, floorInt(level)),
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
	}, nil
}

// maxExactInteger is the largest integer a float64 holds without rounding.
const maxExactInteger = 1<<53 - 1

// coerceNumber accepts the numeric shapes a decoded JSON body or a Go caller may produce.
func coerceNumber(v any) (float64, bool) {
	var f float64

	switch n := v.(type) {
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case float32:
		f = float64(n)
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}

		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}

		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > maxExactInteger {
		return 0, false
	}

	return f, true
}

func floorInt(f float64) int64 {
	return int64(math.Floor(f))
}

func describe(v any) string {
	if v == nil {
		return "nothing"
	}

	return fmt.Sprintf("%q", fmt.Sprint(v))
}
