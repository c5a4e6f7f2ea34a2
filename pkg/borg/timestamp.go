package borg

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// borg prints naive ISO-8601 timestamps in the local zone of the machine
// that ran it, with or without a fractional part.
const (
	timestampLayout      = "2006-01-02T15:04:05"
	timestampLayoutMicro = "2006-01-02T15:04:05.000000"
)

// Timestamp is a point in time decoded from borg's JSON output. borg
// emits zone-less local timestamps; they are interpreted in this
// process's local zone.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON decodes a naive ISO-8601 string.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := parseNaiveTime(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalJSON renders the timestamp back in borg's own format.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(timestampLayoutMicro) + `"`), nil
}

func parseNaiveTime(s string) (time.Time, error) {
	layout := timestampLayout
	if strings.ContainsRune(s, '.') {
		layout = timestampLayoutMicro
	}
	parsed, err := time.ParseInLocation(layout, s, time.Local)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parsing timestamp %q", s)
	}
	return parsed, nil
}
