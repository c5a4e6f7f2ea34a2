package borglog

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
)

// Record types emitted by borg with --log-json.
const (
	TypeLogMessage      = "log_message"
	TypeFileStatus      = "file_status"
	TypeArchiveProgress = "archive_progress"
	TypeProgressMessage = "progress_message"
	TypeProgressPercent = "progress_percent"
)

// Message IDs that callers branch on. The full set is open-ended; these are
// the ones with dedicated handling upstream.
const (
	IDRepositoryAlreadyExists = "Repository.AlreadyExists"
	IDRepositoryDoesNotExist  = "Repository.DoesNotExist"
	IDRepositoryCheckNeeded   = "Repository.CheckNeeded"
	IDArchiveAlreadyExists    = "Archive.AlreadyExists"
	IDArchiveDoesNotExist     = "Archive.DoesNotExist"
	IDPassphraseWrong         = "PassphraseWrong"
	IDLockTimeout             = "LockTimeout"
	IDLockError               = "LockError"
)

// Record is one parsed stderr line. Fields are populated according to Type;
// unknown record types and unknown fields are tolerated so newer borg
// versions do not break parsing.
type Record struct {
	Type      string  `json:"type"`
	Time      float64 `json:"time"`
	LevelName string  `json:"levelname"`
	Name      string  `json:"name"`
	Message   string  `json:"message"`
	MsgID     string  `json:"msgid"`

	// archive_progress fields.
	OriginalSize     uint64 `json:"original_size"`
	CompressedSize   uint64 `json:"compressed_size"`
	DeduplicatedSize uint64 `json:"deduplicated_size"`
	NFiles           uint64 `json:"nfiles"`
	Path             string `json:"path"`
	Finished         bool   `json:"finished"`

	// Raw holds the original line when it was not valid JSON.
	Raw string `json:"-"`
}

// ParseLine parses a single stderr line. Non-JSON lines come back as a
// Record with only Raw set.
func ParseLine(line string) Record {
	var rec Record
	if err := json.Unmarshal([]byte(line), &rec); err != nil || rec.Type == "" {
		return Record{Raw: line}
	}
	return rec
}

// Parse splits captured stderr into records, one per non-empty line.
func Parse(stderr []byte) []Record {
	var records []Record
	scanner := bufio.NewScanner(bytes.NewReader(stderr))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		records = append(records, ParseLine(line))
	}
	return records
}

// Level maps borg's levelname onto a slog level. Unknown names map to Info.
func (r Record) Level() slog.Level {
	switch r.LevelName {
	case "DEBUG":
		return slog.LevelDebug
	case "WARNING":
		return slog.LevelWarn
	case "ERROR", "CRITICAL":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Text renders the records as plain human-readable lines, dropping progress
// noise. This is what surfaces as warning or error detail to callers.
func Text(records []Record) string {
	var b strings.Builder
	for _, r := range records {
		switch {
		case r.Raw != "":
			b.WriteString(r.Raw)
		case r.Type == TypeLogMessage:
			b.WriteString(r.Message)
		default:
			continue
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

// FirstErrorID returns the message ID of the first error-level log_message,
// or the empty string when none carries one.
func FirstErrorID(records []Record) string {
	for _, r := range records {
		if r.Type == TypeLogMessage && r.Level() >= slog.LevelError && r.MsgID != "" {
			return r.MsgID
		}
	}
	return ""
}

// Forward re-emits log_message records through the given logger at their
// original levels, mirroring what borg itself would have printed.
func Forward(logger *slog.Logger, records []Record) {
	if logger == nil {
		return
	}
	for _, r := range records {
		if r.Type != TypeLogMessage {
			continue
		}
		logger.Log(context.Background(), r.Level(), r.Message,
			slog.String("name", r.Name),
			slog.String("msgid", r.MsgID),
		)
	}
}
