package borglog

import (
	"log/slog"
	"strings"
	"testing"
)

func TestParseLine(t *testing.T) {
	rec := ParseLine(`{"type": "log_message", "levelname": "ERROR", "name": "borg.archiver", "message": "Repository /x does not exist.", "msgid": "Repository.DoesNotExist", "time": 1709290000.5}`)
	if rec.Type != TypeLogMessage {
		t.Fatalf("type = %q", rec.Type)
	}
	if rec.MsgID != IDRepositoryDoesNotExist {
		t.Errorf("msgid = %q", rec.MsgID)
	}
	if rec.Level() != slog.LevelError {
		t.Errorf("level = %v", rec.Level())
	}
	if rec.Raw != "" {
		t.Errorf("raw should be empty for JSON lines, got %q", rec.Raw)
	}
}

func TestParseLineNonJSON(t *testing.T) {
	rec := ParseLine("Killed")
	if rec.Raw != "Killed" {
		t.Errorf("raw = %q", rec.Raw)
	}
	if rec.Type != "" {
		t.Errorf("type = %q", rec.Type)
	}
}

func TestParseLineArchiveProgress(t *testing.T) {
	rec := ParseLine(`{"type": "archive_progress", "original_size": 4096, "compressed_size": 1024, "deduplicated_size": 128, "nfiles": 3, "path": "/etc/hosts", "time": 1.0}`)
	if rec.Type != TypeArchiveProgress {
		t.Fatalf("type = %q", rec.Type)
	}
	if rec.OriginalSize != 4096 || rec.NFiles != 3 || rec.Path != "/etc/hosts" {
		t.Errorf("progress fields lost: %+v", rec)
	}
	if rec.Finished {
		t.Error("finished should be false mid-run")
	}
}

func TestParseSkipsBlankLines(t *testing.T) {
	stderr := []byte("\n" +
		`{"type": "log_message", "levelname": "WARNING", "message": "w1", "name": "borg", "time": 1.0}` + "\n\n" +
		`{"type": "progress_percent", "operation": 1, "msgid": null, "finished": false, "time": 1.0}` + "\n")
	records := Parse(stderr)
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
}

func TestTextDropsProgressNoise(t *testing.T) {
	records := Parse([]byte(strings.Join([]string{
		`{"type": "log_message", "levelname": "WARNING", "message": "file changed", "name": "borg", "time": 1.0}`,
		`{"type": "archive_progress", "original_size": 1, "time": 1.0}`,
		"plain stderr line",
	}, "\n")))

	text := Text(records)
	if text != "file changed\nplain stderr line" {
		t.Errorf("text = %q", text)
	}
}

func TestFirstErrorID(t *testing.T) {
	records := Parse([]byte(strings.Join([]string{
		`{"type": "log_message", "levelname": "WARNING", "message": "w", "name": "borg", "msgid": "LockTimeout", "time": 1.0}`,
		`{"type": "log_message", "levelname": "ERROR", "message": "e1", "name": "borg", "msgid": "PassphraseWrong", "time": 1.0}`,
		`{"type": "log_message", "levelname": "ERROR", "message": "e2", "name": "borg", "msgid": "Repository.DoesNotExist", "time": 1.0}`,
	}, "\n")))

	if got := FirstErrorID(records); got != IDPassphraseWrong {
		t.Errorf("FirstErrorID = %q, want %q", got, IDPassphraseWrong)
	}
}

func TestFirstErrorIDIgnoresWarnings(t *testing.T) {
	records := Parse([]byte(`{"type": "log_message", "levelname": "WARNING", "message": "w", "name": "borg", "msgid": "LockTimeout", "time": 1.0}`))
	if got := FirstErrorID(records); got != "" {
		t.Errorf("FirstErrorID = %q, want empty", got)
	}
}
