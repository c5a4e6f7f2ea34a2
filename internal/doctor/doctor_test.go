package doctor

import (
	"context"
	"testing"
)

// stubCheck returns a fixed result for runner tests.
type stubCheck struct {
	name   string
	status Severity
}

func (c stubCheck) Name() string     { return c.name }
func (c stubCheck) Category() string { return "test" }
func (c stubCheck) Run(context.Context) *CheckResult {
	return &CheckResult{Name: c.name, Category: "test", Status: c.status}
}

func TestRunnerAggregatesSummary(t *testing.T) {
	r := NewRunner()
	r.AddCheck(stubCheck{name: "a", status: SeverityPass})
	r.AddCheck(stubCheck{name: "b", status: SeverityWarning})
	r.AddCheck(stubCheck{name: "c", status: SeverityError})
	r.AddCheck(stubCheck{name: "d", status: SeverityInfo})

	report := r.Run(context.Background())

	if len(report.Results) != 4 {
		t.Fatalf("got %d results, want 4", len(report.Results))
	}
	if report.Summary.Passed != 1 || report.Summary.Warnings != 1 ||
		report.Summary.Errors != 1 || report.Summary.Info != 1 {
		t.Errorf("summary = %+v", report.Summary)
	}
	if !report.HasErrors() {
		t.Error("HasErrors() = false, want true")
	}
	if !report.HasWarnings() {
		t.Error("HasWarnings() = false, want true")
	}
}

func TestRunnerPreservesCheckOrder(t *testing.T) {
	r := NewRunner()
	r.AddCheck(stubCheck{name: "first", status: SeverityPass})
	r.AddCheck(stubCheck{name: "second", status: SeverityPass})

	report := r.Run(context.Background())

	if report.Results[0].Name != "first" || report.Results[1].Name != "second" {
		t.Errorf("results out of order: %q, %q", report.Results[0].Name, report.Results[1].Name)
	}
	if report.HasErrors() || report.HasWarnings() {
		t.Error("clean run should have no errors or warnings")
	}
}

func TestSeverityString(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityPass, "pass"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.severity.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.severity, got, tt.want)
		}
	}
}
