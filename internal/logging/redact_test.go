package logging

import "testing"

func TestShouldMask(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"passphrase", true},
		{"BORG_PASSPHRASE", true},
		{"passcommand", true},
		{"api_key", true},
		{"password", true},
		{"repository", false},
		{"archive", false},
		{"path", false},
	}
	for _, tt := range tests {
		if got := ShouldMask(tt.key); got != tt.want {
			t.Errorf("ShouldMask(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestMaskValue(t *testing.T) {
	if got := MaskValue("abc"); got != "********" {
		t.Errorf("short value = %q", got)
	}
	if got := MaskValue("hunter2swordfish"); got != "****fish" {
		t.Errorf("long value = %q", got)
	}
}
