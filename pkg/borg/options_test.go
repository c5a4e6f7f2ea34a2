package borg

import (
	"strings"
	"testing"
)

func TestCreateOptionsValidate(t *testing.T) {
	valid := CreateOptions{
		Repository: "/tmp/repo",
		Archive:    "daily-1",
		Paths:      []string{"/etc"},
	}
	if err := valid.validate(); err != nil {
		t.Fatalf("valid options rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*CreateOptions)
		field  string
	}{
		{"empty repository", func(o *CreateOptions) { o.Repository = "" }, "Repository"},
		{"empty archive", func(o *CreateOptions) { o.Archive = "" }, "Archive"},
		{"checkpoint suffix", func(o *CreateOptions) { o.Archive = "daily.checkpoint" }, "Archive"},
		{"numbered checkpoint suffix", func(o *CreateOptions) { o.Archive = "daily.checkpoint.3" }, "Archive"},
		{"nothing to back up", func(o *CreateOptions) { o.Paths = nil }, "Paths"},
		{"zstd level out of range", func(o *CreateOptions) { o.Compression = CompressionZstd(23) }, "Compression"},
		{"zlib level out of range", func(o *CreateOptions) { o.Compression = CompressionZlib(10) }, "Compression"},
		{"empty exclude pattern", func(o *CreateOptions) { o.Excludes = []Pattern{{}} }, "Excludes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := valid
			tt.mutate(&opts)
			err := opts.validate()
			valErr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if valErr.Field != tt.field {
				t.Errorf("field = %q, want %q", valErr.Field, tt.field)
			}
		})
	}
}

func TestCreateOptionsPatternRootSufficesAsInput(t *testing.T) {
	opts := CreateOptions{
		Repository: "/tmp/repo",
		Archive:    "daily-1",
		Patterns: []PatternInstruction{
			RootPath("/home"),
			Exclude(Shell("**/.cache")),
		},
	}
	if err := opts.validate(); err != nil {
		t.Errorf("pattern root should satisfy the input requirement: %v", err)
	}
}

func TestCheckOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    CheckOptions
		wantErr bool
	}{
		{"plain", CheckOptions{Repository: "/r"}, false},
		{"verify data", CheckOptions{Repository: "/r", VerifyData: true}, false},
		{"repository only", CheckOptions{Repository: "/r", RepositoryOnly: true}, false},
		{"repository only with verify", CheckOptions{Repository: "/r", RepositoryOnly: true, VerifyData: true}, true},
		{"repository only with archives only", CheckOptions{Repository: "/r", RepositoryOnly: true, ArchivesOnly: true}, true},
		{"no repository", CheckOptions{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPruneOptionsValidate(t *testing.T) {
	if err := (PruneOptions{Repository: "/r"}).validate(); err == nil {
		t.Error("prune without any retention rule must fail")
	}
	if err := (PruneOptions{Repository: "/r", KeepDaily: 7}).validate(); err != nil {
		t.Errorf("counted rule rejected: %v", err)
	}
	if err := (PruneOptions{Repository: "/r", KeepWithin: PruneWithin{Count: 7, Unit: WithinDays}}).validate(); err != nil {
		t.Errorf("keep-within rule rejected: %v", err)
	}
	if err := (PruneOptions{Repository: "/r", KeepWithin: PruneWithin{Count: 0, Unit: WithinDays}}).validate(); err == nil {
		t.Error("zero keep-within interval must fail")
	}
	if err := (PruneOptions{Repository: "/r", KeepWithin: PruneWithin{Count: 3, Unit: "q"}}).validate(); err == nil {
		t.Error("unknown keep-within unit must fail")
	}
}

func TestDeleteOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    DeleteOptions
		wantErr bool
	}{
		{"named archive", DeleteOptions{Repository: "/r", Archive: "a"}, false},
		{"whole repository", DeleteOptions{Repository: "/r", All: true}, false},
		{"neither", DeleteOptions{Repository: "/r"}, true},
		{"both", DeleteOptions{Repository: "/r", Archive: "a", All: true}, true},
		{"extras without primary", DeleteOptions{Repository: "/r", All: true, AdditionalArchives: []string{"b"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInfoOptionsValidate(t *testing.T) {
	if err := (InfoOptions{Repository: "/r", Archive: "a", Last: 3}).validate(); err == nil {
		t.Error("selection flags with a fixed archive must fail")
	}
	if err := (InfoOptions{Repository: "/r", Last: 3}).validate(); err != nil {
		t.Errorf("selection flags alone rejected: %v", err)
	}
}

func TestInitOptionsValidate(t *testing.T) {
	if err := (InitOptions{Repository: "/r"}).validate(); err == nil {
		t.Error("missing encryption mode must fail")
	}
	if err := (InitOptions{Repository: "/r", Encryption: "rot13"}).validate(); err == nil {
		t.Error("unknown encryption mode must fail")
	}
}

func TestCredentialValidate(t *testing.T) {
	for _, cred := range []Credential{Passphrase(""), PassphraseFile(""), PassphraseCommand("")} {
		if err := cred.validate(); err == nil {
			t.Errorf("mode %v with empty value must fail", cred.Mode())
		}
	}
	if err := NoCredential().validate(); err != nil {
		t.Errorf("no credential rejected: %v", err)
	}
}

func TestCompressionString(t *testing.T) {
	tests := []struct {
		c    Compression
		want string
	}{
		{CompressionNone(), "none"},
		{CompressionLZ4(), "lz4"},
		{CompressionZstd(3), "zstd,3"},
		{CompressionZlib(9), "zlib,9"},
		{CompressionLZMA(6), "lzma,6"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestPatternInstructionString(t *testing.T) {
	tests := []struct {
		i    PatternInstruction
		want string
	}{
		{RootPath("/home"), "P /home"},
		{Include(Shell("/home/*/.config")), "+ sh:/home/*/.config"},
		{Exclude(FnMatch("*.tmp")), "- fm:*.tmp"},
		{ExcludeNoRecurse(PathPrefix("/proc")), "! pp:/proc"},
	}
	for _, tt := range tests {
		if got := tt.i.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestValidationErrorMessageNamesField(t *testing.T) {
	err := (ListOptions{}).validate()
	if err == nil || !strings.Contains(err.Error(), "Repository") {
		t.Errorf("error %v should name the offending field", err)
	}
}
