package pkg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "mfmt" {
		t.Errorf("Expected Name to be %q, got %q", "mfmt", Name)
	}

	if Description == "" {
		t.Error("Description must not be empty")
	}
}

func TestVersion(t *testing.T) {
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("Failed to read VERSION file: %v", err)
	}

	if content := strings.TrimSpace(string(buf)); Version != content {
		t.Errorf("Expected Version to be %q, got %q", content, Version)
	}

	if strings.ContainsAny(Version, " \n") {
		t.Errorf("Version %q contains whitespace", Version)
	}
}

func TestAuthorString(t *testing.T) {
	saved := Author
	t.Cleanup(func() { Author = saved })

	Author = []AuthorInfo{
		{"a", "a@example.com"},
		{"b", ""},
		{"", "c@example.com"},
	}

	want := "a <a@example.com>\nb\n<c@example.com>"
	if got := AuthorString(); got != want {
		t.Errorf("AuthorString() = %q, want %q", got, want)
	}
}

func TestDirs(t *testing.T) {
	for name, dir := range map[string]string{
		"config": ConfigDir(),
		"cache":  CacheDir(),
	} {
		if filepath.Base(dir) != Prefix() {
			t.Errorf("%s dir %q does not end with %q", name, dir, Prefix())
		}
	}

	if strings.HasPrefix(Prefix(), ".") {
		t.Errorf("Prefix() = %q must not start with a dot", Prefix())
	}
}

func TestPrefix(t *testing.T) {
	tests := []struct {
		exe  string
		want string
	}{
		{"/usr/local/bin/mfmt", "mfmt"},
		{"/opt/mfmt.bin", "mfmt"},
		{"/home/u/..tool.bin", "tool"},
		{"/tmp/__debug_bin1234", Name},
		{"/tmp/__debug_bin", Name},
		{"/tmp/...", Name},
		{"./fmt.test", "fmt"},
	}

	for _, tt := range tests {
		t.Run(tt.exe, func(t *testing.T) {
			if got := prefix(tt.exe); got != tt.want {
				t.Errorf("prefix(%q) = %q, want %q", tt.exe, got, tt.want)
			}
		})
	}
}

func TestUserDir_Env(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(CacheDirEnv, dir)

	if got := userDir(CacheDirEnv, os.UserCacheDir, ".cache"); got != dir {
		t.Errorf("userDir = %q, want %q", got, dir)
	}

	t.Setenv(CacheDirEnv, "")

	base := func() (string, error) { return "/base", nil }
	if got, want := userDir(CacheDirEnv, base, ".cache"), filepath.Join("/base", Prefix()); got != want {
		t.Errorf("userDir = %q, want %q", got, want)
	}
}
