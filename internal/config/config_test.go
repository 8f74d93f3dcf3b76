package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()
	cfg := Default()
	if cfg.RepoConf != DefaultRepoConf {
		t.Errorf("RepoConf = %q, want %q", cfg.RepoConf, DefaultRepoConf)
	}
	if !reflect.DeepEqual(cfg.Install.Command, DefaultInstallCommand) {
		t.Errorf("Install.Command = %v, want %v", cfg.Install.Command, DefaultInstallCommand)
	}
	if !cfg.ForcePush() {
		t.Error("ForcePush() = false, want true by default")
	}
	if !cfg.PreFetch() {
		t.Error("PreFetch() = false, want true by default")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadFile(missing) = %v, want nil", err)
	}
	if cfg.RepoConf != DefaultRepoConf {
		t.Errorf("RepoConf = %q, want default", cfg.RepoConf)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `repo_conf = "~/work/repos.ini"

[install]
command = ["pip", "--quiet"]

[push]
force = false

[fetch]
enabled = false
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile = %v", err)
	}
	if cfg.RepoConf != "~/work/repos.ini" {
		t.Errorf("RepoConf = %q, want ~/work/repos.ini", cfg.RepoConf)
	}
	if want := []string{"pip", "--quiet"}; !reflect.DeepEqual(cfg.Install.Command, want) {
		t.Errorf("Install.Command = %v, want %v", cfg.Install.Command, want)
	}
	if cfg.ForcePush() {
		t.Error("ForcePush() = true, want false")
	}
	if cfg.PreFetch() {
		t.Error("PreFetch() = true, want false")
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad toml", "repo_conf = [", "failed to parse"},
		{"relative repo_conf", `repo_conf = "repos.ini"`, "repo_conf must be absolute"},
		{"blank install arg", "[install]\ncommand = [\"sudo\", \" \"]", "install.command[1] is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := LoadFile(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("LoadFile = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want to contain %q", err, tt.wantErr)
			}
			if cfg.RepoConf != DefaultRepoConf {
				t.Errorf("invalid file should fall back to defaults, got %+v", cfg)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		wantErr bool
	}{
		{"", false},
		{"~", false},
		{"~/repos.ini", false},
		{"/etc/repos.ini", false},
		{".", true},
		{"../repos.ini", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			err := ValidatePath(tt.path, "repo_conf")
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/freshen.log", filepath.Join(home, "freshen.log")},
		{"/var/log/freshen.log", "/var/log/freshen.log"},
		{"~other/x", "~other/x"},
	}

	for _, tt := range tests {
		got, err := ExpandPath(tt.in)
		if err != nil {
			t.Fatalf("ExpandPath(%q) = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRepoConfPath(t *testing.T) {
	// Not parallel - modifies environment
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := Default()
	cfg.RepoConf = "~/from-settings.ini"

	t.Setenv(EnvRepoConf, "")
	got, err := cfg.RepoConfPath("")
	if err != nil {
		t.Fatalf("RepoConfPath = %v", err)
	}
	if want := filepath.Join(home, "from-settings.ini"); got != want {
		t.Errorf("settings: got %q, want %q", got, want)
	}

	t.Setenv(EnvRepoConf, "/env/repos.ini")
	if got, _ := cfg.RepoConfPath(""); got != "/env/repos.ini" {
		t.Errorf("env: got %q, want /env/repos.ini", got)
	}

	if got, _ := cfg.RepoConfPath("~/flag.ini"); got != filepath.Join(home, "flag.ini") {
		t.Errorf("flag: got %q, want %q", got, filepath.Join(home, "flag.ini"))
	}
}

func TestPath_Env(t *testing.T) {
	t.Setenv(EnvConfig, "/etc/freshen.toml")
	got, err := Path()
	if err != nil {
		t.Fatalf("Path = %v", err)
	}
	if got != "/etc/freshen.toml" {
		t.Errorf("Path() = %q, want /etc/freshen.toml", got)
	}
}
