package repoconf

import (
	"fmt"
	"path/filepath"
	"slices"
)

// InstallMode selects the installer subcommand run after a freshen.
type InstallMode string

// Install modes. The empty mode means "do not install".
const (
	InstallNone    InstallMode = ""
	InstallInstall InstallMode = "install"
	InstallDevelop InstallMode = "develop"
)

// ValidInstallModes lists the accepted install_mode values.
var ValidInstallModes = []InstallMode{InstallInstall, InstallDevelop}

// ParseInstallMode converts an install_mode option value.
// An empty value yields InstallNone.
func ParseInstallMode(s string) (InstallMode, error) {
	if s == "" {
		return InstallNone, nil
	}
	m := InstallMode(s)
	if !slices.Contains(ValidInstallModes, m) {
		return InstallNone, fmt.Errorf("%w %q: must be %q or %q", ErrInvalidInstallMode, s, InstallInstall, InstallDevelop)
	}
	return m, nil
}

// Default option values.
const (
	DefaultBasedir = "~/devel/src"
	DefaultPull    = "origin"
	DefaultBranch  = "master"
	DefaultLogfile = "~/freshen.log"
)

// Descriptor is the resolved, read-only configuration of one repository.
type Descriptor struct {
	Name        string      `json:"name"`
	Section     string      `json:"section"` // NAME from [repo:NAME] or [repos] list
	Basedir     string      `json:"basedir"`
	Path        string      `json:"path"`
	PullRemote  string      `json:"pull"`
	PushRemote  string      `json:"push,omitempty"`
	Branch      string      `json:"branch"`
	InstallMode InstallMode `json:"install_mode,omitempty"`
}

// Pushes reports whether a freshen pushes the branch afterwards.
func (d Descriptor) Pushes() bool {
	return d.PushRemote != ""
}

// Installs reports whether a freshen reinstalls the repository afterwards.
func (d Descriptor) Installs() bool {
	return d.InstallMode != InstallNone
}

func newDescriptor(name, section, basedir string) Descriptor {
	return Descriptor{
		Name:       name,
		Section:    section,
		Basedir:    basedir,
		Path:       filepath.Join(basedir, name),
		PullRemote: DefaultPull,
		Branch:     DefaultBranch,
	}
}
