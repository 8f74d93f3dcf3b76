package repoconf

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by ConfigError.
var (
	ErrNotFound           = errors.New("repository config not found")
	ErrInvalidInstallMode = errors.New("invalid install_mode")
	ErrDuplicateName      = errors.New("duplicate repository name")
)

// ConfigError reports a fatal problem with the repository file.
// Repo is set when the problem belongs to one repository. Logfile is set
// once the [repos] logfile option has been resolved.
type ConfigError struct {
	Path    string
	Repo    string
	Logfile string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Repo != "" {
		return fmt.Sprintf("%s: repository %q: %v", e.Path, e.Repo, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
