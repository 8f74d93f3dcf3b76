package config

import (
	"fmt"
	"strings"
)

// validate checks a freshly decoded Config.
func validate(cfg *Config) error {
	if err := ValidatePath(cfg.RepoConf, "repo_conf"); err != nil {
		return err
	}
	for i, arg := range cfg.Install.Command {
		if strings.TrimSpace(arg) == "" {
			return fmt.Errorf("install.command[%d] is empty", i)
		}
	}
	return nil
}
