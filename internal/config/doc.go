// Package config handles loading and validation of freshen's own settings.
//
// Settings are read from ~/.config/freshen/config.toml, or from the file
// named by FRESHEN_CONFIG. They are separate from the INI repository file
// (see package repoconf), which lists the repositories to operate on.
//
// # Settings
//
//	repo_conf = "~/.repos.ini"   # default repository file
//
//	[install]
//	command = ["sudo", "python", "setup.py"]   # install mode is appended
//
//	[push]
//	force = true    # push with --force
//
//	[fetch]
//	enabled = true  # bare "git fetch" before each pull
//
// # Repository File Location (highest priority first)
//
//   - --repo-conf flag
//   - FRESHEN_REPO_CONF env var
//   - repo_conf setting
//   - ~/.repos.ini
//
// # Path Validation
//
// Paths must be absolute or start with ~ (no relative paths like "." or "..")
// to avoid confusion about the working directory.
package config
