package repoconf

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/raphi011/freshen/internal/config"
)

const (
	sectionPrefix = "repo:"
	reposSection  = "repos"
)

// Option names understood in repository sections.
const (
	optName        = "name"
	optBasedir     = "basedir"
	optPull        = "pull"
	optPush        = "push"
	optBranch      = "branch"
	optInstallMode = "install_mode"
	optList        = "list"
	optLogfile     = "logfile"
)

// RunConfig is the resolved repository file.
type RunConfig struct {
	RepoConfPath string
	Logfile      string // tilde-expanded
	Repos        []Descriptor
}

// Names returns the descriptor names in resolved order.
func (rc *RunConfig) Names() []string {
	names := make([]string, len(rc.Repos))
	for i, d := range rc.Repos {
		names[i] = d.Name
	}
	return names
}

// Find returns the descriptor with the given name.
func (rc *RunConfig) Find(name string) (Descriptor, bool) {
	for _, d := range rc.Repos {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

// loadOptions mirrors the dialect of Python's ConfigParser, which the
// repository file format comes from. Quotes around a value are kept.
var loadOptions = ini.LoadOptions{
	InsensitiveKeys:            true,
	PreserveSurroundedQuote:    true,
	SpaceBeforeInlineComment:   true,
	AllowPythonMultilineValues: true,
}

// Load reads and resolves the repository file at path.
// A missing file is a ConfigError wrapping ErrNotFound.
func Load(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ConfigError{Path: path, Err: ErrNotFound}
		}
		return nil, &ConfigError{Path: path, Err: err}
	}
	return Parse(path, data)
}

// Parse resolves repository file content. path is only used for reporting.
func Parse(path string, data []byte) (*RunConfig, error) {
	f, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("parse: %w", err)}
	}

	defaults := f.Section(ini.DefaultSection).KeysHash()
	repos := overlay(defaults, f, reposSection)

	logfile := repos[optLogfile]
	if logfile == "" {
		logfile = DefaultLogfile
	}
	logfile, err = config.ExpandPath(logfile)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	order, err := candidateNames(f, repos)
	if err != nil {
		return nil, &ConfigError{Path: path, Logfile: logfile, Err: err}
	}

	rc := &RunConfig{
		RepoConfPath: path,
		Logfile:      logfile,
		Repos:        make([]Descriptor, 0, len(order)),
	}
	seen := make(map[string]string, len(order))
	for _, section := range order {
		d, err := resolve(defaults, f, section)
		if err != nil {
			return nil, &ConfigError{Path: path, Repo: section, Logfile: logfile, Err: err}
		}
		if other, dup := seen[d.Name]; dup {
			return nil, &ConfigError{
				Path:    path,
				Repo:    section,
				Logfile: logfile,
				Err:     fmt.Errorf("%w %q (also used by %q)", ErrDuplicateName, d.Name, other),
			}
		}
		seen[d.Name] = section
		rc.Repos = append(rc.Repos, d)
	}

	return rc, nil
}

// candidateNames returns [repos] list entries in listed order, followed by
// the [repo:NAME] sections not already listed, in file order.
func candidateNames(f *ini.File, repos map[string]string) ([]string, error) {
	var order []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		order = append(order, name)
	}

	for _, name := range strings.Split(repos[optList], ",") {
		add(strings.TrimSpace(name))
	}

	for _, sec := range f.Sections() {
		name, ok := strings.CutPrefix(sec.Name(), sectionPrefix)
		if !ok {
			continue
		}
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("section [%s] has no repository name", sec.Name())
		}
		add(name)
	}

	return order, nil
}

// overlay returns defaults overlaid with the keys of the named section.
// A missing section yields a copy of defaults.
func overlay(defaults map[string]string, f *ini.File, section string) map[string]string {
	merged := maps.Clone(defaults)
	if merged == nil {
		merged = make(map[string]string)
	}
	if sec, err := f.GetSection(section); err == nil {
		maps.Copy(merged, sec.KeysHash())
	}
	return merged
}

// resolve builds the descriptor for one repository: first the untyped
// merge, then typed extraction with defaults.
func resolve(defaults map[string]string, f *ini.File, section string) (Descriptor, error) {
	merged := overlay(defaults, f, sectionPrefix+section)

	// name is only honored in the repository's own section; a [DEFAULT]
	// name would give every repository the same name.
	name := section
	if sec, err := f.GetSection(sectionPrefix + section); err == nil {
		if v := strings.TrimSpace(sec.KeysHash()[optName]); v != "" {
			name = v
		}
	}

	basedir, err := config.ExpandPath(valueOr(merged, optBasedir, DefaultBasedir))
	if err != nil {
		return Descriptor{}, fmt.Errorf("basedir: %w", err)
	}

	d := newDescriptor(name, section, basedir)
	d.PullRemote = valueOr(merged, optPull, DefaultPull)
	d.PushRemote = strings.TrimSpace(merged[optPush])
	d.Branch = valueOr(merged, optBranch, DefaultBranch)

	d.InstallMode, err = ParseInstallMode(strings.TrimSpace(merged[optInstallMode]))
	if err != nil {
		return Descriptor{}, err
	}

	return d, nil
}

func valueOr(m map[string]string, key, def string) string {
	if v := strings.TrimSpace(m[key]); v != "" {
		return v
	}
	return def
}
