package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/freshen/internal/config"
	"github.com/raphi011/freshen/internal/repoconf"
)

// completeRepos completes repository names from the repository file that
// --repo-conf (or the usual fallbacks) points to, skipping names already
// given.
func completeRepos(repoConfFlag string, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, _ := config.Load()
	path, err := cfg.RepoConfPath(repoConfFlag)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	rc, err := repoconf.Load(path)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var matches []string
	for _, name := range rc.Names() {
		if strings.HasPrefix(name, toComplete) && !slices.Contains(args, name) {
			matches = append(matches, name)
		}
	}

	return matches, cobra.ShellCompDirectiveNoFileComp
}
