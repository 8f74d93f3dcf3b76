// Package repoconf resolves the INI repository file into an ordered list of
// repository descriptors.
//
// # File Format
//
//	[DEFAULT]
//	basedir = ~/devel/src
//	branch = master
//
//	[repos]
//	list = nova, glance
//	logfile = ~/logs/freshen.log
//
//	[repo:nova]
//	pull = upstream
//	push = origin
//	install_mode = develop
//
// Options set in [DEFAULT] apply to every repository unless the repository's
// own [repo:NAME] section overrides them, one option at a time. A name listed
// in [repos] list needs no section of its own; it resolves from [DEFAULT]
// alone.
//
// # Resolution
//
// Resolution has two phases. The file is first merged into plain string maps
// (DEFAULT overlaid by the repository section), then each map is converted
// into a typed [Descriptor] with named defaults:
//
//   - basedir: ~/devel/src (tilde-expanded)
//   - pull: origin
//   - push: unset (no push)
//   - branch: master
//   - install_mode: unset (no install); otherwise "install" or "develop"
//
// Descriptors are ordered by [repos] list first, then by any remaining
// [repo:NAME] sections in file order.
package repoconf
