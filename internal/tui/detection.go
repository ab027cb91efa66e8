package tui

import (
	"os"

	"golang.org/x/term"
)

// ciEnvVars mark CI runners, where the confirm prompt is never shown.
var ciEnvVars = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"CIRCLECI",
	"TRAVIS",
	"JENKINS_HOME",
	"BUILDKITE",
	"BITBUCKET_BUILD_NUMBER",
	"DRONE",
	"TF_BUILD",
}

// isTerminal is replaced in tests.
var isTerminal = term.IsTerminal

// IsInteractive reports whether the confirm prompt can run: the answer is
// read from stdin and the form is drawn on stdout, so both must be
// terminals, and no CI runner may be detected.
func IsInteractive() bool {
	for _, f := range []*os.File{os.Stdin, os.Stdout} {
		if !isTerminal(int(f.Fd())) { //nolint:gosec // G115: fd is a small value
			return false
		}
	}
	return !runningInCI()
}

func runningInCI() bool {
	for _, name := range ciEnvVars {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}
