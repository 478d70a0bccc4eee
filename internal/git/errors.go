package git

import (
	"regexp"
)

// ErrorInfo contains user-friendly information about a git failure.
type ErrorInfo struct {
	Category    string
	Message     string
	Suggestions []string
}

// errorPattern maps a pattern in a go-git error message to advice.
type errorPattern struct {
	pattern     *regexp.Regexp
	category    string
	message     string
	suggestions []string
}

// errorPatterns contains common failures of the release steps.
// Order matters: more specific patterns come before general ones.
var errorPatterns = []errorPattern{
	{
		pattern:  regexp.MustCompile(`(?i)tag already exists`),
		category: "tag_exists",
		message:  "The release tag already exists",
		suggestions: []string{
			"Another release may have created the tag since the preflight check",
			"List tags with: git tag -l",
			"Choose a different version or remove the stale tag",
		},
	},
	{
		pattern:  regexp.MustCompile(`(?i)non-fast-forward|fetch first|rejected`),
		category: "push_rejected",
		message:  "The remote rejected the push",
		suggestions: []string{
			"Pull the remote branch and retry the push manually",
			"The local commit and tag are still in place: git push <remote> <branch> <tag>",
		},
	},
	{
		pattern:  regexp.MustCompile(`(?i)authentication required|authorization failed|invalid auth method|unable to authenticate`),
		category: "auth_required",
		message:  "Authentication required",
		suggestions: []string{
			"Configure a git credential helper for this remote",
			"Set CARGOTAG_GIT_TOKEN or GITHUB_TOKEN for HTTPS remotes",
			"Use an SSH remote and make sure ssh-agent holds your key",
		},
	},
	{
		pattern:  regexp.MustCompile(`(?i)repository not found`),
		category: "repository_not_found",
		message:  "Remote repository not found",
		suggestions: []string{
			"Verify the remote URL: git remote -v",
			"Check that you have access to the repository",
		},
	},
	{
		pattern:  regexp.MustCompile(`(?i)remote not found`),
		category: "remote_not_found",
		message:  "Git remote not found",
		suggestions: []string{
			"List remotes with: git remote -v",
			"Pass the remote name with --remote",
		},
	},
	{
		pattern:  regexp.MustCompile(`(?i)certificate|x509`),
		category: "ssl_error",
		message:  "SSL certificate verification failed",
		suggestions: []string{
			"Check your system's SSL certificates are up to date",
			"Check if a proxy is interfering with SSL connections",
		},
	},
	{
		pattern:  regexp.MustCompile(`(?i)no such host|connection refused|i/o timeout|network is unreachable`),
		category: "network_error",
		message:  "Unable to reach the remote",
		suggestions: []string{
			"Check your network connection",
			"Verify the git server is accessible",
		},
	},
	{
		pattern:  regexp.MustCompile(`(?i)identity not configured`),
		category: "identity_missing",
		message:  "No git identity configured",
		suggestions: []string{
			`git config --global user.name "Your Name"`,
			`git config --global user.email "you@example.com"`,
		},
	},
	{
		pattern:  regexp.MustCompile(`(?i)HEAD is detached`),
		category: "detached_head",
		message:  "HEAD is not on a branch",
		suggestions: []string{
			"Checkout the branch to release from: git checkout <branch>",
		},
	},
}

// DescribeError matches err against known git failure patterns and returns
// actionable advice, or nil when nothing matches.
func DescribeError(err error) *ErrorInfo {
	if err == nil {
		return nil
	}
	msg := err.Error()
	for _, p := range errorPatterns {
		if p.pattern.MatchString(msg) {
			return &ErrorInfo{
				Category:    p.category,
				Message:     p.message,
				Suggestions: p.suggestions,
			}
		}
	}
	return nil
}
