package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
)

// Environment variables consulted for HTTP(S) push tokens, in order.
var tokenEnvVars = []string{"CARGOTAG_GIT_TOKEN", "GITHUB_TOKEN"}

// CredentialProvider resolves the authentication used to push to a remote URL.
// A nil AuthMethod means "let the transport use its defaults".
type CredentialProvider interface {
	Auth(ctx context.Context, remoteURL string) (transport.AuthMethod, error)
}

// SystemCredentials delegates to the platform: the SSH agent for SSH
// remotes, and an environment token or `git credential fill` (the configured
// credential helper) for HTTP(S) remotes.
type SystemCredentials struct {
	getenv      func(string) string
	execCommand func(ctx context.Context, name string, arg ...string) *exec.Cmd
	sshAuth     func(user string) (transport.AuthMethod, error)
}

// NewCredentialProvider creates the default SystemCredentials.
func NewCredentialProvider() *SystemCredentials {
	return &SystemCredentials{
		getenv:      os.Getenv,
		execCommand: exec.CommandContext,
		sshAuth: func(user string) (transport.AuthMethod, error) {
			return ssh.NewSSHAgentAuth(user)
		},
	}
}

var _ CredentialProvider = (*SystemCredentials)(nil)

// Auth implements CredentialProvider.
func (c *SystemCredentials) Auth(ctx context.Context, remoteURL string) (transport.AuthMethod, error) {
	if remoteURL == "" {
		return nil, nil
	}

	ep, err := transport.NewEndpoint(remoteURL)
	if err != nil {
		return nil, fmt.Errorf("invalid remote url %q: %w", remoteURL, err)
	}

	switch ep.Protocol {
	case "ssh":
		user := ep.User
		if user == "" {
			user = "git"
		}
		auth, err := c.sshAuth(user)
		if err != nil {
			// No agent: leave it to go-git's default SSH auth.
			return nil, nil
		}
		return auth, nil
	case "http", "https":
		return c.httpAuth(ctx, ep), nil
	default:
		return nil, nil
	}
}

func (c *SystemCredentials) httpAuth(ctx context.Context, ep *transport.Endpoint) transport.AuthMethod {
	if ep.User != "" && ep.Password != "" {
		return &githttp.BasicAuth{Username: ep.User, Password: ep.Password}
	}

	for _, name := range tokenEnvVars {
		if token := c.getenv(name); token != "" {
			return &githttp.BasicAuth{Username: "token", Password: token}
		}
	}

	user, pass, err := c.credentialFill(ctx, ep)
	if err != nil || pass == "" {
		return nil
	}
	return &githttp.BasicAuth{Username: user, Password: pass}
}

// credentialFill asks the configured git credential helper for a username
// and password, the same way `git push` would.
func (c *SystemCredentials) credentialFill(ctx context.Context, ep *transport.Endpoint) (string, string, error) {
	var input strings.Builder
	fmt.Fprintf(&input, "protocol=%s\n", ep.Protocol)
	host := ep.Host
	if ep.Port != 0 && ep.Port != 80 && ep.Port != 443 {
		host = fmt.Sprintf("%s:%d", ep.Host, ep.Port)
	}
	fmt.Fprintf(&input, "host=%s\n", host)
	if p := strings.TrimPrefix(ep.Path, "/"); p != "" {
		fmt.Fprintf(&input, "path=%s\n", p)
	}
	if ep.User != "" {
		fmt.Fprintf(&input, "username=%s\n", ep.User)
	}
	input.WriteString("\n")

	cmd := c.execCommand(ctx, "git", "credential", "fill")
	cmd.Stdin = strings.NewReader(input.String())
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrMsg := strings.TrimSpace(stderr.String())
		if stderrMsg != "" {
			return "", "", fmt.Errorf("%s: %w", stderrMsg, err)
		}
		return "", "", fmt.Errorf("git credential fill failed: %w", err)
	}

	return parseCredentialOutput(stdout.String())
}

// parseCredentialOutput reads the key=value lines printed by `git credential fill`.
func parseCredentialOutput(output string) (string, string, error) {
	var user, pass string
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok {
			continue
		}
		switch key {
		case "username":
			user = value
		case "password":
			pass = value
		}
	}
	if err := scanner.Err(); err != nil {
		return "", "", err
	}
	return user, pass, nil
}
