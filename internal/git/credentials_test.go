package git

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"testing"

	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// TestFakeCredentialHelper stands in for `git credential fill` when the
// test binary is re-executed by helperCommand.
func TestFakeCredentialHelper(t *testing.T) {
	if os.Getenv("CARGOTAG_FAKE_CREDENTIAL_HELPER") != "1" {
		return
	}
	if os.Getenv("CARGOTAG_FAKE_CREDENTIAL_FAIL") == "1" {
		os.Stderr.WriteString("fatal: helper broke\n")
		os.Exit(1)
	}
	os.Stdout.WriteString("protocol=https\nhost=example.com\nusername=alice\npassword=s3cret\n")
	os.Exit(0)
}

func helperCommand(fail bool) func(ctx context.Context, name string, arg ...string) *exec.Cmd {
	return func(ctx context.Context, name string, arg ...string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestFakeCredentialHelper")
		cmd.Env = append(os.Environ(), "CARGOTAG_FAKE_CREDENTIAL_HELPER=1")
		if fail {
			cmd.Env = append(cmd.Env, "CARGOTAG_FAKE_CREDENTIAL_FAIL=1")
		}
		return cmd
	}
}

func newTestCredentials(env map[string]string, fail bool) *SystemCredentials {
	return &SystemCredentials{
		getenv:      func(k string) string { return env[k] },
		execCommand: helperCommand(fail),
		sshAuth: func(user string) (transport.AuthMethod, error) {
			return nil, errors.New("no agent")
		},
	}
}

func basicAuth(t *testing.T, auth transport.AuthMethod) *githttp.BasicAuth {
	t.Helper()
	basic, ok := auth.(*githttp.BasicAuth)
	if !ok {
		t.Fatalf("expected *http.BasicAuth, got %T", auth)
	}
	return basic
}

func TestSystemCredentials_HTTP(t *testing.T) {
	ctx := context.Background()

	t.Run("token from env", func(t *testing.T) {
		c := newTestCredentials(map[string]string{"GITHUB_TOKEN": "gh-token"}, true)
		auth, err := c.Auth(ctx, "https://github.com/acme/crate.git")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := basicAuth(t, auth).Password; got != "gh-token" {
			t.Errorf("password = %q, want gh-token", got)
		}
	})

	t.Run("cargotag token wins", func(t *testing.T) {
		c := newTestCredentials(map[string]string{"GITHUB_TOKEN": "gh", "CARGOTAG_GIT_TOKEN": "ct"}, true)
		auth, _ := c.Auth(ctx, "https://github.com/acme/crate.git")
		if got := basicAuth(t, auth).Password; got != "ct" {
			t.Errorf("password = %q, want ct", got)
		}
	})

	t.Run("userinfo in url", func(t *testing.T) {
		c := newTestCredentials(nil, true)
		auth, _ := c.Auth(ctx, "https://bob:pw@example.com/repo.git")
		basic := basicAuth(t, auth)
		if basic.Username != "bob" || basic.Password != "pw" {
			t.Errorf("got %s/%s, want bob/pw", basic.Username, basic.Password)
		}
	})

	t.Run("credential helper", func(t *testing.T) {
		c := newTestCredentials(nil, false)
		auth, err := c.Auth(ctx, "https://example.com/repo.git")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		basic := basicAuth(t, auth)
		if basic.Username != "alice" || basic.Password != "s3cret" {
			t.Errorf("got %s/%s, want alice/s3cret", basic.Username, basic.Password)
		}
	})

	t.Run("credential helper failure falls back to no auth", func(t *testing.T) {
		c := newTestCredentials(nil, true)
		auth, err := c.Auth(ctx, "https://example.com/repo.git")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if auth != nil {
			t.Errorf("expected nil auth, got %T", auth)
		}
	})
}

func TestSystemCredentials_Other(t *testing.T) {
	ctx := context.Background()
	c := newTestCredentials(nil, true)

	for _, url := range []string{"", "/srv/git/repo.git", "file:///srv/git/repo.git"} {
		auth, err := c.Auth(ctx, url)
		if err != nil {
			t.Errorf("Auth(%q) error: %v", url, err)
		}
		if auth != nil {
			t.Errorf("Auth(%q) = %T, want nil", url, auth)
		}
	}

	// Without an agent the SSH transport falls back to its defaults.
	auth, err := c.Auth(ctx, "git@github.com:acme/crate.git")
	if err != nil || auth != nil {
		t.Errorf("ssh without agent: auth=%v err=%v", auth, err)
	}

	var gotUser string
	c.sshAuth = func(user string) (transport.AuthMethod, error) {
		gotUser = user
		return &githttp.BasicAuth{}, nil
	}
	if _, err := c.Auth(ctx, "ssh://deploy@example.com/repo.git"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUser != "deploy" {
		t.Errorf("ssh user = %q, want deploy", gotUser)
	}
}

func TestParseCredentialOutput(t *testing.T) {
	user, pass, err := parseCredentialOutput("protocol=https\nhost=x\nusername=u\npassword=p=q\n\ngarbage\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != "u" || pass != "p=q" {
		t.Errorf("got %q/%q, want u/p=q", user, pass)
	}
}
