package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/oshokin/verstamp/internal/encoder"
)

// Revisioner returns the abbreviated revision of the working tree.
type Revisioner interface {
	Revision(ctx context.Context) (string, error)
}

// errEmptyRevision is returned when git prints nothing for HEAD.
var errEmptyRevision = errors.New("git returned an empty revision")

// Git queries a git working tree.
type Git struct {
	// dir is the working tree passed to "git -C".
	dir string
	// binary is the git executable name or path.
	binary string
}

// NewGit returns a Git targeting dir. An empty dir means the current directory.
func NewGit(dir string) *Git {
	if dir == "" {
		dir = "."
	}

	return &Git{dir: dir, binary: "git"}
}

// Dir returns the working tree directory.
func (g *Git) Dir() string {
	return g.dir
}

// Revision returns the top 8 hex digits of HEAD.
func (g *Git) Revision(ctx context.Context) (string, error) {
	out, err := g.run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}

	full := strings.TrimSpace(out)
	if full == "" {
		return "", errEmptyRevision
	}

	short := encoder.ShortenHash(full)
	if _, err = encoder.ParseHash(short); err != nil {
		return "", fmt.Errorf("unexpected git revision %q: %w", full, err)
	}

	return short, nil
}

// run executes git in the working tree and returns stdout.
// Stderr is included in the error on failure.
func (g *Git) run(ctx context.Context, args ...string) (string, error) {
	fullArgs := append([]string{"-C", g.dir}, args...)

	var stdout, stderr bytes.Buffer

	command := exec.CommandContext(ctx, g.binary, fullArgs...) //nolint:gosec // Arguments are fixed by callers.
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return "", fmt.Errorf("git %s in %s: %w (stderr: %s)",
			strings.Join(args, " "), g.dir, err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}

// Static is a Revisioner that always returns the same revision.
type Static string

// Revision returns the fixed revision.
func (s Static) Revision(_ context.Context) (string, error) {
	return string(s), nil
}
