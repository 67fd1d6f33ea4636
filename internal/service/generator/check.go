package generator

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/oshokin/verstamp/internal/config"
	"github.com/oshokin/verstamp/internal/logger"
	"github.com/oshokin/verstamp/internal/repository/artifact"
)

var (
	// ErrDrift is returned when the artifact does not match its template.
	ErrDrift = errors.New("artifact is out of sync with its template")
	// ErrArtifactMissing is returned when the artifact has not been generated.
	ErrArtifactMissing = errors.New("artifact has not been generated")
)

// timestampSentinel stands in for the build date while checking unpinned runs.
const timestampSentinel = "\x00verstamp-build-date\x00"

// anyTimestamp matches any build date rendered by encoder.FormatTimestamp.
const anyTimestamp = `\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z`

// CheckResult describes a successful drift check.
type CheckResult struct {
	// Location is the artifact that was checked.
	Location string
	// Fingerprint is the blake3 digest of the artifact.
	Fingerprint string
	// PinnedDate is true when the build date was compared literally.
	PinnedDate bool
}

// Check renders the template in memory and compares it with the artifact on
// disk. It never writes. When no build date is pinned, any well-formed build
// date in the artifact is accepted in place of BUILD_DATE.
func Check(ctx context.Context, opts *Options) (*CheckResult, error) {
	ctx = logger.WithName(ctx, "check")

	r, err := prepare(ctx, opts)
	if err != nil {
		return nil, err
	}

	if r.cfg.Output == config.StdoutOutput {
		return nil, errStdoutNotComparable
	}

	repo := artifact.NewFileRepository(r.cfg.Output)

	current, err := repo.Load(ctx)
	if errors.Is(err, artifact.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, repo.Location())
	} else if err != nil {
		return nil, err
	}

	result := &CheckResult{
		Location:    repo.Location(),
		Fingerprint: artifact.Fingerprint(current),
		PinnedDate:  r.cfg.BuildDate != "",
	}

	inSync, err := r.matches(ctx, current, result.PinnedDate)
	if err != nil {
		return nil, err
	}

	if !inSync {
		logger.WarnKV(ctx, "Artifact drifted", "path", repo.Location(), "fingerprint", result.Fingerprint)
		return nil, fmt.Errorf("%w: %s", ErrDrift, repo.Location())
	}

	logger.InfoKV(ctx, "Artifact is in sync", "path", repo.Location(), "fingerprint", result.Fingerprint)

	return result, nil
}

// matches reports whether current equals a fresh rendering.
func (r *run) matches(ctx context.Context, current []byte, pinnedDate bool) (bool, error) {
	if pinnedDate {
		rendered, err := r.render(ctx, r.bindings.Values)
		if err != nil {
			return false, err
		}

		return artifact.Fingerprint([]byte(rendered.Text)) == artifact.Fingerprint(current), nil
	}

	values := make(map[string]string, len(r.bindings.Values))
	for name, value := range r.bindings.Values {
		values[name] = value
	}

	if r.bindings.Sources[BindingBuildDate] == SourceStandard {
		values[BindingBuildDate] = timestampSentinel
	}

	rendered, err := r.render(ctx, values)
	if err != nil {
		return false, err
	}

	parts := strings.Split(rendered.Text, timestampSentinel)
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}

	pattern, err := regexp.Compile(`\A` + strings.Join(parts, anyTimestamp) + `\z`)
	if err != nil {
		return false, fmt.Errorf("compile drift pattern: %w", err)
	}

	return pattern.Match(current), nil
}
