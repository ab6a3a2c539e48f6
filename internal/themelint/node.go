package themelint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"golang.org/x/mod/semver"
)

// Node.js versions Stylelint 15 can run on.
const (
	MinNodeVersion         = "v14.0.0"
	RecommendedNodeVersion = "v16.0.0"
)

// ErrNodeNotFound is returned by a NodeDetector when no node binary is available.
var ErrNodeNotFound = errors.New("node executable not found")

// NodeDetector reports the installed Node.js version, e.g. "v18.17.1".
type NodeDetector interface {
	NodeVersion(ctx context.Context) (string, error)
}

// ExecNodeDetector runs `node --version`.
type ExecNodeDetector struct {
	// Binary defaults to "node".
	Binary string
}

// NodeVersion implements NodeDetector.
func (p ExecNodeDetector) NodeVersion(ctx context.Context) (string, error) {
	bin := p.Binary
	if bin == "" {
		bin = "node"
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return "", ErrNodeNotFound
	}
	// #nosec G204 - binary is resolved from PATH, argument is fixed
	out, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("running %s --version: %w", bin, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// CheckNodeVersion validates the runtime Stylelint will run on. A version
// below MinNodeVersion is fatal; below RecommendedNodeVersion only warns.
// A missing or unreadable node binary is reported and tolerated, setup
// never executes Node itself.
func CheckNodeVersion(ctx context.Context, detector NodeDetector, rep *Reporter, log *slog.Logger) error {
	log = orNop(log)

	raw, err := detector.NodeVersion(ctx)
	if err != nil {
		log.Debug("node version check failed", "error", err)
		rep.Warn("Could not determine the Node.js version; Stylelint requires Node.js 14 or newer")
		return nil
	}

	version := normalizeNodeVersion(raw)
	if !semver.IsValid(version) {
		log.Debug("unrecognized node version", "version", raw)
		rep.Warn("Unrecognized Node.js version %q; Stylelint requires Node.js 14 or newer", raw)
		return nil
	}
	log.Debug("node version", "version", version)

	if semver.Compare(version, MinNodeVersion) < 0 {
		return newError(KindEnvironmentUnsupported,
			fmt.Sprintf("Node.js %s is not supported, Stylelint requires Node.js 14 or newer. Please upgrade Node.js from https://nodejs.org/", version),
			nil)
	}
	if semver.Compare(version, RecommendedNodeVersion) < 0 {
		rep.Warn("Node.js %s is outdated, Node.js 16 or newer is recommended", version)
	}
	return nil
}

func normalizeNodeVersion(raw string) string {
	v := strings.TrimSpace(raw)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
