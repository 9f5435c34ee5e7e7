// Package check provides environment diagnostics (--check mode) and the
// pre-run dependency validation (CheckDeps) for java and the converter jar.
package check

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Sentinel errors returned by CheckDeps when the converter cannot run.
var (
	ErrConverterNotFound = errors.New("xresloader jar not found")
	ErrJavaNotFound      = errors.New("java not found")
)

// versionTimeout bounds the `java -version` call in RunCheck.
const versionTimeout = 10 * time.Second

// CheckDeps verifies that converterFile exists and, unless dryRun is set,
// that java resolves to an executable.
func CheckDeps(converterFile, java string, dryRun bool) error {
	fi, err := os.Stat(converterFile)
	if err != nil || fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrConverterNotFound, converterFile)
	}
	if dryRun {
		return nil
	}
	if _, err := exec.LookPath(java); err != nil {
		return fmt.Errorf("%w: %s", ErrJavaNotFound, java)
	}
	return nil
}

// Target describes what RunCheck inspects.
type Target struct {
	ListFile      string
	WorkDir       string
	ConverterFile string
	Java          string
	Encoding      string
	Profile       string // --config file, if any
}

// RunCheck logs the state of every dependency. It is informational only
// and reports whether everything needed for a real run was found.
func RunCheck(ctx context.Context, t Target, log *slog.Logger) bool {
	log = log.With("component", "check")
	ok := true

	if t.Profile != "" {
		log.Info("profile", "path", t.Profile)
	}
	if t.ListFile != "" {
		log.Info("convert list", "path", t.ListFile, "work_dir", t.WorkDir)
	}

	if t.ConverterFile != "" {
		if fi, err := os.Stat(t.ConverterFile); err != nil || fi.IsDir() {
			log.Error("xresloader jar not found", "path", t.ConverterFile)
			ok = false
		} else {
			log.Info("xresloader jar found", "path", t.ConverterFile, "size", fi.Size())
		}
	}

	path, err := exec.LookPath(t.Java)
	if err != nil {
		log.Error("java not found", "java", t.Java)
		return false
	}
	version, err := javaVersion(ctx, path)
	if err != nil {
		log.Warn("java found but -version failed", "path", path, "err", err)
	} else {
		log.Info("java found", "path", path, "version", version)
	}

	log.Info("console encoding", "encoding", t.Encoding)
	return ok
}

// javaVersion returns the first line java prints for -version (on stderr).
func javaVersion(ctx context.Context, java string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, java, "-version").CombinedOutput()
	if err != nil {
		return "", err
	}
	first := strings.TrimSpace(string(out))
	if idx := strings.IndexByte(first, '\n'); idx > 0 {
		first = strings.TrimSpace(first[:idx])
	}
	return first, nil
}
