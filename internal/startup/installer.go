// Package startup installs the persistence artifact: a generated
// interpreter-startup script that re-applies the editable-install
// overrides on every interpreter start.
//
// Unlike the patch engine, installation errors here are real errors and
// are surfaced, never downgraded: a caller asking for persistence must
// learn when it did not happen.
package startup

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/editfix/editfix/internal/fsops"
)

// ArtifactName is the file name the host interpreter executes at start.
const ArtifactName = "sitecustomize.py"

// marker identifies artifacts written by editfix. A startup file
// without it belongs to someone else and is never overwritten silently.
const marker = "# editfix startup hook"

// artifactTemplate is the generated script body. It shells out to the
// editfix binary so the persisted behavior always matches the installed
// tool, and swallows every failure: interpreter startup must survive a
// missing or broken binary.
const artifactTemplate = marker + ` -- managed by editfix, do not edit
import subprocess


def _apply_editfix():
    try:
        subprocess.run(
            [%s, "apply"],
            check=False,
            timeout=60,
            capture_output=True,
        )
    except Exception:
        pass


_apply_editfix()
del _apply_editfix
`

// ErrArtifactExists reports that a foreign startup file occupies the
// destination and force was not given.
var ErrArtifactExists = errors.New("startup artifact exists and was not written by editfix")

// InstallResult describes an installation outcome.
type InstallResult struct {
	// Path is the artifact's destination.
	Path string `json:"path"`

	// AlreadyInstalled is set when an editfix artifact was found and
	// left in place.
	AlreadyInstalled bool `json:"already_installed"`

	// BackupPath is where a pre-existing foreign file was saved when
	// force overwrote it.
	BackupPath string `json:"backup_path,omitempty"`
}

// ArtifactStatus describes the current installation state.
type ArtifactStatus struct {
	Installed bool   `json:"installed"`
	Path      string `json:"path"`
	Ours      bool   `json:"ours"`
}

// Installer writes and removes the startup artifact.
type Installer struct {
	fs      fsops.FS
	destDir string
	binary  string
}

// NewInstaller creates an Installer writing into destDir. binary is the
// editfix executable path embedded in the artifact; empty means
// "editfix" resolved from PATH at interpreter start.
func NewInstaller(fs fsops.FS, destDir, binary string) *Installer {
	if binary == "" {
		binary = "editfix"
	}
	return &Installer{fs: fs, destDir: destDir, binary: binary}
}

// Path returns the artifact's destination path.
func (i *Installer) Path() string {
	return filepath.Join(i.destDir, ArtifactName)
}

// Install writes the startup artifact. Installation is idempotent: an
// existing editfix artifact is left in place. A foreign file at the
// destination is an error unless force is set, in which case it is
// backed up next to the artifact before being replaced.
func (i *Installer) Install(force bool) (*InstallResult, error) {
	dest := i.Path()
	result := &InstallResult{Path: dest}

	exists, err := i.fs.Exists(dest)
	if err != nil {
		return nil, fmt.Errorf("failed to check startup artifact: %w", err)
	}

	if exists {
		ours, err := i.isOurs(dest)
		if err != nil {
			return nil, err
		}

		switch {
		case ours && !force:
			result.AlreadyInstalled = true
			return result, nil
		case !ours && !force:
			return nil, fmt.Errorf("%w: %s", ErrArtifactExists, dest)
		case !ours:
			backup := dest + ".backup"
			data, err := i.fs.ReadFile(dest)
			if err != nil {
				return nil, fmt.Errorf("failed to read existing startup file: %w", err)
			}
			if err := i.fs.AtomicWrite(backup, data, 0644); err != nil {
				return nil, fmt.Errorf("failed to back up existing startup file: %w", err)
			}
			result.BackupPath = backup
		}
	}

	// strconv.Quote escapes are a subset of Python string escapes, so
	// the emitted literal stays valid for any binary path.
	content := fmt.Sprintf(artifactTemplate, strconv.Quote(i.binary))
	if err := i.fs.AtomicWrite(dest, []byte(content), 0644); err != nil {
		return nil, fmt.Errorf("failed to write startup artifact: %w", err)
	}

	return result, nil
}

// Uninstall removes the artifact. Returns false if none is installed.
// A foreign file at the destination is left alone and reported as an
// error.
func (i *Installer) Uninstall() (bool, error) {
	dest := i.Path()

	exists, err := i.fs.Exists(dest)
	if err != nil {
		return false, fmt.Errorf("failed to check startup artifact: %w", err)
	}
	if !exists {
		return false, nil
	}

	ours, err := i.isOurs(dest)
	if err != nil {
		return false, err
	}
	if !ours {
		return false, fmt.Errorf("%w: %s", ErrArtifactExists, dest)
	}

	if err := i.fs.Remove(dest); err != nil {
		return false, fmt.Errorf("failed to remove startup artifact: %w", err)
	}
	return true, nil
}

// Status reports whether an artifact is installed and whether it is
// editfix-managed.
func (i *Installer) Status() (*ArtifactStatus, error) {
	dest := i.Path()
	status := &ArtifactStatus{Path: dest}

	exists, err := i.fs.Exists(dest)
	if err != nil {
		return nil, fmt.Errorf("failed to check startup artifact: %w", err)
	}
	if !exists {
		return status, nil
	}

	status.Installed = true
	status.Ours, err = i.isOurs(dest)
	if err != nil {
		return nil, err
	}
	return status, nil
}

func (i *Installer) isOurs(path string) (bool, error) {
	data, err := i.fs.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read startup artifact: %w", err)
	}
	return strings.Contains(string(data), marker), nil
}
