// Package hash fingerprints sets of descriptor files so discovery can
// tell whether anything changed between refreshes without re-parsing.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"
)

// Fingerprinter computes a digest over a set of files.
type Fingerprinter interface {
	// FingerprintFiles computes a single digest covering the names and
	// contents of the given files. Unreadable files contribute their name
	// and the read error, so appearing/disappearing files still change
	// the digest.
	FingerprintFiles(paths []string) string
}

// SHA256Fingerprinter implements Fingerprinter using SHA-256.
type SHA256Fingerprinter struct{}

// NewSHA256Fingerprinter creates a new SHA256Fingerprinter.
func NewSHA256Fingerprinter() *SHA256Fingerprinter {
	return &SHA256Fingerprinter{}
}

// FingerprintFiles computes the combined SHA-256 digest of the files.
// The input order does not affect the result.
func (f *SHA256Fingerprinter) FingerprintFiles(paths []string) string {
	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Strings(sorted)

	h := sha256.New()
	for _, p := range sorted {
		_, _ = io.WriteString(h, p)
		_, _ = io.WriteString(h, "\x00")

		file, err := os.Open(p)
		if err != nil {
			_, _ = io.WriteString(h, fmt.Sprintf("err:%v", err))
			_, _ = io.WriteString(h, "\x00")
			continue
		}
		_, _ = io.Copy(h, file)
		_ = file.Close()
		_, _ = io.WriteString(h, "\x00")
	}

	return hex.EncodeToString(h.Sum(nil))
}

// FakeFingerprinter implements Fingerprinter with a settable digest.
type FakeFingerprinter struct {
	digest string
}

// NewFakeFingerprinter creates a FakeFingerprinter returning digest.
func NewFakeFingerprinter(digest string) *FakeFingerprinter {
	return &FakeFingerprinter{digest: digest}
}

// Set changes the digest returned by FingerprintFiles.
func (f *FakeFingerprinter) Set(digest string) {
	f.digest = digest
}

// FingerprintFiles returns the configured digest.
func (f *FakeFingerprinter) FingerprintFiles([]string) string {
	return f.digest
}
