package downloadmgr

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/spf13/afero"
)

// hashChunkSize is the read size used while hashing files
const hashChunkSize = 8 * 1024

// ErrInvalidSha is returned when the downloaded file's sha1 sum does not match the expected one
type ErrInvalidSha struct {
	FileName    string
	ExpectedSha string
	ActualSha   string
}

func (e *ErrInvalidSha) Error() string {
	return fmt.Sprintf(
		"File corrupted: %s sha1 is invalid.\n\texpected to be \"%s\"\n\tbut actually is \"%s\"\n",
		e.FileName,
		e.ExpectedSha,
		e.ActualSha,
	)
}

// Verifier checks local files against their expected content hash
type Verifier struct {
	Fs afero.Fs
}

// NewVerifier returns a verifier reading from fs
func NewVerifier(fs afero.Fs) *Verifier {
	return &Verifier{Fs: fs}
}

// Verify returns true if path exists, is not empty and its sha1 equals sha.
// It always returns false if sha is empty
func (v *Verifier) Verify(path string, sha string) bool {
	if sha == "" || !v.Present(path) {
		return false
	}
	actual, err := v.sum(path)
	if err != nil {
		return false
	}
	return actual == sha
}

// Present returns true if path exists and is not empty. It does not hash anything
func (v *Verifier) Present(path string) bool {
	info, err := v.Fs.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}

// checkSha1 removes path and returns an ErrInvalidSha if its content does not match sha
func (v *Verifier) checkSha1(sha string, path string) error {
	actual, err := v.sum(path)
	// probably io error during hashing
	if err != nil {
		return err
	}
	if actual != sha {
		v.Fs.Remove(path)
		return &ErrInvalidSha{path, sha, actual}
	}
	return nil
}

func (v *Verifier) sum(path string) (string, error) {
	src, err := v.Fs.Open(path)
	if err != nil {
		return "", err
	}
	defer src.Close()

	hasher := sha1.New()
	buf := make([]byte, hashChunkSize)
	for {
		n, err := src.Read(buf)
		hasher.Write(buf[:n])
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
