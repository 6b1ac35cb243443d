// Package integrity downloads the complete file set of a version, checks that
// nothing is missing and retries until the set is complete or the attempts run out.
package integrity

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/iamfatinilham/nuxcraft-pycher/internals/downloadmgr"
)

const (
	// DefaultMaxAttempts is the number of download rounds before giving up
	DefaultMaxAttempts = 7
	// DefaultBackoff is the fixed pause between two rounds
	DefaultBackoff = 5 * time.Second
	// missingSample is the number of missing file names that are printed per round
	missingSample = 15
)

// ErrIntegrityFailed is returned when files are still missing after the last attempt
var ErrIntegrityFailed = errors.New("failed to download required files")

// MissingFilesError lists the files that are still missing after all attempts.
// It wraps ErrIntegrityFailed
type MissingFilesError struct {
	Missing  []string
	Attempts int
}

func (e *MissingFilesError) Error() string {
	return fmt.Sprintf("%s: %d files are still missing after %d attempts", ErrIntegrityFailed, len(e.Missing), e.Attempts)
}

func (e *MissingFilesError) Unwrap() error {
	return ErrIntegrityFailed
}

// State of the pipeline
type State int

const (
	Unverified State = iota
	Downloading
	Checking
	Retrying
	Verified
	Failed
)

func (s State) String() string {
	switch s {
	case Unverified:
		return "unverified"
	case Downloading:
		return "downloading"
	case Checking:
		return "checking"
	case Retrying:
		return "retrying"
	case Verified:
		return "verified"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Logger receives the user facing messages of the pipeline
type Logger interface {
	Info(s string)
	Warn(s string)
}

// Pipeline runs download rounds until every task target exists
type Pipeline struct {
	Manager  *downloadmgr.DownloadManager
	Verifier *downloadmgr.Verifier
	Marker   Marker
	// Offline skips everything and reports Verified
	Offline bool
	// Recheck ignores an existing marker
	Recheck bool
	// RetryMissingOnly only queues the missing tasks in the following rounds
	// instead of the full queue
	RetryMissingOnly bool
	MaxAttempts      int
	Backoff          time.Duration
	Logger           Logger
	// OnState is called on every state transition
	OnState func(s State, attempt int)

	sleep func(ctx context.Context, d time.Duration) error
}

// New returns a pipeline using the default attempts and backoff
func New(manager *downloadmgr.DownloadManager, verifier *downloadmgr.Verifier, marker Marker, logger Logger) *Pipeline {
	return &Pipeline{
		Manager:     manager,
		Verifier:    verifier,
		Marker:      marker,
		MaxAttempts: DefaultMaxAttempts,
		Backoff:     DefaultBackoff,
		Logger:      logger,
	}
}

// Run downloads and checks tasks. It returns nil once all targets exist
// (and writes the marker), a *MissingFilesError after the last failed
// attempt or the context error if ctx is cancelled
func (p *Pipeline) Run(ctx context.Context, tasks []downloadmgr.Task) error {
	p.transition(Unverified, 0)

	if p.Offline {
		p.info("Offline mode. Skipping verification")
		p.transition(Verified, 0)
		return nil
	}
	if !p.Recheck && p.Marker.Exists() {
		p.info("Integrity marker found. Skipping verification")
		p.transition(Verified, 0)
		return nil
	}
	if p.Recheck {
		if err := p.Marker.Remove(); err != nil {
			return fmt.Errorf("could not remove integrity marker: %w", err)
		}
	}

	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	queue := tasks
	var missing []downloadmgr.Task
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		p.transition(Downloading, attempt)
		p.info(fmt.Sprintf("Download/verification attempt %d / %d", attempt, maxAttempts))
		if _, err := p.Manager.Start(ctx, queue); err != nil {
			return err
		}

		p.transition(Checking, attempt)
		missing = p.missing(tasks)
		if len(missing) == 0 {
			if err := p.Marker.Write(); err != nil {
				return fmt.Errorf("could not write integrity marker: %w", err)
			}
			p.info("All files verified successfully")
			p.transition(Verified, attempt)
			return nil
		}

		p.reportMissing(missing)
		if attempt == maxAttempts {
			break
		}

		p.transition(Retrying, attempt)
		p.warn(fmt.Sprintf("Retrying missing files in %s", p.Backoff))
		if err := p.wait(ctx); err != nil {
			return err
		}
		if p.RetryMissingOnly {
			queue = missing
		}
	}

	p.transition(Failed, maxAttempts)
	names := make([]string, len(missing))
	for i, t := range missing {
		names[i] = t.Target
	}
	return &MissingFilesError{Missing: names, Attempts: maxAttempts}
}

// missing returns every task whose target is absent or empty. Hashes are not checked here
func (p *Pipeline) missing(tasks []downloadmgr.Task) []downloadmgr.Task {
	missing := make([]downloadmgr.Task, 0)
	for _, t := range tasks {
		if !p.Verifier.Present(t.Target) {
			missing = append(missing, t)
		}
	}
	return missing
}

func (p *Pipeline) reportMissing(missing []downloadmgr.Task) {
	p.warn(fmt.Sprintf("Warning: %d file/s failed to download or are corrupt:", len(missing)))
	for i, t := range missing {
		if i == missingSample {
			p.info(fmt.Sprintf(" ... and %d more.", len(missing)-missingSample))
			break
		}
		p.info(" - " + filepath.Base(t.Target))
	}
}

func (p *Pipeline) wait(ctx context.Context) error {
	if p.sleep != nil {
		return p.sleep(ctx, p.Backoff)
	}
	timer := time.NewTimer(p.Backoff)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *Pipeline) transition(s State, attempt int) {
	if p.OnState != nil {
		p.OnState(s, attempt)
	}
}

func (p *Pipeline) info(s string) {
	if p.Logger != nil {
		p.Logger.Info(s)
	}
}

func (p *Pipeline) warn(s string) {
	if p.Logger != nil {
		p.Logger.Warn(s)
	}
}
