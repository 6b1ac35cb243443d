package downloadmgr

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// DefaultTimeout is the time a request may stall (connecting or reading) before it fails
const DefaultTimeout = 15 * time.Second

var defaultClient = http.Client{
	Transport: &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		Dial: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).Dial,
		TLSHandshakeTimeout:   20 * time.Second,
		ResponseHeaderTimeout: 60 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConnsPerHost:   16,
	},
}

// Status is the result of a single fetch
type Status int

const (
	// Skipped means the target was already valid (or the fetcher is offline)
	Skipped Status = iota
	// Downloaded means the target was written
	Downloaded
	// Failed means the target could not be written. It may be partially written
	Failed
)

func (s Status) String() string {
	switch s {
	case Skipped:
		return "skipped"
	case Downloaded:
		return "downloaded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Outcome describes what Fetch did with a task
type Outcome struct {
	Task   Task
	Status Status
	// Err is set if Status is Failed
	Err error
	// Bytes is the number of bytes written
	Bytes int64
}

// Fetcher downloads single tasks. The zero value is not usable, use NewFetcher
type Fetcher struct {
	Client   *http.Client
	Fs       afero.Fs
	Verifier *Verifier
	// Offline turns every fetch into a no-op
	Offline bool
	// Timeout is the stall timeout of a request. Defaults to DefaultTimeout
	Timeout time.Duration
	// OnBytes is called with the number of bytes read after every chunk
	OnBytes func(n int64)
}

// NewFetcher returns a fetcher writing to fs. client may be nil
func NewFetcher(client *http.Client, fs afero.Fs) *Fetcher {
	if client == nil {
		client = &defaultClient
	}
	return &Fetcher{
		Client:   client,
		Fs:       fs,
		Verifier: NewVerifier(fs),
		Timeout:  DefaultTimeout,
	}
}

// Fetch downloads the task to its target unless the target already matches
// the expected sha1. Errors are never returned directly, they are part of the Outcome
func (f *Fetcher) Fetch(ctx context.Context, task Task) Outcome {
	if f.Offline {
		return Outcome{Task: task, Status: Skipped}
	}
	if f.Verifier.Verify(task.Target, task.Sha1) {
		return Outcome{Task: task, Status: Skipped}
	}

	n, err := f.download(ctx, task)
	if err != nil {
		return Outcome{Task: task, Status: Failed, Err: err, Bytes: n}
	}
	return Outcome{Task: task, Status: Downloaded, Bytes: n}
}

func (f *Fetcher) download(ctx context.Context, task Task) (int64, error) {
	err := f.Fs.MkdirAll(filepath.Dir(task.Target), os.ModePerm)
	if err != nil {
		return 0, err
	}

	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	// the timer is reset on every read, so only stalled transfers time out
	stall := time.AfterFunc(timeout, cancel)
	defer stall.Stop()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, task.URL, nil)
	if err != nil {
		return 0, err
	}

	res, err := f.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("error while fetching %s: %w", task.URL, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("invalid status code: %s from %s", res.Status, res.Request.URL)
	}

	dest, err := f.Fs.Create(task.Target)
	if err != nil {
		return 0, err
	}
	body := &progressReader{
		r: res.Body,
		onRead: func(n int) {
			stall.Reset(timeout)
			if f.OnBytes != nil {
				f.OnBytes(int64(n))
			}
		},
	}
	written, err := io.Copy(dest, body)
	if closeErr := dest.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return written, fmt.Errorf("error while writing %s: %w", task.Target, err)
	}

	// check sha if there is one set
	if task.Sha1 != "" {
		if err := f.Verifier.checkSha1(task.Sha1, task.Target); err != nil {
			return written, err
		}
	}
	return written, nil
}

type progressReader struct {
	r      io.Reader
	onRead func(n int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.onRead(n)
	}
	return n, err
}
