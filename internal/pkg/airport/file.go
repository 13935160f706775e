package airport

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileFetcher serves statuses from <Dir>/<CODE>.json after a random delay,
// standing in for the remote API when running offline.
type FileFetcher struct {
	Dir      string
	MinDelay time.Duration
	MaxDelay time.Duration
}

func NewFileFetcher(dir string, minDelay, maxDelay time.Duration) *FileFetcher {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}

	return &FileFetcher{
		Dir:      dir,
		MinDelay: minDelay,
		MaxDelay: maxDelay,
	}
}

func (f *FileFetcher) Fetch(ctx context.Context, code string) (Status, error) {
	select {
	case <-time.After(f.delay()):
	case <-ctx.Done():
		return Status{}, &FetchError{Code: code, Cause: fmt.Errorf("context cancelled or timeout: %w", ctx.Err())}
	}

	if code == "" || strings.ContainsAny(code, `/\.`) {
		return Status{}, &FetchError{Code: code, Cause: ErrUnknownAirport}
	}

	file, err := os.Open(filepath.Join(f.Dir, code+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return Status{}, &FetchError{Code: code, Cause: ErrUnknownAirport}
	}
	if err != nil {
		return Status{}, &FetchError{Code: code, Cause: fmt.Errorf("open fixture: %w", err)}
	}
	defer file.Close()

	status, err := Decode(file)
	if err != nil {
		return Status{}, &FetchError{Code: code, Cause: err}
	}

	return status, nil
}

func (f *FileFetcher) delay() time.Duration {
	spread := f.MaxDelay - f.MinDelay
	if spread <= 0 {
		return f.MinDelay
	}

	return f.MinDelay + time.Duration(rand.Int63n(int64(spread)+1))
}
