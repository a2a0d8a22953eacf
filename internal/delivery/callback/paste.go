package callback

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"dashcam/internal/domain/service"
	"dashcam/internal/errors"
)

// ErrNoRedirectPasted is returned when input ends before a redirect URL was entered
var ErrNoRedirectPasted = errors.New("no redirect url was pasted")

// PasteReceiver asks the user to paste the address the browser ended up on.
// It serves targets where nothing can listen for the redirect.
type PasteReceiver struct {
	in          io.Reader
	out         io.Writer
	redirectURL string
}

var _ service.RedirectReceiver = (*PasteReceiver)(nil)

// NewPasteReceiver reads redirects from in and writes the prompt to out
func NewPasteReceiver(in io.Reader, out io.Writer, redirectURL string) *PasteReceiver {
	return &PasteReceiver{
		in:          in,
		out:         out,
		redirectURL: redirectURL,
	}
}

// RedirectURL returns the configured redirect address
func (r *PasteReceiver) RedirectURL() string {
	return r.redirectURL
}

// Await reads the first non-empty line and parses it as the redirect URL
func (r *PasteReceiver) Await(ctx context.Context) (*url.URL, error) {
	fmt.Fprint(r.out, "Paste the full address your browser was redirected to: ")

	type result struct {
		line string
		err  error
	}
	lines := make(chan result, 1)

	go func() {
		scanner := bufio.NewScanner(r.in)
		scanner.Buffer(make([]byte, 0, 4096), 64*1024)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				lines <- result{line: line}

				return
			}
		}
		err := scanner.Err()
		if err == nil {
			err = ErrNoRedirectPasted
		}
		lines <- result{err: err}
	}()

	select {
	case res := <-lines:
		if res.err != nil {
			return nil, errors.WithStack(res.err)
		}

		redirect, err := url.Parse(res.line)
		if err != nil {
			return nil, errors.Wrap(err, "parse pasted redirect")
		}
		if redirect.RawQuery == "" {
			return nil, errors.Errorf("pasted address %q has no query parameters", res.line)
		}

		return redirect, nil
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "waiting for pasted redirect")
	}
}
