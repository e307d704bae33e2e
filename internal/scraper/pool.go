package scraper

import (
	"context"
	"runtime"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type parseJob struct {
	body string
	out  chan parseResult
}

type parseResult struct {
	doc *goquery.Document
	err error
}

// Pool runs HTML parsing on a fixed set of worker goroutines. Each submitted
// body gets its own result channel, so the document handed back always
// corresponds to the body passed in.
type Pool struct {
	jobs chan parseJob
	done chan struct{}
}

// NewPool starts a pool with the given number of parse workers. A count of
// zero or less uses one worker per CPU.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	p := &Pool{
		jobs: make(chan parseJob),
		done: make(chan struct{}),
	}

	for i := 0; i < workers; i++ {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	for {
		select {
		case job := <-p.jobs:
			doc, err := goquery.NewDocumentFromReader(strings.NewReader(job.body))
			job.out <- parseResult{doc: doc, err: err}
		case <-p.done:
			return
		}
	}
}

// Parse hands body to a worker and blocks until its document is ready or ctx
// is cancelled. Parsing is permissive: malformed markup still yields a
// best-effort tree.
func (p *Pool) Parse(ctx context.Context, body string) (*goquery.Document, error) {
	out := make(chan parseResult, 1)

	select {
	case p.jobs <- parseJob{body: body, out: out}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case res := <-out:
		return res.doc, res.err
	case <-ctx.Done():
		// The worker still finishes the parse and sends into the
		// buffered channel; the result is simply dropped.
		return nil, ctx.Err()
	}
}

// Close stops the workers. In-flight parses complete; further Parse calls
// block until ctx cancellation.
func (p *Pool) Close() {
	close(p.done)
}
