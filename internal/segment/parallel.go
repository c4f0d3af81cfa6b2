package segment

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
)

// parallelJob is the shared state of one parallelMap invocation.
type parallelJob struct {
	fn     func(i int) error
	errs   []error
	failed atomic.Bool
	wg     sync.WaitGroup
}

// parallelUnit tags a job with the index of one unit of work.
type parallelUnit struct {
	job *parallelJob
	idx int
}

// parallelMap runs fn(0..n-1) on a fixed-size worker pool and waits for
// completion. Units are independent: fn must only write state owned by
// its own index, which keeps the assembled output identical to a
// sequential run regardless of completion order.
//
// The job is fail-fast: after the first unit error, units that have not
// started yet are skipped, and the first error in index order is
// returned. Callers must not publish any results when an error comes
// back.
func parallelMap(workers, n int, fn func(i int) error) error {
	if n == 0 {
		return nil
	}
	if workers > n {
		workers = n
	}

	job := &parallelJob{fn: fn, errs: make([]error, n)}
	pool, err := ants.NewPoolWithFunc(workers, func(arg interface{}) {
		u, ok := arg.(*parallelUnit)
		if !ok {
			panic("segment: parallel pool received unexpected argument type")
		}
		defer u.job.wg.Done()
		if u.job.failed.Load() {
			return
		}
		if err := u.job.fn(u.idx); err != nil {
			u.job.errs[u.idx] = err
			u.job.failed.Store(true)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	for i := 0; i < n; i++ {
		job.wg.Add(1)
		if err := pool.Invoke(&parallelUnit{job: job, idx: i}); err != nil {
			job.wg.Done()
			job.errs[i] = fmt.Errorf("failed to submit unit: %w", err)
			job.failed.Store(true)
			break
		}
	}
	job.wg.Wait()

	if job.failed.Load() {
		for _, err := range job.errs {
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// SegmentWordsParallel segments every line into words on a worker
// pool. Each unit works on its own line band and writes an
// index-tagged result slot; the memoized tree is only populated once
// every unit has succeeded, so a failed job leaves no partial state.
// The produced tree is identical to SegmentWords.
func (p *Page) SegmentWordsParallel() error {
	lines := p.Lines()
	results := make([][]*Word, len(lines))
	jobID := uuid.NewString()

	err := parallelMap(p.cfg.workers(), len(lines), func(i int) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("line %d: %v", i, r)
			}
		}()
		results[i] = detectWords(p.grid.Band(lines[i].Top, lines[i].Bottom), p.cfg)
		return nil
	})
	if err != nil {
		return fmt.Errorf("word segmentation job %s failed: %w", jobID, err)
	}

	for i, line := range lines {
		line.setWords(results[i])
	}
	return nil
}

// SegmentLettersParallel segments every (line, word) pair into letters
// on a worker pool, running the parallel word pass first if needed.
// The produced tree is identical to SegmentLetters.
func (p *Page) SegmentLettersParallel() error {
	if err := p.SegmentWordsParallel(); err != nil {
		return err
	}

	type wordRef struct {
		line, word int
	}
	lines := p.Lines()
	units := make([]wordRef, 0)
	for li, line := range lines {
		for wi := range line.words {
			units = append(units, wordRef{line: li, word: wi})
		}
	}

	results := make([][]*Letter, len(units))
	jobID := uuid.NewString()

	err := parallelMap(p.cfg.workers(), len(units), func(i int) (err error) {
		u := units[i]
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("line %d word %d: %v", u.line, u.word, r)
			}
		}()
		line := lines[u.line]
		results[i] = detectLetters(p.grid, line, line.words[u.word], p.cfg)
		return nil
	})
	if err != nil {
		return fmt.Errorf("letter segmentation job %s failed: %w", jobID, err)
	}

	for i, u := range units {
		lines[u.line].words[u.word].setLetters(results[i])
	}
	return nil
}
