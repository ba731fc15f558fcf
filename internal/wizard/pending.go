package wizard

import (
	"context"
	"fmt"
	"sync"

	"github.com/mark3labs/corewizard/internal/logger"
	"github.com/sourcegraph/conc/pool"
)

// Pending tracks the asynchronous work launched by one Finish or Start call.
//
// The controller returns as soon as every handler has been invoked; the
// work keeps running. Hosts that want confirmation call Wait, others may
// ignore the handle entirely (fire-and-forget).
type Pending struct {
	ctx  context.Context
	pool *pool.ErrorPool

	mu     sync.Mutex
	sealed bool
	names  []string

	done chan struct{}
	err  error
}

func newPending(ctx context.Context) *Pending {
	return &Pending{
		ctx:  ctx,
		pool: pool.New().WithErrors(),
		done: make(chan struct{}),
	}
}

// Go implements Tasks. Work must be launched while the handler runs;
// launching after the controller has returned is a programming error and
// the work is dropped.
func (p *Pending) Go(name string, fn func(ctx context.Context) error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sealed {
		logger.Error("Task %s launched after its batch was sealed, dropping it", name)
		return
	}

	p.names = append(p.names, name)
	p.pool.Go(func() error {
		logger.Debug("Task %s started", name)
		if err := fn(p.ctx); err != nil {
			logger.Error("Task %s failed: %v", name, err)
			return fmt.Errorf("%s: %w", name, err)
		}
		logger.Debug("Task %s done", name)
		return nil
	})
}

// seal stops accepting work and starts waiting for what was launched.
func (p *Pending) seal() *Pending {
	p.mu.Lock()
	p.sealed = true
	p.mu.Unlock()

	go func() {
		p.err = p.pool.Wait()
		close(p.done)
	}()
	return p
}

// Tasks returns the names of the launched tasks in launch order.
func (p *Pending) Tasks() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Done is closed once every launched task has returned.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until every launched task has returned and reports their
// failures joined together.
func (p *Pending) Wait() error {
	<-p.done
	return p.err
}

// WaitContext is Wait bounded by ctx. The tasks themselves are not
// cancelled when ctx ends.
func (p *Pending) WaitContext(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return fmt.Errorf("waiting for %d task(s): %w", len(p.Tasks()), ctx.Err())
	}
}
