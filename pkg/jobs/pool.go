package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task is a unit of background work. Each task carries its own Run
// function so callers can enqueue closures without a central dispatcher.
type Task struct {
	Name string
	Run  func(context.Context) error

	attempt int
}

// PoolConfig tunes the worker pool.
type PoolConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
}

// Pool executes queued tasks on a fixed set of workers. A failed task is
// retried with a flat delay up to MaxRetries, then dropped with an error
// log. Tasks are held in memory only, a restart loses the backlog.
type Pool struct {
	name   string
	cfg    PoolConfig
	logger *zap.Logger

	tasks   chan Task
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

func NewPool(name string, cfg PoolConfig, logger *zap.Logger) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 8
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pool{
		name:   name,
		cfg:    cfg,
		logger: logger,
		tasks:  make(chan Task, cfg.BufferSize),
	}
}

// Start launches the workers. Calling Start twice is a no-op.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	p.ctx, p.cancel = context.WithCancel(ctx)
	for i := 0; i < p.cfg.Workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	p.running = true
	p.logger.Info("worker pool started",
		zap.String("pool", p.name),
		zap.Int("workers", p.cfg.Workers))
}

// Stop cancels the workers and waits for in-flight tasks to finish.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.cancel()
	p.running = false
	p.mu.Unlock()

	p.wg.Wait()
	p.logger.Info("worker pool stopped", zap.String("pool", p.name))
}

// Submit queues a task for execution. It blocks while the buffer is full
// and fails once the pool has been stopped.
func (p *Pool) Submit(task Task) error {
	p.mu.Lock()
	ctx := p.ctx
	running := p.running
	p.mu.Unlock()

	if !running {
		return fmt.Errorf("pool %s is not running", p.name)
	}
	if task.Run == nil {
		return fmt.Errorf("pool %s: task %q has no run function", p.name, task.Name)
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("pool %s stopped: %w", p.name, ctx.Err())
	case p.tasks <- task:
		return nil
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case task := <-p.tasks:
			if err := task.Run(p.ctx); err != nil {
				p.retry(task, err)
			}
		}
	}
}

func (p *Pool) retry(task Task, err error) {
	task.attempt++
	if task.attempt > p.cfg.MaxRetries {
		p.logger.Error("task dropped after retries",
			zap.String("pool", p.name),
			zap.String("task", task.Name),
			zap.Int("attempts", task.attempt),
			zap.Error(err))
		return
	}

	p.logger.Warn("task failed, will retry",
		zap.String("pool", p.name),
		zap.String("task", task.Name),
		zap.Int("attempt", task.attempt),
		zap.Error(err))

	go func(t Task) {
		timer := time.NewTimer(p.cfg.RetryDelay)
		defer timer.Stop()
		select {
		case <-p.ctx.Done():
		case <-timer.C:
			select {
			case <-p.ctx.Done():
			case p.tasks <- t:
			}
		}
	}(task)
}
