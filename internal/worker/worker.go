// File: internal/worker/worker.go
package worker

import (
	"context"
	"errors"
	"sync"
)

// ErrStopped 表示 pool 已停止，不再接受工作
var ErrStopped = errors.New("worker pool stopped")

// Task represents a unit of work executed by the pool.
type Task func()

// Pool 固定數量的 goroutine 依序處理送入的工作
type Pool interface {
	Submit(ctx context.Context, t Task) error
	Stop()
}

// NewPool creates a pool with n workers. n<=0 defaults to 1.
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Task), done: make(chan struct{})}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case job := <-p.jobs:
					if job != nil {
						job()
					}
				case <-p.done:
					return
				}
			}
		}()
	}
	return p
}

type pool struct {
	jobs chan Task
	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

// Submit 等待空閒 worker 接手；ctx 取消或 pool 停止時回傳錯誤
func (p *pool) Submit(ctx context.Context, t Task) error {
	select {
	case <-p.done:
		return ErrStopped
	default:
	}
	select {
	case p.jobs <- t:
		return nil
	case <-p.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop 等待進行中的工作結束；可重複呼叫
func (p *pool) Stop() {
	p.once.Do(func() { close(p.done) })
	p.wg.Wait()
}

// RunAll 將 jobs 分派到 pool 並等待全部完成，回傳所有錯誤的合併結果
func RunAll(ctx context.Context, p Pool, jobs ...func(context.Context) error) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	record := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}
	for _, job := range jobs {
		job := job
		wg.Add(1)
		err := p.Submit(ctx, func() {
			defer wg.Done()
			if err := job(ctx); err != nil {
				record(err)
			}
		})
		if err != nil {
			wg.Done()
			record(err)
		}
	}
	wg.Wait()
	return errors.Join(errs...)
}
