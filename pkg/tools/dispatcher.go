package tools

import (
	"context"
	"log"
	"sync"
)

// ToolFunc defines a function executed asynchronously.
type ToolFunc func(ctx context.Context) error

var running sync.Map

// Dispatch runs the provided tool in a separate goroutine. fire-and-forget solution.
// A tool that is still running under the same name is not started again.
func Dispatch(ctx context.Context, name string, fn ToolFunc) bool {
	if _, busy := running.LoadOrStore(name, struct{}{}); busy {
		log.Printf("[%s] still running, skipped", name)
		return false
	}
	go func() {
		defer running.Delete(name)
		if err := fn(ctx); err != nil {
			log.Printf("[%s] failed: %v", name, err)
		}
	}()
	return true
}
