package services

import "errors"

// Compensations collects the inverse actions of side effects made outside
// the transaction. Run executes them newest first.
type Compensations struct {
	undo []func() error
}

func (c *Compensations) Add(fn func() error) {
	c.undo = append(c.undo, fn)
}

func (c *Compensations) Len() int { return len(c.undo) }

// Run executes every registered action, even after one fails, and clears
// the list.
func (c *Compensations) Run() error {
	var errs []error
	for i := len(c.undo) - 1; i >= 0; i-- {
		if err := c.undo[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.undo = nil
	return errors.Join(errs...)
}
