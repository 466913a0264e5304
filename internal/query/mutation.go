package query

import "context"

type MutationOptions struct {
	// Name groups concurrent runs for IsMutating.
	Name string
	// Invalidates lists key prefixes to mark stale after a success.
	Invalidates []string
}

// Mutate runs fn once. Nothing is invalidated when fn fails.
func Mutate[T any](ctx context.Context, c *Client, opts MutationOptions, fn func(context.Context) (T, error)) (T, error) {
	c.mu.Lock()
	c.mutating[opts.Name]++
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.mutating[opts.Name]--
		if c.mutating[opts.Name] <= 0 {
			delete(c.mutating, opts.Name)
		}
		c.mu.Unlock()
	}()

	v, err := fn(ctx)
	if err != nil {
		return v, err
	}
	for _, prefix := range opts.Invalidates {
		c.Invalidate(prefix)
	}
	return v, nil
}
