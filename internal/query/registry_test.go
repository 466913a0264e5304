package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegistryClientPerTab(t *testing.T) {
	r := NewRegistry(time.Minute, time.Hour)

	a := r.Client("tab-a")
	assert.Same(t, a, r.Client("tab-a"))
	assert.NotSame(t, a, r.Client("tab-b"))
	assert.Equal(t, 2, r.Len())

	r.Drop("tab-a")
	assert.Equal(t, 1, r.Len())
	assert.NotSame(t, a, r.Client("tab-a"))
}

func TestRegistrySweep(t *testing.T) {
	clk := &clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	r := NewRegistry(time.Minute, time.Hour)
	r.now = clk.Now

	r.Client("idle")
	busy := r.Client("busy")
	clk.Advance(30 * time.Minute)
	r.Client("recent")
	clk.Advance(45 * time.Minute)

	release := make(chan struct{})
	started := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = Mutate(context.Background(), busy, MutationOptions{Name: "createProduct"}, func(context.Context) (int, error) {
			close(started)
			<-release
			return 0, nil
		})
	}()
	<-started

	assert.Equal(t, 1, r.Sweep())
	assert.Equal(t, 2, r.Len())

	close(release)
	<-done
	assert.Equal(t, 1, r.Sweep())
	assert.Equal(t, 1, r.Len())
}
