package services

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	timeout = 2 * time.Second
	tick    = 5 * time.Millisecond
	settle  = 20 * time.Millisecond
)

func TestInflight_SequentialCallsRunEachTime(t *testing.T) {
	g := newInflight()
	var runs int

	for i := 0; i < 3; i++ {
		v, err := g.do(OpSearch, "q", func() (any, error) {
			runs++
			return runs, nil
		})
		require.NoError(t, err)
		require.Equal(t, i+1, v)
	}
	require.False(t, g.running(OpSearch))
}

func TestInflight_ErrorClearsFlag(t *testing.T) {
	g := newInflight()
	boom := errors.New("boom")

	_, err := g.do(OpUpload, "k", func() (any, error) { return nil, boom })

	require.ErrorIs(t, err, boom)
	require.False(t, g.running(OpUpload))
}

func TestInflight_DifferentKeyIsRefusedOtherOpIsNot(t *testing.T) {
	g := newInflight()
	release := make(chan struct{})
	started := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = g.do(OpSearch, "a", func() (any, error) {
			close(started)
			<-release
			return nil, nil
		})
	}()
	<-started

	require.True(t, g.running(OpSearch))

	_, err := g.do(OpSearch, "b", func() (any, error) { return nil, nil })
	require.ErrorIs(t, err, ErrInProgress)

	_, err = g.do(OpUpload, "b", func() (any, error) { return "ok", nil })
	require.NoError(t, err)

	close(release)
	wg.Wait()
	require.False(t, g.running(OpSearch))
}

func TestInflight_SameKeyShares(t *testing.T) {
	g := newInflight()
	release := make(chan struct{})
	started := make(chan struct{})
	var runs atomic.Int32

	fn := func() (any, error) {
		if runs.Add(1) == 1 {
			close(started)
		}
		<-release
		return "result", nil
	}

	var wg sync.WaitGroup
	results := make([]any, 3)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = g.do(OpSearch, "same", fn)
		}()
		if i == 0 {
			<-started
		}
	}

	require.Eventually(t, func() bool {
		g.mu.Lock()
		defer g.mu.Unlock()
		f, ok := g.active[OpSearch]
		return ok && f.callers == 3
	}, timeout, tick)
	time.Sleep(settle)

	close(release)
	wg.Wait()

	require.Equal(t, []any{"result", "result", "result"}, results)
	require.EqualValues(t, 1, runs.Load())
	require.False(t, g.running(OpSearch))
}
