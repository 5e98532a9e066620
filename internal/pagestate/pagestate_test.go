package pagestate

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admin_console/pkg/apperrors"
)

type page struct {
	Title string
}

func TestLoad_Ready(t *testing.T) {
	view, err := Load(context.Background(), func(ctx context.Context) (page, error) {
		return page{Title: "Customers"}, nil
	})

	require.NoError(t, err)
	assert.True(t, view.Ready())
	assert.Equal(t, "Customers", view.Data.Title)
	assert.Empty(t, view.Error)
}

func TestLoad_ErrorDropsPartialData(t *testing.T) {
	failure := apperrors.LoadFailure(errors.New("boom"), "tax", "Failed to load tax configuration")

	view, err := Load(context.Background(), func(ctx context.Context) (page, error) {
		return page{Title: "half"}, failure
	})

	require.Error(t, err)
	assert.True(t, view.Failed())
	assert.Empty(t, view.Data.Title)
	assert.Equal(t, "Failed to load tax configuration", view.Error)
}

func TestLoad_CancelledRequestCommitsNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	view, err := Load(ctx, func(ctx context.Context) (page, error) {
		cancel()
		return page{Title: "late"}, nil
	})

	require.ErrorIs(t, err, ErrStale)
	assert.False(t, view.Ready())
	assert.Empty(t, view.Data.Title)
}

func TestLoad_PanicStillSettlesPhase(t *testing.T) {
	var view View[page]
	func() {
		defer func() { _ = recover() }()
		view, _ = Load(context.Background(), func(ctx context.Context) (page, error) {
			panic("broken mapper")
		})
	}()
	// при панике значение не возвращается, но defer в Load не должен паниковать сам
	assert.NotEqual(t, PhaseReady, view.Phase)
}

func TestMutations_ConcurrentIdenticalSubmitsShareOneCall(t *testing.T) {
	m := NewMutations()
	var calls int32
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once

	fn := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		once.Do(func() { close(started) })
		<-release
		return "Saved", nil
	}

	key := Key("tax-save", "session-1")
	var wg sync.WaitGroup
	results := make([]string, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _, _ = m.Do(context.Background(), key, fn)
	}()

	<-started
	assert.True(t, m.InFlight(key))

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1], _, _ = m.Do(context.Background(), key, fn)
	}()

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, []string{"Saved", "Saved"}, results)
	assert.False(t, m.InFlight(key))
}

func TestMutations_DifferentKeysRunIndependently(t *testing.T) {
	m := NewMutations()
	var calls int32
	fn := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "ok", nil
	}

	_, _, err := m.Do(context.Background(), Key("block", "s", "u1"), fn)
	require.NoError(t, err)
	_, _, err = m.Do(context.Background(), Key("block", "s", "u2"), fn)
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls)
}

func TestMutations_PropagatesError(t *testing.T) {
	m := NewMutations()
	want := errors.New("upstream down")

	message, shared, err := m.Do(context.Background(), Key("plan-plus", "s"), func(ctx context.Context) (string, error) {
		return "", want
	})

	assert.ErrorIs(t, err, want)
	assert.False(t, shared)
	assert.Empty(t, message)
}

func TestRun_ReturnsTypedResult(t *testing.T) {
	m := NewMutations()

	rates, shared, err := Run(context.Background(), m, Key("tax", "s"), func(ctx context.Context) ([]float64, error) {
		return []float64{20, 5, 0, 10}, nil
	})

	require.NoError(t, err)
	assert.False(t, shared)
	assert.Equal(t, []float64{20, 5, 0, 10}, rates)
	assert.False(t, m.InFlight(Key("tax", "s")))
}

func TestFingerprint(t *testing.T) {
	type terms struct{ HTML string }

	assert.Empty(t, Fingerprint(nil))
	assert.Equal(t, Fingerprint(terms{"<p>a</p>"}), Fingerprint(terms{"<p>a</p>"}))
	assert.NotEqual(t, Fingerprint(terms{"<p>a</p>"}), Fingerprint(terms{"<p>b</p>"}))
	assert.NotEqual(t, Fingerprint("<p>a</p>"), Fingerprint("<p>b</p>"))
}

func TestMutations_DifferentPayloadsAreNotMerged(t *testing.T) {
	m := NewMutations()
	release := make(chan struct{})
	var mu sync.Mutex
	var sent []string

	save := func(body string) func(context.Context) (string, error) {
		return func(ctx context.Context) (string, error) {
			mu.Lock()
			sent = append(sent, body)
			mu.Unlock()
			<-release
			return "Saved " + body, nil
		}
	}

	var wg sync.WaitGroup
	results := make([]string, 2)
	for i, body := range []string{"first", "second"} {
		wg.Add(1)
		go func(i int, body string) {
			defer wg.Done()
			key := Key("cms_terms", "session-1", "", Fingerprint(body))
			results[i], _, _ = m.Do(context.Background(), key, save(body))
		}(i, body)
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(sent) == 2
	}, time.Second, 5*time.Millisecond)
	close(release)
	wg.Wait()

	assert.ElementsMatch(t, []string{"first", "second"}, sent)
	assert.Equal(t, []string{"Saved first", "Saved second"}, results)
}

func TestMutations_LeaderCancelDoesNotFailFollower(t *testing.T) {
	m := NewMutations()
	key := Key("tax", "session-1", "", Fingerprint("20"))
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32
	var once sync.Once

	fn := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		once.Do(func() { close(started) })
		<-release
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "Saved", nil
	}

	leaderCtx, cancelLeader := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, _, err := m.Do(leaderCtx, key, fn)
		leaderErr <- err
	}()
	<-started

	followerDone := make(chan string, 1)
	go func() {
		message, _, err := m.Do(context.Background(), key, fn)
		assert.NoError(t, err)
		followerDone <- message
	}()
	time.Sleep(20 * time.Millisecond)

	cancelLeader()
	assert.ErrorIs(t, <-leaderErr, context.Canceled)

	close(release)
	assert.Equal(t, "Saved", <-followerDone)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
