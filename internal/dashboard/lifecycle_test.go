package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_LoadsWatchlistAndPortfolio(t *testing.T) {
	backend := newFakeBackend()
	d, _ := newTestDashboard(t, backend, &scriptedUI{})

	require.NoError(t, d.Start(context.Background()))
	assert.True(t, d.Running())
	assert.Equal(t, 1, backend.count("watchlist"))
	assert.Equal(t, 1, backend.count("portfolio"))
}

func TestStart_Twice(t *testing.T) {
	backend := newFakeBackend()
	d, _ := newTestDashboard(t, backend, &scriptedUI{})

	require.NoError(t, d.Start(context.Background()))
	assert.ErrorIs(t, d.Start(context.Background()), ErrAlreadyStarted)
	assert.Equal(t, 1, backend.count("watchlist"), "second start must not reload")
}

func TestStart_PeriodicRefresh(t *testing.T) {
	backend := newFakeBackend()
	d, _ := newTestDashboard(t, backend, &scriptedUI{})

	require.NoError(t, d.Start(context.Background()))
	assert.Eventually(t, func() bool {
		return backend.count("watchlist") >= 2 && backend.count("portfolio") >= 2
	}, 3*time.Second, 50*time.Millisecond)
}

func TestStop_HaltsRefresh(t *testing.T) {
	backend := newFakeBackend()
	d, _ := newTestDashboard(t, backend, &scriptedUI{})

	require.NoError(t, d.Start(context.Background()))
	d.Stop()
	assert.False(t, d.Running())
	before := backend.total()

	time.Sleep(2200 * time.Millisecond)
	assert.Equal(t, before, backend.total(), "no fetches after teardown")
}

func TestStop_Idempotent(t *testing.T) {
	backend := newFakeBackend()
	d, _ := newTestDashboard(t, backend, &scriptedUI{})

	d.Stop()
	require.NoError(t, d.Start(context.Background()))
	d.Stop()
	d.Stop()
	assert.False(t, d.Running())
}

func TestStart_AfterStop(t *testing.T) {
	backend := newFakeBackend()
	d, _ := newTestDashboard(t, backend, &scriptedUI{})

	require.NoError(t, d.Start(context.Background()))
	d.Stop()
	require.NoError(t, d.Start(context.Background()))
	assert.True(t, d.Running())
	assert.Equal(t, 2, backend.count("watchlist"))
}

func TestInvalidSchedule(t *testing.T) {
	backend := newFakeBackend()
	d, _ := newTestDashboard(t, backend, &scriptedUI{})
	d.schedule = "every now and then"

	assert.Error(t, d.Start(context.Background()))
	assert.False(t, d.Running())
	assert.Equal(t, 0, backend.total())
}

func TestStop_DuringInitialLoad(t *testing.T) {
	backend := newFakeBackend()
	backend.watchGate = make(chan struct{})
	d, _ := newTestDashboard(t, backend, &scriptedUI{})

	started := make(chan error, 1)
	go func() { started <- d.Start(context.Background()) }()
	require.Eventually(t, func() bool { return backend.count("watchlist") == 1 },
		time.Second, 10*time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		d.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on the initial load")
	}

	select {
	case err := <-started:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Start did not return after Stop")
	}
	assert.False(t, d.Running())

	time.Sleep(1500 * time.Millisecond)
	assert.Equal(t, 1, backend.count("watchlist"), "schedule must not be armed")
}

func TestStart_ContextCancelledDuringInitialLoad(t *testing.T) {
	backend := newFakeBackend()
	backend.watchGate = make(chan struct{})
	d, _ := newTestDashboard(t, backend, &scriptedUI{})

	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan error, 1)
	go func() { started <- d.Start(ctx) }()
	require.Eventually(t, func() bool { return backend.count("watchlist") == 1 },
		time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-started:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Start did not return after cancel")
	}
	assert.False(t, d.Running())

	close(backend.watchGate)
	require.NoError(t, d.Start(context.Background()))
	assert.True(t, d.Running())
}
