package cacheext_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cacheext "github.com/bennyrubin/cache-ext"
	"github.com/bennyrubin/cache-ext/internal/testutil"
	"github.com/bennyrubin/cache-ext/registry"
)

// harness wires a policy to a memory registry wrapped for failure
// injection, with metrics attached and the given files watched.
type harness struct {
	policy  *cacheext.Policy
	flaky   *testutil.FlakyRegistry
	mem     *registry.Memory
	metrics *cacheext.Metrics
	watch   *testutil.Watchlist
}

func newHarness(t *testing.T, watched ...cacheext.FileID) *harness {
	t.Helper()

	mem := registry.NewMemory()
	flaky := testutil.WrapRegistry(mem)
	metrics := cacheext.NewMetrics()
	watch := testutil.WatchlistOf(watched...)

	policy, err := cacheext.New(flaky, watch, cacheext.WithMetrics(metrics))
	require.NoError(t, err)

	return &harness{
		policy:  policy,
		flaky:   flaky,
		mem:     mem,
		metrics: metrics,
		watch:   watch,
	}
}

func (h *harness) mustInit(t *testing.T, group cacheext.GroupID) {
	t.Helper()
	require.NoError(t, h.policy.Initialize(context.Background(), group))
}

// cold and hot name the segments of the first initialized group.
func (h *harness) cold() cacheext.ListID { return h.flaky.Cold() }
func (h *harness) hot() cacheext.ListID  { return h.flaky.Hot() }

// samePages asserts got holds exactly the given pages in order, compared
// by identity. Field-wise equality would conflate distinct pages of the
// same file.
func samePages(t *testing.T, got []cacheext.Page, want ...cacheext.Page) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.Same(t, want[i], got[i])
	}
}

// TestNew validates collaborator requirements and option defaults.
func TestNew(t *testing.T) {
	mem := registry.NewMemory()
	watch := testutil.WatchlistOf(1)

	tests := []struct {
		name      string
		registry  cacheext.ListRegistry
		watchlist cacheext.Watchlist
		wantErr   error
	}{
		{
			name:      "missing registry",
			registry:  nil,
			watchlist: watch,
			wantErr:   cacheext.ErrMissingRegistry,
		},
		{
			name:      "missing watchlist",
			registry:  mem,
			watchlist: nil,
			wantErr:   cacheext.ErrMissingWatchlist,
		},
		{
			name:      "complete",
			registry:  mem,
			watchlist: watch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy, err := cacheext.New(tt.registry, tt.watchlist)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, policy)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, policy.ID(), "an instance id is generated by default")
		})
	}
}

// TestNew_InstanceID verifies the override and the uniqueness of
// generated ids.
func TestNew_InstanceID(t *testing.T) {
	mem := registry.NewMemory()
	watch := testutil.WatchlistOf(1)

	fixed, err := cacheext.New(mem, watch, cacheext.WithInstanceID("scan-policy-1"))
	require.NoError(t, err)
	assert.Equal(t, "scan-policy-1", fixed.ID())

	a, err := cacheext.New(mem, watch)
	require.NoError(t, err)
	b, err := cacheext.New(mem, watch)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), b.ID())
}

// TestPolicy_Initialize verifies segment provisioning: two distinct valid
// handles per group, created cold first.
func TestPolicy_Initialize(t *testing.T) {
	h := newHarness(t, 1)
	h.mustInit(t, "alpha")

	require.Len(t, h.flaky.Created, 2)
	assert.True(t, h.cold().Valid())
	assert.True(t, h.hot().Valid())
	assert.NotEqual(t, h.cold(), h.hot())
	assert.Equal(t, 2, h.flaky.NewListCalls)

	// A second group gets its own pair.
	h.mustInit(t, "beta")
	require.Len(t, h.flaky.Created, 4)
	assert.NotEqual(t, h.flaky.Created[0], h.flaky.Created[2])
}

// TestPolicy_Initialize_Twice verifies a group's segments are provisioned
// exactly once for its lifetime.
func TestPolicy_Initialize_Twice(t *testing.T) {
	h := newHarness(t, 1)
	h.mustInit(t, "alpha")

	err := h.policy.Initialize(context.Background(), "alpha")
	require.ErrorIs(t, err, cacheext.ErrGroupExists)

	var perr *cacheext.PolicyError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "initialize", perr.Op)
	assert.Equal(t, cacheext.GroupID("alpha"), perr.Group)

	// The failed call must not have created more lists.
	assert.Len(t, h.flaky.Created, 2)
}

// TestPolicy_Initialize_ColdFailure verifies a failure on the first list
// leaves the group completely uninitialized.
func TestPolicy_Initialize_ColdFailure(t *testing.T) {
	h := newHarness(t, 1)
	h.flaky.NewListErrs = []error{testutil.ErrScripted}

	err := h.policy.Initialize(context.Background(), "alpha")
	require.ErrorIs(t, err, cacheext.ErrInitFailed)
	require.ErrorIs(t, err, testutil.ErrScripted)
	assert.Empty(t, h.flaky.Created)

	// The group stays unusable: events for it leave no trace.
	page := testutil.NewPage(1)
	h.policy.OnPageAdded("alpha", page)
	_, tracked := h.mem.Holding(page)
	assert.False(t, tracked)
}

// TestPolicy_Initialize_HotFailure verifies a failure on the second list
// abandons the first and leaves the group uninitialized.
func TestPolicy_Initialize_HotFailure(t *testing.T) {
	h := newHarness(t, 1)
	h.flaky.NewListErrs = []error{nil, testutil.ErrScripted}

	err := h.policy.Initialize(context.Background(), "alpha")
	require.ErrorIs(t, err, cacheext.ErrInitFailed)

	// The cold list was created and is now stranded in the registry.
	require.Len(t, h.flaky.Created, 1)
	assert.Equal(t, 0, h.mem.Len(h.flaky.Created[0]))

	page := testutil.NewPage(1)
	h.policy.OnPageAdded("alpha", page)
	_, tracked := h.mem.Holding(page)
	assert.False(t, tracked, "a half-initialized group must not track pages")

	// The group can be initialized once the registry recovers.
	h.mustInit(t, "alpha")
	h.policy.OnPageAdded("alpha", page)
	_, tracked = h.mem.Holding(page)
	assert.True(t, tracked)
}

// zeroHandleRegistry returns the reserved zero handle without an error,
// modeling a buggy host registry.
type zeroHandleRegistry struct {
	cacheext.ListRegistry
}

func (zeroHandleRegistry) NewList(cacheext.GroupID) (cacheext.ListID, error) {
	return 0, nil
}

// TestPolicy_Initialize_ZeroHandle verifies the reserved handle is
// rejected even when the registry reports success.
func TestPolicy_Initialize_ZeroHandle(t *testing.T) {
	policy, err := cacheext.New(
		zeroHandleRegistry{registry.NewMemory()},
		testutil.WatchlistOf(1),
	)
	require.NoError(t, err)

	err = policy.Initialize(context.Background(), "alpha")
	require.ErrorIs(t, err, cacheext.ErrInitFailed)
}

// cancelAfterFirstList cancels a context right after the first list is
// created, so initialization is interrupted between registry calls.
type cancelAfterFirstList struct {
	*registry.Memory
	cancel context.CancelFunc
	calls  int
}

func (c *cancelAfterFirstList) NewList(group cacheext.GroupID) (cacheext.ListID, error) {
	id, err := c.Memory.NewList(group)
	c.calls++
	if c.calls == 1 {
		c.cancel()
	}
	return id, err
}

// TestPolicy_Initialize_ContextCanceled verifies cancellation before and
// between registry calls.
func TestPolicy_Initialize_ContextCanceled(t *testing.T) {
	t.Run("BeforeAnyCall", func(t *testing.T) {
		h := newHarness(t, 1)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := h.policy.Initialize(ctx, "alpha")
		require.ErrorIs(t, err, cacheext.ErrInitFailed)
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, h.flaky.NewListCalls)
	})

	t.Run("BetweenCalls", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		reg := &cancelAfterFirstList{Memory: registry.NewMemory(), cancel: cancel}

		policy, err := cacheext.New(reg, testutil.WatchlistOf(1))
		require.NoError(t, err)

		err = policy.Initialize(ctx, "alpha")
		require.ErrorIs(t, err, cacheext.ErrInitFailed)
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, reg.calls, "the second list must not be attempted")
	})
}
