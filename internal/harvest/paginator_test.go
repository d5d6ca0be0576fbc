package harvest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDriver scripts the page surface per iteration. Slices are indexed by
// iteration; the last element repeats when the script is shorter than the run.
type fakeDriver struct {
	batches    [][]string
	control    []bool
	growth     []bool
	extractErr error
	errAt      int

	extractions int
	activations int
	countPolls  int
}

func last[T any](s []T, i int) T {
	if i < len(s) {
		return s[i]
	}
	return s[len(s)-1]
}

func (f *fakeDriver) ExtractItems() ([]string, error) {
	i := f.extractions
	f.extractions++
	if f.extractErr != nil && i == f.errAt {
		return nil, f.extractErr
	}
	return last(f.batches, i), nil
}

func (f *fakeDriver) TriggerLoadMore() (bool, error) {
	if !last(f.control, f.extractions-1) {
		return false, nil
	}
	f.activations++
	return true, nil
}

func (f *fakeDriver) CountItems() (int, error) {
	f.countPolls++
	i := f.extractions - 1
	count := len(last(f.batches, i))
	if last(f.growth, i) {
		count++
	}
	return count, nil
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.PollInterval = time.Millisecond
	cfg.RetryBudget = 3
	return cfg
}

func TestPaginatorExhaustedOnFirstCycle(t *testing.T) {
	driver := &fakeDriver{
		batches: [][]string{{"a", "b"}},
		control: []bool{false},
	}
	dedup := NewDeduplicator()
	p := NewPaginator(driver, dedup, testConfig())

	res, err := p.Run(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, StateExhausted, res.Final)
	assert.Equal(t, 1, res.Iterations)
	assert.Zero(t, driver.activations)
	assert.Zero(t, driver.countPolls)
	assert.Equal(t, []string{"a", "b"}, dedup.Entries())
}

func TestPaginatorBoundedTermination(t *testing.T) {
	// The control is always present but the count never grows: every cycle
	// stalls, the run continues regardless, and the poll count is exactly
	// maxIterations times the retry budget.
	driver := &fakeDriver{
		batches: [][]string{{"a", "b"}},
		control: []bool{true},
		growth:  []bool{false},
	}
	cfg := testConfig()
	p := NewPaginator(driver, NewDeduplicator(), cfg)

	res, err := p.Run(context.Background(), 4)
	require.NoError(t, err)

	assert.Equal(t, StateDone, res.Final)
	assert.Equal(t, 4, res.Iterations)
	assert.Equal(t, 4, res.Stalls)
	assert.Equal(t, 4, driver.activations)
	assert.Equal(t, 4*cfg.RetryBudget, driver.countPolls)
}

func TestPaginatorStallsWhenBatchHasBlankItems(t *testing.T) {
	// A media-only tweet renders a blank text but still occupies a DOM
	// slot. The wait baseline must include it, or a never-growing count
	// of 3 would read as growth over 2 extracted texts and the wait
	// would end on the first poll of every cycle.
	driver := &fakeDriver{
		batches: [][]string{{"a", "b", ""}},
		control: []bool{true},
		growth:  []bool{false},
	}
	cfg := testConfig()
	dedup := NewDeduplicator()
	p := NewPaginator(driver, dedup, cfg)

	res, err := p.Run(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Stalls)
	assert.Equal(t, 3*cfg.RetryBudget, driver.countPolls)
	assert.Equal(t, []string{"a", "b"}, dedup.Entries())
}

func TestPaginatorGrowthEndsWaitEarly(t *testing.T) {
	driver := &fakeDriver{
		batches: [][]string{{"a"}, {"a", "b"}, {"a", "b", "c"}},
		control: []bool{true},
		growth:  []bool{true},
	}
	dedup := NewDeduplicator()
	p := NewPaginator(driver, dedup, testConfig())

	res, err := p.Run(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, StateDone, res.Final)
	assert.Zero(t, res.Stalls)
	// One poll per cycle: the first poll already observes growth.
	assert.Equal(t, 3, driver.countPolls)
	assert.Equal(t, []string{"a", "b", "c"}, dedup.Entries())
}

func TestPaginatorKeepsPartialResultOnExtractError(t *testing.T) {
	driver := &fakeDriver{
		batches:    [][]string{{"a", "b"}},
		control:    []bool{true},
		growth:     []bool{true},
		extractErr: errors.New("page went away"),
		errAt:      1,
	}
	dedup := NewDeduplicator()
	p := NewPaginator(driver, dedup, testConfig())

	res, err := p.Run(context.Background(), 5)
	require.Error(t, err)

	assert.Equal(t, 2, res.Iterations)
	assert.Equal(t, []string{"a", "b"}, dedup.Entries())
}

func TestPaginatorZeroIterations(t *testing.T) {
	driver := &fakeDriver{batches: [][]string{{"a"}}, control: []bool{true}}
	p := NewPaginator(driver, NewDeduplicator(), testConfig())

	res, err := p.Run(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, StateDone, res.Final)
	assert.Zero(t, res.Iterations)
	assert.Zero(t, driver.extractions)
}

func TestPaginatorStopsOnCancelledContext(t *testing.T) {
	driver := &fakeDriver{
		batches: [][]string{{"a"}},
		control: []bool{true},
		growth:  []bool{false},
	}
	dedup := NewDeduplicator()
	p := NewPaginator(driver, dedup, testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := p.Run(ctx, 10)
	require.Error(t, err)

	assert.Equal(t, 1, res.Iterations)
	assert.Equal(t, []string{"a"}, dedup.Entries())
}
