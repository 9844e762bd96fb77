package listview

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-admin/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

type business struct {
	ID       int64
	Name     string
	Service  string
	Approved bool
}

func createTestList(t *testing.T) *List[business] {
	return New("test-page",
		func(b business) string { return strconv.FormatInt(b.ID, 10) },
		func(b business) []string { return []string{b.Name, strconv.FormatInt(b.ID, 10)} },
		logger.NewTestLogger(t))
}

func createBusinesses() []business {
	return []business{
		{ID: 1, Name: "Acme Tents", Service: "Tent House", Approved: true},
		{ID: 2, Name: "Bright Lights", Service: "Lighting", Approved: false},
		{ID: 3, Name: "City Caterers", Service: "Catering", Approved: true},
		{ID: 4, Name: "Delta Decor", Service: "Decoration", Approved: false},
		{ID: 5, Name: "Echo Events", Service: "Tent House", Approved: true},
	}
}

func loadList(t *testing.T, l *List[business], items []business) {
	err := l.Load(context.Background(), func(ctx context.Context) ([]business, error) {
		return items, nil
	})
	require.NoError(t, err)
}

func statusFilter(l *List[business]) {
	l.AddFilter("status", "All", func(b business, value string) bool {
		if value == "Approved" {
			return b.Approved
		}
		return !b.Approved
	})
}

func serviceFilter(l *List[business]) {
	l.AddFilter("service", "All Services", func(b business, value string) bool {
		return b.Service == value
	})
}

// ==========================
// Derivation Tests
// ==========================

func TestList_VisibleIsOrderedSubset(t *testing.T) {
	l := createTestList(t)
	statusFilter(l)
	serviceFilter(l)
	loadList(t, l, createBusinesses())

	l.SetFilter("status", "Approved")
	l.SetFilter("service", "Tent House")

	visible := l.Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, int64(1), visible[0].ID)
	assert.Equal(t, int64(5), visible[1].ID)
}

func TestList_StatusFilterScenario(t *testing.T) {
	// 5 businesses, 3 approved: selecting Approved yields exactly
	// those 3 in original order.
	l := createTestList(t)
	statusFilter(l)
	loadList(t, l, createBusinesses())

	l.SetFilter("status", "Approved")

	visible := l.Visible()
	require.Len(t, visible, 3)
	assert.Equal(t, []int64{1, 3, 5}, []int64{visible[0].ID, visible[1].ID, visible[2].ID})
}

func TestList_SentinelEqualsNoFilter(t *testing.T) {
	l := createTestList(t)
	statusFilter(l)
	serviceFilter(l)
	loadList(t, l, createBusinesses())

	unfiltered := l.Visible()

	l.SetFilter("status", "All")
	l.SetFilter("service", "All Services")

	assert.Equal(t, unfiltered, l.Visible())
	assert.Len(t, unfiltered, 5)
}

func TestList_DerivationIsDeterministic(t *testing.T) {
	l := createTestList(t)
	statusFilter(l)
	loadList(t, l, createBusinesses())

	l.SetFilter("status", "Pending")
	l.SetSearch("d")

	first := l.Visible()
	second := l.Visible()
	assert.Equal(t, first, second)
}

func TestList_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	l := createTestList(t)
	loadList(t, l, createBusinesses())

	l.SetSearch("CATER")
	visible := l.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "City Caterers", visible[0].Name)

	// Search by id-as-string.
	l.SetSearch("4")
	visible = l.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, int64(4), visible[0].ID)
}

func TestList_SearchCombinesWithFiltersAsConjunction(t *testing.T) {
	l := createTestList(t)
	statusFilter(l)
	loadList(t, l, createBusinesses())

	l.SetFilter("status", "Approved")
	l.SetSearch("e")

	for _, b := range l.Visible() {
		assert.True(t, b.Approved)
	}
}

// ==========================
// Fetch Lifecycle Tests
// ==========================

func TestList_LoadFailureKeepsPreviousCollection(t *testing.T) {
	l := createTestList(t)
	loadList(t, l, createBusinesses())

	err := l.Load(context.Background(), func(ctx context.Context) ([]business, error) {
		return nil, errors.New("boom")
	})
	require.Error(t, err)

	assert.Len(t, l.Source(), 5, "failed fetch leaves the collection as it was")
	assert.Equal(t, "boom", l.Error())
	assert.False(t, l.Loading())
}

func TestList_StaleFetchIsDiscarded(t *testing.T) {
	l := createTestList(t)

	started := make(chan struct{})
	older := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = l.Load(context.Background(), func(ctx context.Context) ([]business, error) {
			close(started)
			<-older
			return []business{{ID: 99, Name: "Stale"}}, nil
		})
	}()

	// The newer fetch starts after the older one and completes first.
	<-started
	loadList(t, l, createBusinesses())
	close(older)
	wg.Wait()

	source := l.Source()
	require.Len(t, source, 5, "older completion must not replace the newer collection")
	assert.Equal(t, int64(1), source[0].ID)
}

func TestList_LoadAfterCloseIsIgnored(t *testing.T) {
	l := createTestList(t)
	loadList(t, l, createBusinesses())

	l.Close()
	err := l.Load(context.Background(), func(ctx context.Context) ([]business, error) {
		t.Fatal("fetch must not run after close")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Len(t, l.Source(), 5)
}
