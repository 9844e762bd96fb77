package listview

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "marketplace-admin/internal/common/errors"
)

// ==========================
// Delete Flow Tests
// ==========================

func TestList_DeleteRemovesExactlyOne(t *testing.T) {
	l := createTestList(t)
	loadList(t, l, createBusinesses())

	err := l.Delete(context.Background(), "3", true, func(ctx context.Context) error {
		return nil
	})
	require.NoError(t, err)

	source := l.Source()
	require.Len(t, source, 4)
	assert.Equal(t, []int64{1, 2, 4, 5},
		[]int64{source[0].ID, source[1].ID, source[2].ID, source[3].ID},
		"remaining rows keep their order and fields")
	assert.Equal(t, RowIdle, l.RowStateOf("3"))
}

func TestList_FailedDeleteLeavesCollectionUntouched(t *testing.T) {
	l := createTestList(t)
	loadList(t, l, createBusinesses())
	before := l.Source()

	err := l.Delete(context.Background(), "3", true, func(ctx context.Context) error {
		return apperrors.NewAPIError(500, "server exploded")
	})
	require.Error(t, err)

	assert.Equal(t, before, l.Source())
	assert.Equal(t, RowFailed, l.RowStateOf("3"))
	assert.Equal(t, "server exploded", l.RowError("3"))
}

func TestList_UnconfirmedDeleteNeverFires(t *testing.T) {
	l := createTestList(t)
	loadList(t, l, createBusinesses())

	err := l.Delete(context.Background(), "3", false, func(ctx context.Context) error {
		t.Fatal("unconfirmed delete must not call the API")
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))
	assert.Len(t, l.Source(), 5)
}

func TestList_BusyRowRejectsSecondSubmission(t *testing.T) {
	l := createTestList(t)
	loadList(t, l, createBusinesses())

	inFlight := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- l.Delete(context.Background(), "2", true, func(ctx context.Context) error {
			close(inFlight)
			<-release
			return nil
		})
	}()

	<-inFlight
	assert.Equal(t, RowInFlight, l.RowStateOf("2"))

	// The same row rejects a duplicate; a different row stays free.
	err := l.Delete(context.Background(), "2", true, func(ctx context.Context) error { return nil })
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))

	require.NoError(t, l.Delete(context.Background(), "4", true, func(ctx context.Context) error {
		return nil
	}))

	close(release)
	require.NoError(t, <-done)
	assert.Len(t, l.Source(), 3)
}

func TestList_DeleteUnknownRow(t *testing.T) {
	l := createTestList(t)
	loadList(t, l, createBusinesses())

	err := l.Delete(context.Background(), "999", true, func(ctx context.Context) error {
		t.Fatal("must not call the API for an unknown row")
		return nil
	})
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))
}

// ==========================
// Mutate / Patch Tests
// ==========================

func TestList_MutateAppliesOnSuccessOnly(t *testing.T) {
	l := createTestList(t)
	loadList(t, l, createBusinesses())

	err := l.Mutate(context.Background(), "2",
		func(ctx context.Context) error { return nil },
		func(item *business) { item.Approved = true })
	require.NoError(t, err)

	source := l.Source()
	assert.True(t, source[1].Approved)

	err = l.Mutate(context.Background(), "4",
		func(ctx context.Context) error { return errors.New("nope") },
		func(item *business) { item.Approved = true })
	require.Error(t, err)
	assert.False(t, l.Source()[3].Approved)
	assert.Equal(t, RowFailed, l.RowStateOf("4"))
}

func TestList_PatchUpdatesInPlace(t *testing.T) {
	l := createTestList(t)
	loadList(t, l, createBusinesses())

	ok := l.Patch("1", func(item *business) { item.Name = "Acme Tents & Events" })
	assert.True(t, ok)
	assert.Equal(t, "Acme Tents & Events", l.Source()[0].Name)

	assert.False(t, l.Patch("999", func(item *business) {}))
}
