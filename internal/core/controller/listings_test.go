package controller

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"kos-portal/internal/core/domain"

	"github.com/stretchr/testify/require"
)

func TestListingsActivateRequiresCredential(t *testing.T) {
	api := &fakeAPI{}
	c := NewListingsController(api, &fakeSession{}, testStorageBaseURL)

	err := c.Activate(context.Background())

	require.ErrorIs(t, err, domain.ErrNotAuthenticated)
	require.Zero(t, api.searchCalls, "no network call without a credential")
}

func TestListingsSearchRequiresCredential(t *testing.T) {
	api := &fakeAPI{}
	c := NewListingsController(api, &fakeSession{}, testStorageBaseURL)

	err := c.Search(context.Background(), "melati")

	require.ErrorIs(t, err, domain.ErrNotAuthenticated)
	require.Zero(t, api.searchCalls)
}

func TestListingsTotalPages(t *testing.T) {
	tests := []struct {
		items int
		want  int
	}{
		{0, 0},
		{1, 1},
		{5, 1},
		{6, 2},
		{49, 10},
		{50, 10},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%d items", tc.items), func(t *testing.T) {
			api := &fakeAPI{searchFn: func(_ context.Context, _ string) ([]domain.Kos, error) {
				return makeKosList(tc.items), nil
			}}
			c := NewListingsController(api, authedSession(), testStorageBaseURL)

			require.NoError(t, c.Activate(context.Background()))
			require.Equal(t, tc.want, c.TotalPages())
		})
	}
}

func TestListingsCapsItemsAtFiftyRecords(t *testing.T) {
	api := &fakeAPI{searchFn: func(_ context.Context, _ string) ([]domain.Kos, error) {
		return makeKosList(120), nil
	}}
	c := NewListingsController(api, authedSession(), testStorageBaseURL)

	require.NoError(t, c.Activate(context.Background()))

	require.Equal(t, 10, c.TotalPages())
	require.True(t, c.GoToPage(10))
	last := c.VisibleItems()
	require.Len(t, last, 5)
	require.Equal(t, 50, last[4].ID, "record 51 and beyond must be dropped")
	require.False(t, c.GoToPage(11))
}

func TestListingsVisibleItemsSlicing(t *testing.T) {
	api := &fakeAPI{searchFn: func(_ context.Context, _ string) ([]domain.Kos, error) {
		return makeKosList(12), nil
	}}
	c := NewListingsController(api, authedSession(), testStorageBaseURL)
	require.NoError(t, c.Activate(context.Background()))

	first := c.VisibleItems()
	require.Len(t, first, 5)
	require.Equal(t, 1, first[0].ID)

	require.True(t, c.GoToPage(3))
	last := c.VisibleItems()
	require.Len(t, last, 2, "last page holds the remainder")
	require.Equal(t, 11, last[0].ID)
}

func TestListingsPageBoundaries(t *testing.T) {
	api := &fakeAPI{searchFn: func(_ context.Context, _ string) ([]domain.Kos, error) {
		return makeKosList(8), nil
	}}
	c := NewListingsController(api, authedSession(), testStorageBaseURL)
	require.NoError(t, c.Activate(context.Background()))

	require.False(t, c.CanPrev(), "first page: prev disabled")
	require.True(t, c.CanNext())
	require.False(t, c.PrevPage(), "prev refuses to leave the range")
	require.Equal(t, 1, c.Page())

	require.True(t, c.NextPage())
	require.Equal(t, 2, c.Page())
	require.True(t, c.CanPrev())
	require.False(t, c.CanNext(), "last page: next disabled")
	require.False(t, c.NextPage())
	require.Equal(t, 2, c.Page())
}

func TestListingsSearchReplacesResultsAndResetsPage(t *testing.T) {
	api := &fakeAPI{searchFn: func(_ context.Context, query string) ([]domain.Kos, error) {
		if query == "" {
			return makeKosList(20), nil
		}
		return makeKosList(3), nil
	}}
	c := NewListingsController(api, authedSession(), testStorageBaseURL)

	require.NoError(t, c.Activate(context.Background()))
	require.True(t, c.GoToPage(3))

	require.NoError(t, c.Search(context.Background(), "melati"))

	require.Equal(t, 1, c.Page(), "search resets pagination")
	require.Equal(t, "melati", c.Query())
	require.Len(t, c.VisibleItems(), 3, "results are replaced, not merged")
	require.Equal(t, 1, c.TotalPages())
}

func TestListingsFetchErrorHidesCause(t *testing.T) {
	api := &fakeAPI{searchFn: func(_ context.Context, _ string) ([]domain.Kos, error) {
		return nil, errors.New("connection refused: 10.0.0.1:443")
	}}
	c := NewListingsController(api, authedSession(), testStorageBaseURL)

	err := c.Activate(context.Background())

	require.Error(t, err)
	require.Equal(t, StateError, c.State())
	require.Equal(t, "Failed to load listings", c.ErrorMessage())
	require.NotContains(t, c.ErrorMessage(), "connection refused", "raw cause stays out of the user message")
}

func TestListingsCardImageURL(t *testing.T) {
	c := NewListingsController(&fakeAPI{}, authedSession(), testStorageBaseURL)

	withImage := domain.Kos{Images: []domain.KosImage{{File: "kos/1.jpg"}, {File: "kos/2.jpg"}}}
	require.Equal(t, testStorageBaseURL+"/kos/1.jpg", c.CardImageURL(withImage))

	require.Empty(t, c.CardImageURL(domain.Kos{}), "no images means explicit empty state")
}
