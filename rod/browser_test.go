//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/IvanM-GM/replygen/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserManager_Page(t *testing.T) {
	t.Parallel()

	t.Run("relaunches after max pages", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(rod.Options{MaxPages: 2})
		require.NoError(t, err)
		defer manager.Close()

		first := manager.LauncherPID()
		for range 2 {
			_, release, err := manager.Page(context.Background())
			require.NoError(t, err)
			release()
		}
		assert.Equal(t, first, manager.LauncherPID())

		_, release, err := manager.Page(context.Background())
		require.NoError(t, err)
		release()

		assert.NotEqual(t, first, manager.LauncherPID())
	})

	t.Run("open page survives a relaunch", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html><body><p>still here</p></body></html>`))
		}))
		defer srv.Close()

		manager, err := rod.NewBrowserManager(rod.Options{MaxPages: 1})
		require.NoError(t, err)
		defer manager.Close()

		held, releaseHeld, err := manager.Page(context.Background())
		require.NoError(t, err)
		defer releaseHeld()

		_, release, err := manager.Page(context.Background())
		require.NoError(t, err)
		release()

		require.NoError(t, held.Navigate(srv.URL))
		require.NoError(t, held.WaitLoad())
		html, err := held.HTML()
		require.NoError(t, err)
		assert.Contains(t, html, "still here")
	})

	t.Run("page after close fails", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(rod.Options{})
		require.NoError(t, err)
		require.NoError(t, manager.Close())

		_, _, err = manager.Page(context.Background())

		assert.Error(t, err)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(rod.Options{})
		require.NoError(t, err)

		require.NoError(t, manager.Close())
		require.NoError(t, manager.Close())
		assert.Zero(t, manager.LauncherPID())
	})
}

func TestFetcher_RecyclesAcrossFetches(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div data-testid="tweetText">hi</div></body></html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher(rod.Options{MaxPages: 1, SettleTimeout: -1})
	require.NoError(t, err)
	defer fetcher.Close()

	for range 3 {
		html, err := fetcher.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Contains(t, html, "hi")
	}
}
