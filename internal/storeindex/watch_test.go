package storeindex

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stores.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"Luton","postcode":"LU1 2TL"}]`), 0644))

	stores, err := LoadFile(path)
	require.NoError(t, err)
	ix, err := New(stores, 0)
	require.NoError(t, err)
	require.Equal(t, 1, ix.Search("luton", 0, 3).TotalCount)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, ix, path, nil) }()

	// the watcher registers asynchronously; keep rewriting until it notices
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(`[{"name":"Luton","postcode":"LU1 2TL"},{"name":"Luton_Airport","postcode":"LU2 9LY"}]`), 0644)
		return ix.Len() == 2
	}, 5*time.Second, 50*time.Millisecond)
	assert.Equal(t, 2, ix.Search("luton", 0, 3).TotalCount)

	// a broken file keeps the last good index
	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0644))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 2, ix.Len())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}
