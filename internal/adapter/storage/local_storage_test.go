package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStorage(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	content := "name,revenue\nAcme,1000\n"
	key, err := store.Upload(ctx, "q3 report.csv", "text/csv", strings.NewReader(content), int64(len(content)))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, "-q3_report.csv"))

	rc, err := store.Download(ctx, key)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, content, string(data))

	require.NoError(t, store.Delete(ctx, key))

	_, err = os.Stat(filepath.Join(store.Dir(), key))
	assert.True(t, os.IsNotExist(err))

	// Повторное удаление возвращает ошибку, файл уже удалён
	assert.Error(t, store.Delete(ctx, key))
}

func TestLocalStorage_UniqueKeys(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	const uploads = 20
	keys := make(chan string, uploads)
	var wg sync.WaitGroup
	for i := 0; i < uploads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key, err := store.Upload(ctx, "report.csv", "text/csv", strings.NewReader("a\n1\n"), 4)
			assert.NoError(t, err)
			keys <- key
		}()
	}
	wg.Wait()
	close(keys)

	seen := make(map[string]bool)
	for key := range keys {
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
	}

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, uploads)
}

func TestLocalStorage_RejectsPathTraversal(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Download(ctx, "../secret")
	assert.Error(t, err)
	assert.Error(t, store.Delete(ctx, ""))
}
