package file

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, DirName, "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("provider.name", "Google Cloud"))

	val, ok := store.Get("provider.name")
	assert.True(t, ok)
	assert.Equal(t, "Google Cloud", val)
	assert.Equal(t, "Google Cloud", store.GetString("provider.name"))

	_, ok = store.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("missing"))
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("dataset.watch", true))
	require.NoError(t, store.Set("http.requests_per_second", 2.5))
	require.NoError(t, store.Set("count", 3))

	assert.True(t, store.GetBool("dataset.watch"))
	assert.False(t, store.GetBool("count"))
	assert.Empty(t, store.GetString("count"))

	f, ok := store.GetFloat("http.requests_per_second")
	assert.True(t, ok)
	assert.InDelta(t, 2.5, f, 0.0001)

	f, ok = store.GetFloat("count")
	assert.True(t, ok)
	assert.InDelta(t, 3.0, f, 0.0001)

	_, ok = store.GetFloat("dataset.watch")
	assert.False(t, ok)
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("provider.key", "aws"))
	require.NoError(t, store1.Set("http.timeout", "10s"))
	require.NoError(t, store1.Set("http.requests_per_second", 4))
	require.NoError(t, store1.Set("dataset.watch", true))

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "aws", store2.GetString("provider.key"))
	assert.Equal(t, "10s", store2.GetString("http.timeout"))
	assert.True(t, store2.GetBool("dataset.watch"))
	f, ok := store2.GetFloat("http.requests_per_second")
	assert.True(t, ok)
	assert.InDelta(t, 4.0, f, 0.0001)
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("http.timeout", "5s"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[http]")
	assert.Contains(t, string(data), "timeout = ")
	assert.Contains(t, string(data), "5s")
}

func TestConfigStore_LoadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[provider]
key = "azure"
name = "Microsoft Azure"

[dataset]
path = "https://example.com/azure.json"
watch = false
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0o600))

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, "azure", store.GetString("provider.key"))
	assert.Equal(t, "Microsoft Azure", store.GetString("provider.name"))
	assert.Equal(t, "https://example.com/azure.json", store.GetString("dataset.path"))
	_, ok := store.Get("dataset.watch")
	assert.True(t, ok)
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), nil, 0o600))

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	_, ok := store.Get("anything")
	assert.False(t, ok)
}

func TestNewConfigStore_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("[unclosed"), 0o600))

	_, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not enforced on windows")
	}
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("provider.key", "gcp"))

	info, err := os.Stat(store.Path())

	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestConfigStore_Save_Explicit(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save())

	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Set("provider.name", "x")
			_ = store.GetString("provider.name")
		}()
	}
	wg.Wait()

	assert.Equal(t, "x", store.GetString("provider.name"))
}

func TestNestMap(t *testing.T) {
	flat := map[string]any{
		"http.timeout":             "5s",
		"http.requests_per_second": 1.0,
		"top":                      true,
	}

	nested := nestMap(flat)

	assert.Equal(t, map[string]any{
		"http": map[string]any{
			"timeout":             "5s",
			"requests_per_second": 1.0,
		},
		"top": true,
	}, nested)
	assert.Equal(t, flat, flattenMap(nested, ""))
}

func TestNestMap_ValueShadowsTable(t *testing.T) {
	nested := nestMap(map[string]any{"a": 1, "a.b": 2})

	assert.Equal(t, 1, nested["a"])
}
