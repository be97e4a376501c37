package keystore

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyResolution(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name      string
		deployKey string
		savedKey  string
		wantKey   string
		wantDemo  bool
	}{
		{
			name:     "nothing configured falls back to demo key",
			wantKey:  DemoKey,
			wantDemo: true,
		},
		{
			name:      "deployment key wins",
			deployKey: "deploy-key",
			savedKey:  "saved-key",
			wantKey:   "deploy-key",
		},
		{
			name:     "saved key used when no deployment key",
			savedKey: "saved-key",
			wantKey:  "saved-key",
		},
		{
			name:     "saved demo key is ignored",
			savedKey: DemoKey,
			wantKey:  DemoKey,
			wantDemo: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := NewMemoryStorage()
			if tt.savedKey != "" {
				require.NoError(t, storage.Save(tt.savedKey))
			}

			store := New(tt.deployKey, storage, logger)
			assert.Equal(t, tt.wantKey, store.Key())
			assert.Equal(t, tt.wantDemo, store.IsDemo())
		})
	}
}

func TestSetKeyPersistsAndClears(t *testing.T) {
	logger := zerolog.Nop()
	storage := NewMemoryStorage()

	store := New("", storage, logger)
	require.NoError(t, store.SetKey("my-real-key"))
	assert.Equal(t, "my-real-key", store.Key())
	assert.False(t, store.IsDemo())

	saved, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, "my-real-key", saved)

	// A fresh session with no deployment key picks up the saved key.
	fresh := New("", storage, logger)
	assert.Equal(t, "my-real-key", fresh.Key())

	// Setting the demo key clears the persisted override, so the next
	// fresh session resolves to the demo key again.
	require.NoError(t, store.SetKey(DemoKey))
	assert.True(t, store.IsDemo())

	_, err = storage.Load()
	assert.ErrorIs(t, err, ErrNoSavedKey)

	fresh = New("", storage, logger)
	assert.Equal(t, DemoKey, fresh.Key())
	assert.True(t, fresh.IsDemo())
}

func TestRateLimitLastWriteWins(t *testing.T) {
	store := New("", NewMemoryStorage(), zerolog.Nop())

	_, ok := store.RateLimit()
	assert.False(t, ok, "snapshot should be absent before any observation")

	// An older, slower response arriving after a newer one overwrites it:
	// arrival order wins, not request order.
	store.RecordRateLimit(950, 1000, "1700000100")
	store.RecordRateLimit(980, 1000, "1700000000")

	snapshot, ok := store.RateLimit()
	require.True(t, ok)
	assert.Equal(t, 980, snapshot.Remaining)
	assert.Equal(t, 1000, snapshot.Limit)
	assert.Equal(t, "1700000000", snapshot.ResetTime)
}

func TestFileStorage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "astrodash")
	storage, err := NewFileStorage(dir)
	require.NoError(t, err)

	_, err = storage.Load()
	assert.ErrorIs(t, err, ErrNoSavedKey)

	require.NoError(t, storage.Save("abc123"))
	key, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc123", key)

	require.NoError(t, storage.Clear())
	_, err = storage.Load()
	assert.ErrorIs(t, err, ErrNoSavedKey)

	// Clearing twice is fine.
	require.NoError(t, storage.Clear())
}
