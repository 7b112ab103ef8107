package streamer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadVersionManifest(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "version-manifest.txt")
	require.NoError(t, os.WriteFile(good, []byte("cef-streamer 2.4.1\nzerolog 1.29.1\n"), 0o644))

	version, err := ReadVersionManifest(good)
	require.NoError(t, err)
	assert.Equal(t, "2.4.1", version)

	bad := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(bad, []byte("\n"), 0o644))
	_, err = ReadVersionManifest(bad)
	assert.Error(t, err)

	_, err = ReadVersionManifest(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
