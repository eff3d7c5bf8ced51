package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveOpenRemove(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	rel, n, err := s.Save("dev-1", "photo.JPG", strings.NewReader("fake-image-bytes"))
	require.NoError(t, err)
	require.Equal(t, int64(len("fake-image-bytes")), n)
	require.True(t, strings.HasSuffix(rel, ".jpg"))
	require.True(t, strings.HasPrefix(rel, "dev-1"))

	r, err := s.Open(rel)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, r.Close())
	require.NoError(t, err)
	require.Equal(t, "fake-image-bytes", string(data))

	require.NoError(t, s.Remove(rel))
	_, err = s.Open(rel)
	require.Error(t, err)

	// Removing twice is fine.
	require.NoError(t, s.Remove(rel))
}

func TestTraversalRejected(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = s.Open("../../etc/passwd")
	require.Error(t, err)
	err = s.Remove("../outside")
	require.Error(t, err)
}
