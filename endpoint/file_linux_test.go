//go:build linux
// +build linux

// File: endpoint/file_linux_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package endpoint_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/streamrelay/endpoint"
)

func TestOpenAsyncMissingPathFails(t *testing.T) {
	p := newTestParams(t)

	spec := endpoint.OpenAsync{Path: filepath.Join(t.TempDir(), "missing")}
	pc := spec.Construct(p)
	require.True(t, pc.Single())

	_, err := pc.Next(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenAsyncNeverCreates(t *testing.T) {
	p := newTestParams(t)

	path := filepath.Join(t.TempDir(), "absent")
	pc := (endpoint.OpenAsync{Path: path}).Construct(p)
	_, err := pc.Next(context.Background())
	require.Error(t, err)

	_, statErr := os.Stat(path)
	require.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestOpenAsyncWriteIsVisibleExternally(t *testing.T) {
	p := newTestParams(t)

	path := filepath.Join(t.TempDir(), "blob")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	pc := (endpoint.OpenAsync{Path: path}).Construct(p)
	peer, err := pc.Next(context.Background())
	require.NoError(t, err)

	n, err := peer.W.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.NoError(t, peer.W.Flush())

	require.NoError(t, peer.R.Close())
	require.NoError(t, peer.W.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "hello", string(content))
}

func TestOpenAsyncReadsExistingContent(t *testing.T) {
	p := newTestParams(t)

	path := filepath.Join(t.TempDir(), "seeded")
	require.NoError(t, os.WriteFile(path, []byte("seed data"), 0o644))

	pc := (endpoint.OpenAsync{Path: path}).Construct(p)
	peer, err := pc.Next(context.Background())
	require.NoError(t, err)
	defer peer.R.Close()
	defer peer.W.Close()

	var got []byte
	buf := make([]byte, 4)
	for {
		n, err := peer.R.Read(buf)
		got = append(got, buf[:n]...)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
	require.Equal(t, "seed data", string(got))
}

func TestOpenAsyncHalvesShareOnePosition(t *testing.T) {
	p := newTestParams(t)

	path := filepath.Join(t.TempDir(), "shared")
	require.NoError(t, os.WriteFile(path, []byte("abcd"), 0o644))

	pc := (endpoint.OpenAsync{Path: path}).Construct(p)
	peer, err := pc.Next(context.Background())
	require.NoError(t, err)
	defer peer.R.Close()
	defer peer.W.Close()

	// Read two bytes, then write: the write lands at the shared
	// position, not at the start.
	buf := make([]byte, 2)
	_, err = io.ReadFull(peer.R, buf)
	require.NoError(t, err)
	require.Equal(t, "ab", string(buf))

	_, err = peer.W.Write([]byte("XY"))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "abXY", string(content))
}
