package logtail

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseFileName(t *testing.T) {
	want := time.Date(2023, time.December, 22, 0, 25, 30, 0, time.UTC)

	for _, name := range []string{
		"GTFO.2023.12.22.00.25.30_NoName_CLIENT.txt",
		"GTFO.2023.12.22.00.25.30_NoName_MASTER.txt",
		"GTFO.2023.12.22.00.25.30_NICKNAME_NETSTATUS.txt",
		"GTFO.2023.12.22.00.25.30_.txt",
		"GTFO.2023.12.22.00.25.30_with spaces and_underscores.txt",
	} {
		t.Run(name, func(t *testing.T) {
			got, ok := ParseFileName(name)
			require.True(t, ok)
			assert.True(t, got.Equal(want), "got %v want %v", got, want)
		})
	}
}

func TestParseFileName_Rejects(t *testing.T) {
	for _, name := range []string{
		"Player.log",
		"GTFO.2023.12.22.00.25.30_NoName_CLIENT.log",
		"GTFO.2023.12.22.00.25_NoName_CLIENT.txt",
		"GTFO.2023.13.22.00.25.30_NoName_CLIENT.txt",
		"GTFO.2023.02.30.00.25.30_NoName_CLIENT.txt",
		"GTFO.2023.12.22.24.25.30_NoName_CLIENT.txt",
		"GTFO.2023.12.22.00.60.30_NoName_CLIENT.txt",
		"xGTFO.2023.12.22.00.25.30_NoName_CLIENT.txt",
	} {
		t.Run(name, func(t *testing.T) {
			_, ok := ParseFileName(name)
			assert.False(t, ok)
		})
	}
}

func TestIsSessionLog(t *testing.T) {
	assert.True(t, IsSessionLog("GTFO.2023.12.22.00.25.30_NoName_CLIENT.txt"))
	assert.True(t, IsSessionLog("GTFO.2023.12.22.00.25.30_NICKNAME_NETSTATUS.txt"))
	assert.True(t, IsSessionLog("GTFO.2023.12.22.00.25.30.txt~"))
	assert.False(t, IsSessionLog("Player.log"))
	assert.False(t, IsSessionLog("GTFO.2023.12.22_CLIENT.txt"))
}

func TestSessionKind(t *testing.T) {
	assert.Equal(t, KindClient, SessionKind("GTFO.2023.12.22.00.25.30_NoName_CLIENT.txt"))
	assert.Equal(t, KindMaster, SessionKind("GTFO.2023.12.22.00.25.30_NoName_MASTER.txt"))
	assert.Equal(t, KindNetStatus, SessionKind("GTFO.2023.12.22.00.25.30_NICK_NETSTATUS.txt"))
	assert.Equal(t, KindUnknown, SessionKind("GTFO.2023.12.22.00.25.30_NoName.txt"))
}

func TestSelectLogFile_PicksLatest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "GTFO.2023.12.22.00.25.30_Z_CLIENT.txt", "")
	want := writeFile(t, dir, "GTFO.2024.01.02.10.00.00_A_MASTER.txt", "")
	writeFile(t, dir, "GTFO.2023.12.31.23.59.59_M_CLIENT.txt", "")
	writeFile(t, dir, "GTFO.2025.13.01.00.00.00_BAD_CLIENT.txt", "")
	writeFile(t, dir, FallbackName, "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "GTFO.2030.01.01.00.00.00_DIR_CLIENT.txt"), 0o755))

	got, err := SelectLogFile(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSelectLogFile_FallsBackToPlayerLog(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "")
	want := writeFile(t, dir, FallbackName, "")

	got, err := SelectLogFile(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSelectLogFile_NoSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "")

	_, err := SelectLogFile(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoLogSource))
	assert.Contains(t, err.Error(), dir)
}

func TestSelectLogFile_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	_, err := SelectLogFile(dir)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoLogSource))
	assert.Contains(t, err.Error(), "read directory")
}
