package alarms

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFileRepository_Missing verifies Load returns an empty list for a missing file.
func TestFileRepository_Missing(t *testing.T) {
	t.Parallel()

	repo := NewFileRepository(filepath.Join(t.TempDir(), "missing.json"))

	values, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, values)
	require.Empty(t, values)
}

// TestFileRepository_SaveLoad_Roundtrip ensures Save followed by Load returns the same order.
func TestFileRepository_SaveLoad_Roundtrip(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "alarms.json")
	repo := NewFileRepository(file)

	want := []string{"07:30 AM", "09:00 PM", "06:15 AM"}
	require.NoError(t, repo.Save(context.Background(), want))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, got)

	// Overwrite with a shorter list.
	require.NoError(t, repo.Save(context.Background(), want[:1]))

	got, err = repo.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, want[:1], got)

	// Empty list is written as an empty array.
	require.NoError(t, repo.Save(context.Background(), nil))

	got, err = repo.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, got)
	require.NoError(t, repo.Close())
}

// TestFileRepository_ReadsPlainJSON accepts files written by other tools.
func TestFileRepository_ReadsPlainJSON(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "alarms.json")
	require.NoError(t, os.WriteFile(file, []byte(`["07:30 AM", "09:00 PM"]`), 0o600))

	got, err := NewFileRepository(file).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"07:30 AM", "09:00 PM"}, got)
}

// TestFileRepository_Corrupt reports decode failures.
func TestFileRepository_Corrupt(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	notJSON := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(notJSON, []byte(`{"alarms":`), 0o600))

	_, err := NewFileRepository(notJSON).Load(context.Background())
	require.Error(t, err)

	numbers := filepath.Join(dir, "numbers.json")
	require.NoError(t, os.WriteFile(numbers, []byte(`["07:30 AM", 42]`), 0o600))

	_, err = NewFileRepository(numbers).Load(context.Background())
	require.ErrorIs(t, err, errNotString)
}
