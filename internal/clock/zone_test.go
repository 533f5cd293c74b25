package clock

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// writeFile creates name under root with contents.
func writeFile(t *testing.T, root, name, contents string) {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
}

// TestLoadZone resolves names and falls back to the default zone.
func TestLoadZone(t *testing.T) {
	t.Parallel()

	loc, err := LoadZone("")
	require.NoError(t, err)
	require.Equal(t, DefaultZone, loc.String())

	loc, err = LoadZone("Asia/Tokyo")
	require.NoError(t, err)
	require.Equal(t, "Asia/Tokyo", loc.String())

	_, err = LoadZone("Nowhere/Special")
	require.Error(t, err)
}

// TestClockFunc returns the wrapped time.
func TestClockFunc(t *testing.T) {
	t.Parallel()

	frozen := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.Equal(t, frozen, ClockFunc(func() time.Time { return frozen }).Now())
	require.WithinDuration(t, time.Now(), SystemClock{}.Now(), time.Second)
}

// TestZones walks a fake zoneinfo tree.
func TestZones(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "Europe/Moscow", "TZif2...")
	writeFile(t, root, "America/Argentina/Salta", "TZif2...")
	writeFile(t, root, "UTC", "TZif2...")
	writeFile(t, root, "posix/Europe/Moscow", "TZif2...")
	writeFile(t, root, "right/UTC", "TZif2...")
	writeFile(t, root, "zone.tab", "# table")
	writeFile(t, root, "posixrules", "TZif2...")
	writeFile(t, root, "SECURITY", "Please report")
	writeFile(t, root, "Etc/Empty", "")

	zones, err := Zones(root)
	require.NoError(t, err)
	require.Equal(t, []string{"America/Argentina/Salta", "Europe/Moscow", "UTC"}, zones)

	_, err = Zones(filepath.Join(root, "missing"))
	require.ErrorIs(t, err, ErrNoZoneInfo)
}

// TestCountryZones reads zone1970.tab and falls back to zone.tab.
func TestCountryZones(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "zone1970.tab", "# comment\n"+
		"PE\t-1203-07703\tAmerica/Lima\n"+
		"CO\t+0436-07405\tAmerica/Bogota\n"+
		"RU\t+554521+0373704\tEurope/Moscow\tMSK+00 - Moscow area\n"+
		"RU\t+5443+02030\tEurope/Kaliningrad\tMSK-01 - Kaliningrad\n"+
		"CH,DE,LI\t+4723+00832\tEurope/Zurich\n")

	zones, err := CountryZones(root, "pe")
	require.NoError(t, err)
	require.Equal(t, []string{"America/Lima"}, zones)

	zones, err = CountryZones(root, "RU")
	require.NoError(t, err)
	require.Equal(t, []string{"Europe/Moscow", "Europe/Kaliningrad"}, zones)

	zones, err = CountryZones(root, "DE")
	require.NoError(t, err)
	require.Equal(t, []string{"Europe/Zurich"}, zones)

	zones, err = CountryZones(root, "XX")
	require.NoError(t, err)
	require.Empty(t, zones)

	legacy := t.TempDir()
	writeFile(t, legacy, "zone.tab", "JP\t+353916+1394441\tAsia/Tokyo\n")

	zones, err = CountryZones(legacy, "JP")
	require.NoError(t, err)
	require.Equal(t, []string{"Asia/Tokyo"}, zones)

	_, err = CountryZones(t.TempDir(), "JP")
	require.ErrorIs(t, err, ErrNoZoneInfo)
}
