package clock

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	// Embedded zone database so LoadZone works on hosts without tzdata.
	_ "time/tzdata"
)

const (
	// DefaultZone is the zone shown when none is selected.
	DefaultZone = "America/Bogota"
	// DefaultZoneInfoRoot is where most Unix systems keep the zone database.
	DefaultZoneInfoRoot = "/usr/share/zoneinfo"
)

// tzifMagic starts every compiled zone file.
var tzifMagic = []byte("TZif")

// zoneTables are the country tables searched by CountryZones, newest first.
var zoneTables = []string{"zone1970.tab", "zone.tab"} //nolint:gochecknoglobals // Read-only lookup order.

// ErrNoZoneInfo is returned when the zoneinfo directory or its country
// tables are missing. LoadZone still works on such hosts through the
// embedded database, which cannot be listed.
var ErrNoZoneInfo = errors.New("zoneinfo database not found")

// Clock reports the current instant. The controller takes one so tests can freeze time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the host clock.
type SystemClock struct{}

// Now returns time.Now.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time {
	return f()
}

// LoadZone resolves an IANA zone name. An empty name selects DefaultZone.
func LoadZone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultZone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}

	return loc, nil
}

// Zones lists the zone names compiled under root, sorted.
// The posix/ and right/ mirrors and non-zone files are skipped.
func Zones(root string) ([]string, error) {
	if root == "" {
		root = DefaultZoneInfoRoot
	}

	if _, err := os.Stat(root); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoZoneInfo, root)
	}

	var (
		fsys  = os.DirFS(root)
		zones []string
	)

	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if name == "posix" || name == "right" {
				return fs.SkipDir
			}

			return nil
		}

		if !isZoneName(name) {
			return nil
		}

		ok, err := hasZoneMagic(fsys, name)
		if err != nil || !ok {
			return err
		}

		zones = append(zones, name)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	slices.Sort(zones)

	return zones, nil
}

// CountryZones returns the zones used in the country with the given ISO
// 3166 code, in table order. An unknown code yields an empty list.
func CountryZones(root, code string) ([]string, error) {
	if root == "" {
		root = DefaultZoneInfoRoot
	}

	code = strings.ToUpper(strings.TrimSpace(code))

	for _, table := range zoneTables {
		file, err := os.Open(filepath.Join(root, table))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}

			return nil, fmt.Errorf("open %s: %w", table, err)
		}

		zones, err := parseZoneTable(file, code)
		_ = file.Close()

		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", table, err)
		}

		return zones, nil
	}

	return nil, fmt.Errorf("%w: no zone table in %s", ErrNoZoneInfo, root)
}

// parseZoneTable reads zone.tab-style lines: codes, coordinates, zone, comment.
func parseZoneTable(r io.Reader, code string) ([]string, error) {
	var (
		zones   = []string{}
		scanner = bufio.NewScanner(r)
	)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			continue
		}

		if slices.Contains(strings.Split(fields[0], ","), code) {
			zones = append(zones, fields[2])
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return zones, nil
}

// isZoneName filters out tables and helper files such as zone.tab or posixrules.
func isZoneName(name string) bool {
	base := path.Base(name)
	if base == "" || strings.Contains(base, ".") {
		return false
	}

	first := base[0]

	return first >= 'A' && first <= 'Z'
}

// hasZoneMagic reports whether the file starts with the TZif header.
func hasZoneMagic(fsys fs.FS, name string) (bool, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return false, err
	}

	defer func() {
		_ = file.Close()
	}()

	header := make([]byte, len(tzifMagic))
	if _, err = io.ReadFull(file, header); err != nil {
		return false, nil //nolint:nilerr // Short files are simply not zones.
	}

	return bytes.Equal(header, tzifMagic), nil
}
