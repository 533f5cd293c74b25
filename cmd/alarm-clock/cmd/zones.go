package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/clock"
)

var (
	// zonesCountry filters zones by ISO 3166 country code.
	zonesCountry string
	// zoneinfoRoot is the zoneinfo directory to scan.
	zoneinfoRoot string

	// zonesCmd lists the timezones known to the system.
	zonesCmd = &cobra.Command{
		Use:   "zones",
		Short: "List available IANA timezones.",
		Long: `Lists the timezones found in the system zoneinfo directory, one per line.
With --country only the zones of that ISO 3166 country are listed; an
unknown country prints nothing.

Listing needs a zoneinfo directory on disk (the tzdata package on most
Linux systems). Without it the clock still runs in any IANA zone, but
this command fails; point --zoneinfo at another copy of the database.`,
		Example: "  alarm-clock zones --country CO",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listZones(cmd.OutOrStdout(), zoneinfoRoot, zonesCountry)
		},
	}
)

// listZones prints the zones under root, filtered by country when set.
func listZones(out io.Writer, root, country string) error {
	var (
		zones []string
		err   error
	)

	if country != "" {
		zones, err = clock.CountryZones(root, country)
	} else {
		zones, err = clock.Zones(root)
	}

	if err != nil {
		if errors.Is(err, clock.ErrNoZoneInfo) {
			return fmt.Errorf("%w, use --zoneinfo to point at one", err)
		}

		return err
	}

	if len(zones) == 0 {
		return nil
	}

	_, err = fmt.Fprintln(out, strings.Join(zones, "\n"))

	return err
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	zonesCmd.Flags().StringVar(&zonesCountry, "country", "", "ISO 3166 country code, e.g. CO")
	zonesCmd.Flags().StringVar(&zoneinfoRoot, "zoneinfo", clock.DefaultZoneInfoRoot, "zoneinfo directory")

	rootCmd.AddCommand(zonesCmd)
}
