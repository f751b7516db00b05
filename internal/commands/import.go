package commands

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/buchfink-dev/buchfink/internal/booking"
)

func newImportCommand(configPath *string) *cobra.Command {
	var (
		mapping      string
		defaultSoll  string
		defaultHaben string
		skipHeader   bool
	)

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Book bank CSV rows, collecting per-row errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openEnv(*configPath)
			if err != nil {
				return err
			}

			columnMapping, err := parseColumnMapping(mapping)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			cr := csv.NewReader(f)
			cr.FieldsPerRecord = -1
			rows, err := cr.ReadAll()
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			if skipHeader && len(rows) > 0 {
				rows = rows[1:]
			}

			svc := booking.NewService(db, booking.ParsePolicy(cfg.Booking.MissingAccountPolicy))
			success, errs := svc.ImportCSV(rows, columnMapping, defaultSoll, defaultHaben)

			fmt.Fprintf(cmd.OutOrStdout(), "%d Buchungen importiert, %d Fehler\n", success, len(errs))
			for _, e := range errs {
				fmt.Fprintln(cmd.ErrOrStderr(), e)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mapping, "mapping", "0=datum,1=betrag,2=text", "column index to field mapping")
	cmd.Flags().StringVar(&defaultSoll, "soll", "4980", "default debit account number")
	cmd.Flags().StringVar(&defaultHaben, "haben", "1200", "default credit account number")
	cmd.Flags().BoolVar(&skipHeader, "skip-header", true, "skip the first CSV row")
	return cmd
}

// parseColumnMapping reads "0=datum,1=betrag,2=text" into the map
// ImportCSV expects.
func parseColumnMapping(s string) (map[int]string, error) {
	result := make(map[int]string)
	for _, part := range strings.Split(s, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid mapping part %q", part)
		}
		idx, err := strconv.Atoi(kv[0])
		if err != nil {
			return nil, fmt.Errorf("invalid column index %q", kv[0])
		}
		result[idx] = kv[1]
	}
	return result, nil
}
