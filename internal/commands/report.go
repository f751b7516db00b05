package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/buchfink-dev/buchfink/internal/eur"
	"github.com/buchfink-dev/buchfink/internal/export"
)

func newReportCommand(configPath *string) *cobra.Command {
	var (
		jahr     int
		csvPath  string
		xlsxPath string
		persist  bool
		final    bool
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute the EUER for a year and optionally export it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openEnv(*configPath)
			if err != nil {
				return err
			}

			if jahr == 0 {
				jahr = time.Now().Year()
			}

			svc := eur.NewService(db, jahr)
			b, err := svc.Compute()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "EUER %d\n", b.Jahr)
			fmt.Fprintf(out, "Einnahmen: %s\n", b.SummeEinnahmen.StringFixed(2))
			fmt.Fprintf(out, "Ausgaben:  %s\n", b.SummeAusgaben.StringFixed(2))
			fmt.Fprintf(out, "Ergebnis:  %s\n", b.Ergebnis.StringFixed(2))

			if persist || final {
				if _, err := svc.Persist(b, final, force); err != nil {
					return err
				}
				fmt.Fprintln(out, "Berechnung gespeichert")
			}

			if csvPath != "" {
				if err := writeFile(csvPath, func(f *os.File) error { return export.WriteCSV(f, b) }); err != nil {
					return err
				}
				fmt.Fprintf(out, "CSV: %s\n", csvPath)
			}
			if xlsxPath != "" {
				if err := writeFile(xlsxPath, func(f *os.File) error { return export.WriteXLSX(f, b) }); err != nil {
					return err
				}
				fmt.Fprintf(out, "XLSX: %s\n", xlsxPath)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&jahr, "jahr", 0, "fiscal year (default current)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write the report as CSV to this path")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write the report as XLSX to this path")
	cmd.Flags().BoolVar(&persist, "persist", false, "store the computed snapshot")
	cmd.Flags().BoolVar(&final, "final", false, "store and mark the snapshot final")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite a final snapshot")
	return cmd
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
