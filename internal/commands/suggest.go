package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/buchfink-dev/buchfink/internal/accounts"
	"github.com/buchfink-dev/buchfink/internal/kontierung"
)

func newSuggestCommand(configPath *string) *cobra.Command {
	var betragFlag string

	cmd := &cobra.Command{
		Use:   "suggest <text>",
		Short: "Propose a kontierung for a booking text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openEnv(*configPath)
			if err != nil {
				return err
			}

			rules, err := loadRules(cfg.Kontierung.RulesFile)
			if err != nil {
				return err
			}

			advisor, err := kontierung.NewAdvisor(rules, nil, accounts.NewService(db))
			if err != nil {
				return err
			}

			var betrag *decimal.Decimal
			if betragFlag != "" {
				d, err := decimal.NewFromString(betragFlag)
				if err != nil {
					return fmt.Errorf("invalid betrag %q: %w", betragFlag, err)
				}
				betrag = &d
			}

			v := advisor.Suggest(args[0], betrag)
			out := cmd.OutOrStdout()
			if v.Methode == kontierung.MethodeKeinVorschlag {
				fmt.Fprintln(out, "kein Vorschlag")
				return nil
			}
			fmt.Fprintf(out, "Soll:       %s\n", v.Sollkonto)
			fmt.Fprintf(out, "Haben:      %s\n", v.Habenkonto)
			fmt.Fprintf(out, "Kategorie:  %s\n", v.Kategorie)
			fmt.Fprintf(out, "Confidence: %.2f (%s)\n", v.Confidence, v.Methode)
			if v.Begruendung != "" {
				fmt.Fprintf(out, "Begruendung: %s\n", v.Begruendung)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&betragFlag, "betrag", "", "amount, sign decides the fallback side")
	return cmd
}

func loadRules(path string) ([]kontierung.Rule, error) {
	if path == "" {
		return nil, nil
	}
	return kontierung.LoadRules(path)
}
