package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Simplici0/preventivatore3d/internal/pricing"
	"github.com/Simplici0/preventivatore3d/internal/printout"
)

func newQuoteCommand() *cobra.Command {
	var (
		file string
		text bool
	)
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price an order read from a JSON file (- for stdin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("open order: %w", err)
				}
				defer f.Close()
				in = f
			}

			order, err := decodeOrder(in)
			if err != nil {
				return err
			}
			oq := pricing.QuoteOrder(order)

			if text {
				h := printout.Header{Date: time.Now().Format("02/01/2006 15:04"), SetupMode: order.SetupMode}
				return printout.Write(cmd.OutOrStdout(), h, order.Config, oq, printout.DefaultOptions())
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(oq)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "order JSON file")
	cmd.Flags().BoolVar(&text, "text", false, "print a plain-text quote instead of JSON")
	return cmd
}

func newHoursCommand() *cobra.Command {
	var fallback float64
	cmd := &cobra.Command{
		Use:   "hours <duration>",
		Short: "Show how a typed duration is read, e.g. 1:30, 1.30 or 0.67",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), pricing.ParseHours(args[0], fallback))
			return err
		},
	}
	cmd.Flags().Float64Var(&fallback, "fallback", 0, "value returned for empty or unreadable input")
	return cmd
}

// decodeOrder reads an order on top of the default rates.
func decodeOrder(r io.Reader) (pricing.Order, error) {
	order := pricing.Order{SetupMode: pricing.Defaults.SetupMode}
	if err := json.NewDecoder(r).Decode(&order); err != nil {
		return pricing.Order{}, fmt.Errorf("decode order: %w", err)
	}
	order.Config = order.Config.WithDefaults()
	return order, nil
}
