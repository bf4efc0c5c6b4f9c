package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/markovmodel/compsci-2018/internal/regression"
	"github.com/spf13/cobra"
)

func regressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regress [file.csv]",
		Short: "least-squares line through two CSV columns (stdin when no file)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRegress,
	}
}

func runRegress(cmd *cobra.Command, args []string) error {
	var in io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}

	x, y, err := regression.FromColumns(records)
	if err != nil {
		return err
	}
	slope, intercept, err := regression.LinearRegression(x, y)
	if err != nil {
		return err
	}

	fmt.Printf("samples:   %d\n", len(x))
	fmt.Printf("mean x:    %g\n", regression.Mean(x))
	fmt.Printf("mean y:    %g\n", regression.Mean(y))
	fmt.Printf("slope:     %g\n", slope)
	fmt.Printf("intercept: %g\n", intercept)
	return nil
}
