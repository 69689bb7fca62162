package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/collesort"
	"github.com/spf13/cobra"
)

type sortOptions struct {
	*rootOptions
	teams     int
	workers   int
	jsonOut   bool
	solutions int
}

type sortOutput struct {
	Values    []float64   `json:"values"`
	Groups    [][]float64 `json:"groups"`
	Sums      []float64   `json:"sums"`
	Amplitude float64     `json:"amplitude"`
}

func newSortCmd(root *rootOptions) *cobra.Command {
	opts := &sortOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "sort [values...]",
		Short: "Partition values into balanced teams",
		Long: `Partition values into equal-size teams with the smallest possible spread
between the strongest and the weakest team.

Values are read from the arguments, or from stdin (separated by whitespace
or commas) if no arguments are given. Put -- before the values if any of
them is negative, so they are not read as flags.`,
		Example: `  collesort sort --teams 2 1 2 3 4
  collesort sort -t 2 -- -1 4 2 3
  echo "3,1,4,1,5,9" | collesort sort -t 3 --json
  collesort sort -t 2 --solutions 5 1 2 3 4 5 6`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.teams, "teams", "t", 2, "number of teams (2-5)")
	f.IntVarP(&opts.workers, "workers", "w", 1, "search goroutines")
	f.BoolVar(&opts.jsonOut, "json", false, "print JSON")
	f.IntVar(&opts.solutions, "solutions", 0, "print the N best partitions instead of one")
	return cmd
}

func runSort(cmd *cobra.Command, args []string, opts *sortOptions) error {
	var (
		values []float64
		err    error
	)
	if len(args) > 0 {
		values, err = parseValues(args)
	} else {
		values, err = readValues(cmd.InOrStdin())
	}
	if err != nil {
		return err
	}

	logger, err := opts.logger(cmd)
	if err != nil {
		return err
	}

	sortOpts := []collesort.Option{
		collesort.WithLogger(logger),
		collesort.WithWorkers(opts.workers),
	}

	if opts.solutions > 0 {
		return printSolutions(cmd, values, opts, sortOpts)
	}

	res, err := collesort.Solve(cmd.Context(), values, opts.teams, sortOpts...)
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), res, opts.jsonOut)
}

func printSolutions(cmd *cobra.Command, values []float64, opts *sortOptions, sortOpts []collesort.Option) error {
	sortOpts = append(sortOpts, collesort.WithExhaustive())

	n := 0
	for res, err := range collesort.Solutions(cmd.Context(), values, opts.teams, sortOpts...) {
		if err != nil {
			return err
		}
		if n > 0 && !opts.jsonOut {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		if err := printResult(cmd.OutOrStdout(), res, opts.jsonOut); err != nil {
			return err
		}
		n++
		if n == opts.solutions {
			break
		}
	}
	return nil
}

func printResult(w io.Writer, res *collesort.Result, jsonOut bool) error {
	if jsonOut {
		return json.NewEncoder(w).Encode(sortOutput{
			Values:    res.Values,
			Groups:    res.Groups,
			Sums:      res.Sums,
			Amplitude: res.Amplitude,
		})
	}

	for g, members := range res.Groups {
		fmt.Fprintf(w, "team %d: %s (sum %s)\n", g+1, formatValues(members), formatFloat(res.Sums[g]))
	}
	fmt.Fprintf(w, "amplitude: %s\n", formatFloat(res.Amplitude))
	return nil
}

func parseValues(fields []string) ([]float64, error) {
	values := make([]float64, 0, len(fields))
	for _, s := range fields {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q", s)
		}
		values = append(values, v)
	}
	return values, nil
}

func readValues(r io.Reader) ([]float64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fields := strings.FieldsFunc(string(data), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) == 0 {
		return nil, errors.New("no values given")
	}
	return parseValues(fields)
}

func formatValues(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatFloat(v)
	}
	return strings.Join(parts, " ")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
