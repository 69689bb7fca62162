package collesort_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/collesort"
)

// ExampleSort demonstrates balancing four players into two teams.
func ExampleSort() {
	out, err := collesort.Sort(context.Background(), []float64{1, 2, 3, 4}, 2)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(out)
	// Output: [1 4 2 3]
}

// ExampleSolve demonstrates inspecting the groups of an optimal partition.
func ExampleSolve() {
	res, err := collesort.Solve(context.Background(), []float64{1, 17, 8, 15, 16, 18}, 2)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(res.Groups)
	fmt.Println(res.Sums)
	fmt.Println(res.Amplitude)
	// Output:
	// [[1 17 18] [8 15 16]]
	// [36 39]
	// 3
}

// ExampleSolutions demonstrates enumerating partitions until they get worse
// than the optimum.
func ExampleSolutions() {
	ctx := context.Background()
	values := []float64{1, 2, 3, 4, 5, 6}

	for res, err := range collesort.Solutions(ctx, values, 2, collesort.WithExhaustive()) {
		if err != nil {
			log.Fatal(err)
		}
		if res.Amplitude > 1 {
			break
		}
		fmt.Println(res.Groups)
	}
	// Output:
	// [[1 4 5] [2 3 6]]
	// [[1 3 6] [2 4 5]]
	// [[1 4 6] [2 3 5]]
}

// ExampleWithMetricsCollector demonstrates collecting basic solve metrics.
func ExampleWithMetricsCollector() {
	metrics := &collesort.BasicMetricsCollector{}

	_, err := collesort.Sort(context.Background(), []float64{5, 5, 3, 3, 2, 2, 9, 1}, 4,
		collesort.WithMetricsCollector(metrics),
		collesort.WithWorkers(2),
	)
	if err != nil {
		log.Fatal(err)
	}

	stats := metrics.GetStats()
	fmt.Println(stats.SolveCount, stats.SolveErrors)
	// Output: 1 0
}

// ExampleValidate demonstrates the error for a size that does not divide
// into teams.
func ExampleValidate() {
	err := collesort.Validate([]float64{1, 2, 3, 4, 5}, 2)
	fmt.Println(err)
	// Output: size 5 is not divisible by 2 teams
}
