// Command planner is the CLI entry point: planner <domain-file>
// <problem-file> [-d] (spec.md §6). It parses the two PDDL files,
// grounds and searches for a plan, and reports visited/expanded counts
// and either the plan or "No plan found" on stdout. Diagnostic logging
// goes to stderr only; the command always exits 0.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ucr-ai-planner/goplanner/internal/pddl"
	"github.com/ucr-ai-planner/goplanner/internal/planning"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	zeroHeuristic := flag.Bool("d", false, "use the constant-zero heuristic instead of the relaxed-plan heuristic")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: planner <domain-file> <problem-file> [-d]")
		os.Exit(0)
	}

	if err := run(flag.Arg(0), flag.Arg(1), !*zeroHeuristic); err != nil {
		log.Error().Err(err).Msg("planner: run failed")
	}
}

func run(domainPath, problemPath string, useHeuristic bool) error {
	domainSrc, err := os.ReadFile(domainPath)
	if err != nil {
		return fmt.Errorf("reading domain file: %w", err)
	}
	problemSrc, err := os.ReadFile(problemPath)
	if err != nil {
		return fmt.Errorf("reading problem file: %w", err)
	}

	domain, err := pddl.ParseDomain(string(domainSrc))
	if err != nil {
		return fmt.Errorf("parsing domain: %w", err)
	}
	problem, err := pddl.ParseProblem(string(problemSrc))
	if err != nil {
		return fmt.Errorf("parsing problem: %w", err)
	}

	started := time.Now()
	result, err := planning.Plan(domain, problem, useHeuristic)
	if err != nil {
		return fmt.Errorf("planning: %w", err)
	}
	elapsed := time.Since(started)

	fmt.Printf("visited nodes: %d expanded nodes: %d\n", result.Visited, result.Expanded)
	if result.Found {
		fmt.Printf("Plan found with cost %v\n", result.Cost)
		for _, edge := range result.Path {
			fmt.Println(edge.Name())
		}
	} else {
		fmt.Println("No plan found")
	}
	fmt.Printf("needed %.2f seconds\n", elapsed.Seconds())
	return nil
}
