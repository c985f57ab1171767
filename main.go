package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/webgpu-cts/cts-harness/framework"
	"github.com/webgpu-cts/cts-harness/framework/loader"
	"github.com/webgpu-cts/cts-harness/framework/query"
	"github.com/webgpu-cts/cts-harness/server"
	"github.com/webgpu-cts/cts-harness/suites/unittests"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	var params commandParams
	if !params.Read(args) {
		return 2
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	l := loader.New()
	if err := unittests.Register(l); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load test suites: %s\n", err)
		return 1
	}

	var queries []query.Query
	for _, s := range params.queries {
		q, err := query.Parse(s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid parameters: %s\n", err)
			return 2
		}
		queries = append(queries, q)
	}

	if params.list {
		listing, err := l.Listing(queries...)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		for _, s := range listing {
			fmt.Println(s)
		}
		return 0
	}

	if params.serve != "" {
		srv, err := server.Start(params.serve, server.New(l, mainDebugLogger).Handler(), mainDebugLogger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Server error: %s\n", err)
			return 1
		}
		fmt.Printf("Serving test listing at %s (interrupt to stop)\n", params.serve)
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt)
		<-stop
		_ = srv.Close()
		return 0
	}

	framework.PrintFilterDescription(os.Stdout, params.filters, params.queries)

	fmt.Println("Running test suite")

	testLogger := &framework.ConsoleTestLogger{
		Verbose:              params.verbose,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := l.Run(params.filters.AsFilter, testLogger, queries...)

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if !results.OK() {
		fmt.Println()
		fmt.Println("To rerun a failed case:")
		for _, f := range results.Failures {
			fmt.Printf("  %s\n", rerunCommand(args[0], f.TestID, params.debug))
		}
		return 1
	}
	return 0
}
