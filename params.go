package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/webgpu-cts/cts-harness/config"
	"github.com/webgpu-cts/cts-harness/framework"

	"github.com/alessio/shellescape"
)

type queryList []string

func (q *queryList) String() string {
	return strings.Join(*q, " ")
}

func (q *queryList) Set(value string) error {
	*q = append(*q, value)
	return nil
}

type commandParams struct {
	configPath string
	queries    queryList
	filters    framework.RegexFilters
	list       bool
	serve      string
	verbose    bool
	debug      bool
	debugAll   bool
}

// Read parses the command line. Options from a config file are applied first, so that flags
// given on the command line override them.
func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.StringVar(&c.configPath, "config", "", "YAML file with default options")
	fs.Var(&c.queries, "q", "query selecting cases to run, e.g. unittests:params: (repeatable)")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.list, "list", false, "print the query string of every selected case instead of running")
	fs.StringVar(&c.serve, "serve", "", "serve the listing and runner over HTTP at this address")
	fs.BoolVar(&c.verbose, "v", false, "print every case, not just failures")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if fs.NArg() > 0 {
		c.queries = append(c.queries, fs.Args()...)
	}
	if c.configPath == "" {
		return true
	}

	f, err := config.Load(c.configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return false
	}
	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	if !set["q"] && fs.NArg() == 0 {
		c.queries = append(c.queries, f.Queries...)
	}
	if !set["run"] {
		for _, p := range f.Run {
			_ = c.filters.MustMatch.Set(p) // already validated
		}
	}
	if !set["skip"] {
		for _, p := range f.Skip {
			_ = c.filters.MustNotMatch.Set(p)
		}
	}
	if !set["serve"] {
		c.serve = f.Serve
	}
	c.verbose = c.verbose || f.Verbose
	c.debug = c.debug || f.Debug
	c.debugAll = c.debugAll || f.DebugAll
	return true
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// rerunCommand returns a shell command line that runs just the given case again.
func rerunCommand(program string, id framework.TestID, debug bool) string {
	var b commandBuilder
	b.add(program)
	if debug {
		b.add("-debug")
	}
	b.add("-q", id.String())
	return b.String()
}
