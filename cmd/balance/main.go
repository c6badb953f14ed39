// SPDX-License-Identifier: MIT

// Command balance balances chemical equations from formulas.
//
//	balance reaction -r Fe -r O2 -p Fe2O3
//	4 Fe + 3 O2 -> 2 Fe2O3
//
//	balance formation C3H8
//	3 C + 4 H2 -> C3H8
package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/katalvlaran/stoich/formula"
	"github.com/katalvlaran/stoich/internal/logging"
	"github.com/katalvlaran/stoich/reaction"
)

const version = "0.1.0"

// CLI defines the command-line interface for balance.
type CLI struct {
	// Global flags
	LogLevel       string           `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`
	LogFormat      string           `name:"log-format" default:"text" enum:"text,json" help:"Log format (text, json)"`
	MaxDenominator int64            `name:"max-denominator" default:"1000" help:"Largest denominator tried when rationalizing coefficients"`
	RankTolerance  float64          `name:"rank-tolerance" default:"0" help:"Absolute singular-value cutoff (0 derives it from the matrix)"`
	Strict         bool             `help:"Fail when no integral coefficients exist"`
	Version        kong.VersionFlag `help:"Print version information"`

	Reaction  ReactionCmd  `cmd:"" help:"Balance reactants against products"`
	Formation FormationCmd `cmd:"" help:"Balance the standard formation reaction of a compound"`
	Matrix    MatrixCmd    `cmd:"" help:"Print the conservation matrix of a reaction"`
}

// env carries what every command needs, built once from the global flags.
type env struct {
	out    io.Writer
	logger *slog.Logger
	opts   []reaction.Option
	strict bool
}

// ReactionCmd balances a reaction given as reactant and product formulas.
type ReactionCmd struct {
	Reactants []string `name:"reactant" short:"r" required:"" help:"Reactant formula (repeatable)"`
	Products  []string `name:"product" short:"p" required:"" help:"Product formula (repeatable)"`
}

func (c *ReactionCmd) Run(e *env) error {
	names, species, known, err := sides(c.Reactants, c.Products)
	if err != nil {
		return err
	}

	res, err := reaction.Balance(species, known, e.opts...)
	if err != nil {
		return err
	}
	if e.strict {
		if err = res.RequireIntegral(); err != nil {
			return err
		}
	}
	if !res.Integral {
		e.logger.Warn("coefficients are not integral", "coefficients", res.Coefficients)
	}
	e.logger.Info("balanced", "species", len(species), "elements", strings.Join(res.Elements, ","))

	_, err = fmt.Fprintln(e.out, reaction.FormatNamed(names, known, res.Coefficients))

	return err
}

// FormationCmd prints the standard formation reaction of one compound.
type FormationCmd struct {
	Compound string `arg:"" help:"Compound formula, e.g. C3H8"`
}

func (c *FormationCmd) Run(e *env) error {
	compound, err := formula.Parse(c.Compound)
	if err != nil {
		return err
	}

	product, coeffs, reactants, err := reaction.StandardFormationReaction(compound, e.opts...)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(reactants)+1)
	known := make([]bool, 0, len(reactants)+1)
	for _, r := range reactants {
		names = append(names, r.String())
		known = append(known, true)
	}
	names = append(names, strings.TrimSpace(c.Compound))
	known = append(known, false)

	_, err = fmt.Fprintln(e.out, reaction.FormatNamed(names, known, append(coeffs, product)))

	return err
}

// MatrixCmd prints one row per conserved element.
type MatrixCmd struct {
	Reactants []string `name:"reactant" short:"r" required:"" help:"Reactant formula (repeatable)"`
	Products  []string `name:"product" short:"p" required:"" help:"Product formula (repeatable)"`
}

func (c *MatrixCmd) Run(e *env) error {
	names, species, known, err := sides(c.Reactants, c.Products)
	if err != nil {
		return err
	}

	sm, err := reaction.BuildMatrix(species, known)
	if err != nil {
		return err
	}

	if _, err = fmt.Fprintf(e.out, "\t%s\n", strings.Join(names, "\t")); err != nil {
		return err
	}
	for i, el := range sm.Elements {
		row, err := sm.Mat.Row(i)
		if err != nil {
			return err
		}
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if _, err = fmt.Fprintf(e.out, "%s\t%s\n", el, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}

	return nil
}

// sides parses reactant and product formulas into one ordered species list.
func sides(reactants, products []string) ([]string, []reaction.Species, []bool, error) {
	names := append(append([]string(nil), reactants...), products...)
	species, err := formula.ParseAll(names)
	if err != nil {
		return nil, nil, nil, err
	}
	known := make([]bool, len(names))
	for i := range reactants {
		known[i] = true
	}
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}

	return names, species, known, nil
}

// newEnv resolves the global flags.
func (c *CLI) newEnv(stdout, stderr io.Writer) (*env, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(c.LogFormat)
	if err != nil {
		return nil, err
	}
	if c.MaxDenominator < 1 {
		return nil, fmt.Errorf("--max-denominator must be >= 1, got %d", c.MaxDenominator)
	}
	if math.IsNaN(c.RankTolerance) || math.IsInf(c.RankTolerance, 0) || c.RankTolerance < 0 {
		return nil, fmt.Errorf("--rank-tolerance must be finite and >= 0, got %g", c.RankTolerance)
	}

	logger := logging.New(stderr, level, format)

	return &env{
		out:    stdout,
		logger: logger,
		opts: []reaction.Option{
			reaction.WithLogger(logger),
			reaction.WithMaxDenominator(c.MaxDenominator),
			reaction.WithRankTolerance(c.RankTolerance),
		},
		strict: c.Strict,
	}, nil
}

// run parses args and executes the selected command.
func run(args []string, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("balance"),
		kong.Description("Balance chemical equations with the smallest integer coefficients."),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)
	if err != nil {
		return err
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	e, err := cli.newEnv(stdout, stderr)
	if err != nil {
		return err
	}

	return ctx.Run(e)
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "balance: %v\n", err)
		os.Exit(1)
	}
}
