package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/yashagw/craneopt/internal/config"
	"github.com/yashagw/craneopt/internal/logging"
	"github.com/yashagw/craneopt/internal/metadata"
	"github.com/yashagw/craneopt/internal/optimizer"
	"github.com/yashagw/craneopt/internal/plan"
)

type options struct {
	configPath string
	catalogue  string
	logLevel   string
	table      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "craneopt",
		Short:        "Estimate and optimise relational query plans",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVarP(&opts.catalogue, "catalogue", "c", "", "path to the catalogue statistics file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVarP(&opts.table, "table", "t", false, "print per-operator estimates as a table")

	root.AddCommand(
		&cobra.Command{
			Use:   "explain <query>",
			Short: "Print the canonical plan of a query with its estimated cost",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runExplain(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, args[0])
			},
		},
		&cobra.Command{
			Use:     "optimise <query>",
			Aliases: []string{"optimize"},
			Short:   "Print the cheapest plan found for a query",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runOptimise(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, args[0])
			},
		},
		&cobra.Command{
			Use:   "relations",
			Short: "List the relations in the catalogue",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runRelations(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
			},
		},
	)
	return root
}

// environment loads the configuration and catalogue shared by every command.
func (o *options) environment(stderr io.Writer) (*metadata.Manager, *slog.Logger, func(), error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if o.catalogue != "" {
		cfg.Catalogue = o.catalogue
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if cfg.Catalogue == "" {
		return nil, nil, nil, errors.New("no catalogue given: use --catalogue or set CATALOGUE")
	}

	logger, closeLogger, err := logging.Setup(stderr, cfg.Log)
	if err != nil {
		return nil, nil, nil, err
	}
	md, err := metadata.LoadFile(cfg.Catalogue, logger)
	if err != nil {
		closeLogger()
		return nil, nil, nil, err
	}
	return md, logger, closeLogger, nil
}

func runExplain(stdout, stderr io.Writer, opts *options, sql string) error {
	md, _, closeLogger, err := opts.environment(stderr)
	if err != nil {
		return err
	}
	defer closeLogger()

	op, err := plan.NewPlanner(plan.NewBasicQueryPlanner(md)).CreatePlan(sql)
	if err != nil {
		return err
	}
	cost, err := plan.NewEstimator().Estimate(op)
	if err != nil {
		return err
	}

	if err := render(stdout, op, opts.table); err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "cost: %d\n", cost)
	return err
}

func runOptimise(stdout, stderr io.Writer, opts *options, sql string) error {
	md, logger, closeLogger, err := opts.environment(stderr)
	if err != nil {
		return err
	}
	defer closeLogger()

	op, err := plan.NewPlanner(plan.NewBasicQueryPlanner(md)).CreatePlan(sql)
	if err != nil {
		return err
	}
	res, err := optimizer.NewOptimizer(md, logger).Run(op)
	if err != nil {
		return err
	}

	if err := render(stdout, res.Plan, opts.table); err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "cost: %d (input plan %d, %d candidates)\n",
		res.Cost, res.OriginalCost, res.Candidates)
	return err
}

func runRelations(stdout, stderr io.Writer, opts *options) error {
	md, _, closeLogger, err := opts.environment(stderr)
	if err != nil {
		return err
	}
	defer closeLogger()

	table := tablewriter.NewWriter(stdout)
	table.SetHeader([]string{"Relation", "Tuples", "Attributes"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for _, name := range md.Relations() {
		info, err := md.GetStatInfo(name)
		if err != nil {
			return err
		}
		attrs := make([]string, len(info.Attributes))
		for i, attr := range info.Attributes {
			attrs[i] = fmt.Sprintf("%s(%d)", attr.Name, attr.Values)
		}
		table.Append([]string{name, strconv.Itoa(info.RecordsOutput()), strings.Join(attrs, ", ")})
	}
	table.Render()
	return nil
}

// render prints an estimated plan as an indented tree or as a table.
func render(w io.Writer, op plan.Operator, asTable bool) error {
	if !asTable {
		return plan.Explain(w, op)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Operator", "Tuples", "Attributes"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for _, row := range plan.Stats(op) {
		table.Append([]string{
			strings.Repeat("  ", row.Depth) + row.Operator,
			strconv.Itoa(row.Tuples),
			strings.Join(row.Attributes, ", "),
		})
	}
	table.Render()
	return nil
}
