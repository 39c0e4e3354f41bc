package main

import (
	"fmt"
	"heaps/analyzer"
	"heaps/classifier"
	"heaps/config"
	"heaps/engine"
	"heaps/game"
	"heaps/metrics"
	"heaps/sweep"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

type cli struct {
	configPath  string
	operations  []string
	threshold   int
	maxSize     int
	horizonMin  int
	horizonMax  int
	showMetrics bool
	sweepFrom   int
	sweepTo     int
	environment config.Env
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:           "heaps",
		Short:         "Classify starting sizes of a single-heap stone game",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			e, err := config.ParseEnv()
			if err != nil {
				return err
			}
			c.environment = e
			setupLogging(e.LogLevel)
			return nil
		},
	}

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "Answer the first-move, second-move and either-move questions",
		Args:  cobra.NoArgs,
		RunE:  c.runSolve,
	}

	classifyCmd := &cobra.Command{
		Use:   "classify SIZE...",
		Short: "Print the category of each given size",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.runClassify,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Answer the questions for every threshold in a range",
		Args:  cobra.NoArgs,
		RunE:  c.runSweep,
	}

	playCmd := &cobra.Command{
		Use:   "play SIZE",
		Short: "Play a game from SIZE between two players following the categories",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runPlay,
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write classifications and answers as CSV",
		Args:  cobra.NoArgs,
		RunE:  c.runExport,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "YAML game file")
	flags.StringArrayVarP(&c.operations, "op", "o", nil, "operation such as +1, -2 or *3 (repeatable)")
	flags.IntVarP(&c.threshold, "threshold", "t", 0, "stones that end the game")
	flags.IntVarP(&c.maxSize, "max", "m", 0, "largest starting size to analyze")
	flags.IntVar(&c.horizonMin, "horizon-min", 0, "smallest size to expand")
	flags.IntVar(&c.horizonMax, "horizon-max", 0, "largest size to expand")

	solveCmd.Flags().BoolVar(&c.showMetrics, "metrics", false, "print classifier counters")
	sweepCmd.Flags().IntVar(&c.sweepFrom, "from", 0, "first threshold")
	sweepCmd.Flags().IntVar(&c.sweepTo, "to", 0, "last threshold")
	_ = sweepCmd.MarkFlagRequired("from")
	_ = sweepCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(solveCmd, classifyCmd, sweepCmd, playCmd, exportCmd)
	return rootCmd
}

// loadGame merges the config file with command line overrides.
func (c *cli) loadGame(cmd *cobra.Command) (config.Game, []game.Operation, error) {
	g := config.Default()
	if c.configPath != "" {
		loaded, err := config.Load(c.configPath)
		if err != nil {
			return g, nil, err
		}
		g = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("op") {
		g.Operations = c.operations
	}
	if flags.Changed("threshold") {
		g.Threshold = c.threshold
	}
	if flags.Changed("max") {
		g.Max = c.maxSize
	}
	if flags.Changed("horizon-min") || flags.Changed("horizon-max") {
		g.Horizon = &config.Horizon{Min: c.horizonMin, Max: c.horizonMax}
	}

	ops, err := g.Validate()
	return g, ops, err
}

func newAnalyzer(g config.Game, ops []game.Operation, collector metrics.Collector) (*analyzer.Analyzer, error) {
	options := append(g.Options(), classifier.WithMetrics(collector))
	c, err := classifier.New(game.Moves(ops), game.NewWinCondition(g.Threshold), options...)
	if err != nil {
		return nil, err
	}
	return analyzer.New(c), nil
}

func (c *cli) runSolve(cmd *cobra.Command, args []string) error {
	g, ops, err := c.loadGame(cmd)
	if err != nil {
		return err
	}
	a, err := newAnalyzer(g, ops, metrics.NewCollector())
	if err != nil {
		return err
	}
	report, err := a.Analyze(g.Max)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "game: %s, sizes 1..%d\n", sweep.Game{Operations: ops, Threshold: g.Threshold}, g.Max)
	for _, st := range classifier.StateTypes {
		fmt.Fprintf(out, "%-10s %s\n", st, joinSizes(report.Sizes(st)))
	}
	printAnswers(out, report.Answers())

	if c.showMetrics {
		m := report.Metric
		fmt.Fprintf(out, "classified %d sizes with %d moves in %s (%d cache hits, %d cycles, %d beyond horizon)\n",
			m.Classifications, m.Applications, report.Duration, m.CacheHits, m.Cycles, m.HorizonCutoffs)
	}
	return nil
}

func (c *cli) runClassify(cmd *cobra.Command, args []string) error {
	g, ops, err := c.loadGame(cmd)
	if err != nil {
		return err
	}
	cl, err := classifier.New(game.Moves(ops), game.NewWinCondition(g.Threshold), g.Options()...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, arg := range args {
		size, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("size %q is not an integer", arg)
		}
		st, err := cl.Classify(size)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d\t%s\n", size, st)
	}
	return nil
}

func (c *cli) runSweep(cmd *cobra.Command, args []string) error {
	g, ops, err := c.loadGame(cmd)
	if err != nil {
		return err
	}
	if c.sweepFrom < 1 || c.sweepTo < c.sweepFrom {
		return fmt.Errorf("threshold range %d..%d is empty: %w", c.sweepFrom, c.sweepTo, analyzer.ErrInvalidRange)
	}

	options := func(threshold, bound int) []classifier.Option {
		per := g
		per.Threshold, per.Max = threshold, bound
		return per.Options()
	}
	results := sweep.Run(sweep.Thresholds(ops, c.sweepFrom, c.sweepTo, options), c.environment.Goroutines)

	out := cmd.OutOrStdout()
	for _, result := range results {
		if result.Err != nil {
			fmt.Fprintf(out, "%s\terror: %v\n", result.Game, result.Err)
			continue
		}
		a := result.Answers
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", result.Game, joinSizes(a.FirstMove), joinSizes(a.SecondMove), joinSizes(a.EitherMove))
	}
	return nil
}

func (c *cli) runPlay(cmd *cobra.Command, args []string) error {
	g, ops, err := c.loadGame(cmd)
	if err != nil {
		return err
	}
	start, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("size %q is not an integer", args[0])
	}
	cl, err := classifier.New(game.Moves(ops), game.NewWinCondition(g.Threshold), g.Options()...)
	if err != nil {
		return err
	}

	e := engine.LocalEngine([2]string{"Petya", "Vanya"}, cl, engine.MaxTurns)
	winner, turns, err := e.Run(start)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, turn := range turns {
		fmt.Fprintf(out, "%d. %s: %d %s = %d (%s)\n", i+1, turn.Player, turn.From, turn.Move, turn.To, turn.Type)
	}
	if winner == "" {
		fmt.Fprintf(out, "no winner after %d turns\n", len(turns))
	} else {
		fmt.Fprintf(out, "%s wins\n", winner)
	}
	return nil
}

func (c *cli) runExport(cmd *cobra.Command, args []string) error {
	g, ops, err := c.loadGame(cmd)
	if err != nil {
		return err
	}
	collector := metrics.NewCollector()
	a, err := newAnalyzer(g, ops, collector)
	if err != nil {
		return err
	}
	report, err := a.Analyze(g.Max)
	if err != nil {
		return err
	}

	writer, err := metrics.NewWriter(c.environment.OutputDir, "export")
	if err != nil {
		return err
	}
	if err := writer.WriteClassifications(report.Records()); err != nil {
		return err
	}
	label := sweep.Game{Operations: ops, Threshold: g.Threshold}.String()
	answers := report.Answers()
	err = writer.WriteAnswers([]metrics.AnswerRecord{
		{Game: label, Question: "first-move", Sizes: answers.FirstMove},
		{Game: label, Question: "second-move", Sizes: answers.SecondMove},
		{Game: label, Question: "either-move", Sizes: answers.EitherMove},
	})
	if err != nil {
		return err
	}
	if err := writer.WriteMetric(report.Metric); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", writer.Dir())
	return nil
}

func printAnswers(out io.Writer, a analyzer.Answers) {
	fmt.Fprintf(out, "first move (smallest LoseIn1):   %s\n", orNone(a.FirstMove))
	fmt.Fprintf(out, "second move (two smallest WinIn2): %s\n", orNone(a.SecondMove))
	fmt.Fprintf(out, "either move (largest LoseIn2):   %s\n", orNone(a.EitherMove))
}

func joinSizes(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, size := range sizes {
		parts[i] = strconv.Itoa(size)
	}
	return strings.Join(parts, " ")
}

func orNone(sizes []int) string {
	if len(sizes) == 0 {
		return "none"
	}
	return joinSizes(sizes)
}
