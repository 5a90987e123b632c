// Package main provides the sparkroll command line tool: dice expressions,
// a d100 yes/no oracle, narrative helper rolls, and spark table lookups.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/alexeyco/simpletable"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hollowvale/sparkroll/internal/config"
	"github.com/hollowvale/sparkroll/internal/dice"
	"github.com/hollowvale/sparkroll/internal/observability"
	"github.com/hollowvale/sparkroll/internal/oracle"
	"github.com/hollowvale/sparkroll/internal/spark"
)

var (
	yes         = color.New(color.FgGreen)
	no          = color.New(color.FgRed)
	exceptional = color.New(color.Bold)
	event       = color.New(color.FgYellow)
)

func main() {
	var (
		configPath = flag.String("config", "", "path to optional configuration file")
		oracleName = flag.String("oracle", "", "ask the oracle with the given likelihood, e.g. likely or fifty_fifty")
		sparkName  = flag.String("s", "", "roll a spark table: a table name rolls it, a sheet name picks one of its tables at random")
		sparkFile  = flag.String("spark-file", "", "path to spark data (CSV export, JSON, or YAML); overrides config and $SPARKROLL_SPARK_FILE")
		listSpark  = flag.Bool("list-spark", false, "list available spark sheets and tables")
		wilderness = flag.Bool("w", false, "wilderness roll")
		luck       = flag.Bool("l", false, "luck roll")
		unresolved = flag.Bool("u", false, "unresolved situation roll")
		mood       = flag.Bool("m", false, "local mood roll")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()
	logger = logger.With(zap.String("session", uuid.NewString()))

	sparkPath := cfg.Spark.File
	if *sparkFile != "" {
		sparkPath = *sparkFile
	}

	expr := strings.TrimSpace(strings.Join(flag.Args(), " "))

	app := &app{
		src:       dice.NewCryptoSource(),
		logger:    logger,
		sparkPath: sparkPath,
	}

	requested := false
	failed := false
	run := func(op string, f func() error) {
		requested = true
		if err := f(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			logger.Warn("operation failed", zap.String("op", op), zap.Error(err))
			failed = true
		}
	}

	if *listSpark {
		run("list-spark", app.listSpark)
	}
	if *oracleName != "" {
		run("oracle", func() error { return app.askOracle(*oracleName) })
	}
	if *sparkName != "" {
		run("spark", func() error { return app.rollSpark(*sparkName) })
	}
	if *wilderness {
		run("wilderness", func() error { return app.narrative("\U0001F332", "Wilderness", oracle.Wilderness) })
	}
	if *luck {
		run("luck", func() error { return app.narrative("\U0001F340", "Luck", oracle.Luck) })
	}
	if *unresolved {
		run("unresolved", func() error { return app.narrative("⚖️", "Unresolved", oracle.Unresolved) })
	}
	if *mood {
		run("mood", func() error { return app.narrative("\U0001F3D8️", "Local Mood", oracle.LocalMood) })
	}
	if expr != "" {
		run("dice", func() error { return app.rollDice(expr) })
	}

	if !requested {
		flag.Usage()
		os.Exit(1)
	}
	if failed {
		os.Exit(1)
	}
}

// app holds the shared collaborators for one invocation. The spark store is
// loaded lazily and at most once, even when several operations need it.
type app struct {
	src       dice.Source
	logger    *zap.Logger
	sparkPath string
	store     *spark.Store
}

func (a *app) loadStore() (*spark.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	store, err := spark.LoadFile(a.sparkPath, a.logger)
	if err != nil {
		return nil, err
	}
	a.store = store
	return store, nil
}

func (a *app) rollDice(expr string) error {
	roller := dice.NewLoggedRoller(a.src, a.logger)
	result, err := roller.RollExpr(expr)
	if err != nil {
		return err
	}

	var parts []string
	for _, term := range result.Terms {
		sign := "+"
		if term.Term.Sign < 0 {
			sign = "-"
		}
		if term.Term.IsDice() {
			parts = append(parts, fmt.Sprintf("%s%s=%v", sign, term.Term, term.Dice))
		} else {
			parts = append(parts, fmt.Sprintf("%s%s", sign, term.Term))
		}
	}
	fmt.Println(strings.Join(parts, " | "))
	fmt.Printf("\U0001F3B2 Total: %s\n", exceptional.Sprintf("%d", result.Total()))
	return nil
}

func (a *app) askOracle(name string) error {
	spec, ok := oracle.PresetByName(name)
	if !ok {
		names := make([]string, 0, 9)
		for _, p := range oracle.Presets() {
			names = append(names, p.Name)
		}
		return fmt.Errorf("unknown likelihood %q (valid: %s)", name, strings.Join(names, ", "))
	}

	v := oracle.Resolve(spec, a.src)
	a.logger.Debug("oracle roll",
		zap.String("likelihood", spec.Name),
		zap.Int("roll", v.Roll),
		zap.Stringer("answer", v.Answer),
		zap.Bool("exceptional", v.Exceptional),
		zap.Bool("random_event", v.RandomEvent),
	)

	answer := yes.Sprint("YES")
	if v.Answer == oracle.AnswerNo {
		answer = no.Sprint("NO")
	}
	if v.Exceptional {
		answer = exceptional.Sprint("EXCEPTIONAL ") + answer
	}
	fmt.Printf("\U0001F52E Oracle (%s) d100 → %d: %s\n", spec.Name, v.Roll, answer)
	if v.RandomEvent {
		fmt.Printf("   %s\n", event.Sprint("Doubles! A random event interrupts the scene."))
	}
	return nil
}

func (a *app) rollSpark(name string) error {
	store, err := a.loadStore()
	if err != nil {
		return err
	}

	m, err := store.Find(name, a.src)
	if err != nil {
		return err
	}
	pick, err := spark.RollTable(m.Table, a.src)
	if err != nil {
		return err
	}
	a.logger.Debug("spark roll",
		zap.String("sheet", m.Sheet.Name),
		zap.String("table", m.Table.Name),
		zap.Ints("dice", pick.Dice()),
	)

	fmt.Printf("\U0001F5FA️  Spark → Sheet: %s | Table: %s\n", m.Sheet.Name, m.Table.Name)
	fmt.Printf("✨ d12 per column → %v\n", pick.Dice())
	var parts []string
	for _, p := range pick.Picks {
		parts = append(parts, fmt.Sprintf("%s: '%s'", p.Column, p.Value))
	}
	fmt.Println(strings.Join(parts, " + "))
	return nil
}

func (a *app) listSpark() error {
	store, err := a.loadStore()
	if err != nil {
		return err
	}

	table := simpletable.New()
	table.Header = &simpletable.Header{
		Cells: []*simpletable.Cell{
			{Align: simpletable.AlignLeft, Text: "Sheet"},
			{Align: simpletable.AlignLeft, Text: "Table"},
			{Align: simpletable.AlignLeft, Text: "Columns"},
		},
	}
	for ref := range store.All() {
		table.Body.Cells = append(table.Body.Cells, []*simpletable.Cell{
			{Align: simpletable.AlignLeft, Text: ref.Sheet},
			{Align: simpletable.AlignLeft, Text: ref.Table},
			{Align: simpletable.AlignLeft, Text: strings.Join(ref.Columns, ", ")},
		})
	}
	table.SetStyle(simpletable.StyleCompactLite)

	fmt.Println("\U0001F4DA Spark sheets & tables:")
	fmt.Println(table.String())
	return nil
}

func (a *app) narrative(emoji, label string, roll func(dice.Source) oracle.NarrativeResult) error {
	r := roll(a.src)
	a.logger.Debug("narrative roll", zap.String("kind", r.Name), zap.Int("roll", r.Roll))
	fmt.Printf("%s %s d6 → %d: %s\n", emoji, label, r.Roll, r.Text)
	return nil
}
