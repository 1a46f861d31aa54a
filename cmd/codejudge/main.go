package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"codejudge/internal/bank"
	"codejudge/internal/config"
	"codejudge/internal/engine"
	"codejudge/internal/feedback"
	"codejudge/internal/parser"
	"codejudge/internal/spec"
	"codejudge/internal/store"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "codejudge",
		Short: "Deterministic static grader for framework exercises",
	}
	cfgPath string

	gradeProblem  string
	gradeSpecFile string
	gradeLanguage string
	gradeJSON     bool
	gradeSave     bool

	historyLimit int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Path to the codejudge config file (YAML)")

	gradeCmd.Flags().StringVarP(&gradeProblem, "problem", "p", "", "Problem ID to load from the problem bank")
	gradeCmd.Flags().StringVarP(&gradeSpecFile, "spec", "s", "", "Path to a requirement spec file (overrides --problem)")
	gradeCmd.Flags().StringVarP(&gradeLanguage, "language", "l", "", "Submission language (defaults to the framework's language)")
	gradeCmd.Flags().BoolVar(&gradeJSON, "json", false, "Print the full outcome as JSON")
	gradeCmd.Flags().BoolVar(&gradeSave, "save", false, "Record this run in the grading history")

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs to show")

	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(checkSpecCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
}

func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func newLogger(cfg *config.Config) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "codejudge",
		Level:  hclog.LevelFromString(cfg.Logging.Level),
		Output: os.Stderr,
	})
}

func newEngine(cfg *config.Config, logger hclog.Logger) *engine.Engine {
	p := parser.New(
		parser.WithNodeBin(cfg.Parser.NodeBin),
		parser.WithTimeout(time.Duration(cfg.Parser.TimeoutSeconds)*time.Second),
		parser.WithLogger(logger.Named("parser")),
	)
	return engine.New(engine.WithParser(p), engine.WithLogger(logger))
}

func loadSpec(cfg *config.Config) (*spec.RequirementSpec, error) {
	if gradeSpecFile != "" {
		return bank.LoadFile(gradeSpecFile)
	}
	if gradeProblem != "" {
		return bank.New(cfg.Bank.Dir).Load(gradeProblem)
	}
	return nil, fmt.Errorf("either --problem or --spec is required")
}

var gradeCmd = &cobra.Command{
	Use:   "grade <submission-file>",
	Short: "Grade a submission against a problem's requirements",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		logger := newLogger(cfg)

		req, err := loadSpec(cfg)
		if err != nil {
			log.Fatalf("Failed to load requirements: %v", err)
		}

		code, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatalf("Failed to read submission: %v", err)
		}

		ctx := context.Background()
		out, err := newEngine(cfg, logger).Evaluate(ctx, string(code), parser.Language(gradeLanguage), req)
		if err != nil {
			log.Fatalf("Evaluation failed: %v", err)
		}

		if gradeSave {
			saveRun(ctx, cfg, req, out)
		}

		if gradeJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				log.Fatalf("Failed to encode outcome: %v", err)
			}
			return
		}

		fmt.Println(feedback.FormatForDisplay(out.Feedback))
		fmt.Println()
		fmt.Printf("Result: %s (parser: %s, tier: %s, %v)\n",
			feedback.Summary(out.Verdict, out.Score), out.ParserUsed, out.Tier, out.Duration.Round(time.Millisecond))
	},
}

func saveRun(ctx context.Context, cfg *config.Config, req *spec.RequirementSpec, out *engine.Outcome) {
	s, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		log.Fatalf("Failed to open run store: %v", err)
	}
	defer s.Close()

	run := &store.Run{
		ProblemID:    gradeProblem,
		Framework:    req.Framework,
		Difficulty:   req.Difficulty,
		Language:     string(out.Language),
		Verdict:      out.Verdict,
		Score:        out.Score,
		Tier:         out.Tier,
		ParserUsed:   out.ParserUsed,
		ParseSuccess: out.ParseSuccess,
		Feedback:     out.Feedback,
		Breakdown:    out.Breakdown,
		Duration:     out.Duration,
	}
	if err := s.SaveRun(ctx, run); err != nil {
		log.Fatalf("Failed to save run: %v", err)
	}
	fmt.Printf("💾 Run %s saved (attempt %d)\n", run.ID, run.Attempt)
}

var checkSpecCmd = &cobra.Command{
	Use:   "check-spec <spec-file>",
	Short: "Validate a requirement spec file against the schema",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := bank.LoadFile(args[0])
		if err != nil {
			fmt.Printf("❌ %s: %v\n", args[0], err)
			os.Exit(1)
		}
		if s.Legacy() {
			fmt.Printf("⚠️ %s uses the outdated validation format and cannot be graded\n", args[0])
			os.Exit(1)
		}
		fmt.Printf("✅ %s is a valid %s/%s spec\n", args[0], s.Framework, s.Difficulty)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the problems available in the problem bank",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		ids, err := bank.New(cfg.Bank.Dir).List()
		if err != nil {
			log.Fatalf("Failed to list problems: %v", err)
		}
		if len(ids) == 0 {
			fmt.Printf("No problems found in %s\n", cfg.Bank.Dir)
			return
		}
		for _, id := range ids {
			fmt.Println(id)
		}
	},
}

var historyCmd = &cobra.Command{
	Use:   "history [problem-id]",
	Short: "Show recent grading runs",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		s, err := store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			log.Fatalf("Failed to open run store: %v", err)
		}
		defer s.Close()

		problemID := ""
		if len(args) > 0 {
			problemID = args[0]
		}

		runs, err := s.ListRuns(context.Background(), problemID, historyLimit)
		if err != nil {
			log.Fatalf("Failed to list runs: %v", err)
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded.")
			return
		}

		for _, run := range runs {
			fmt.Printf("%s  %-24s attempt %-3d %s\n",
				run.CreatedAt.Format("2006-01-02 15:04:05"),
				run.ProblemID,
				run.Attempt,
				feedback.Summary(run.Verdict, run.Score))
		}
	},
}
