// Planner — household retirement cash-flow and Monte Carlo projection CLI.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/retirewise/planner/internal/config"
	"github.com/retirewise/planner/internal/logger"
	"github.com/retirewise/planner/internal/output"
	"github.com/retirewise/planner/internal/repository"
	"github.com/retirewise/planner/internal/simulation"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "planner",
	Short: "Household retirement cash-flow and Monte Carlo projection engine",
	Long: `Planner simulates a household's financial trajectory from today through
end of life: salary and guaranteed income, age-varying spending, tax-ordered
withdrawals with RMD handling, and stochastic market returns aggregated into
percentile bands and a plan success rate.`,
}

func init() {
	rootCmd.PersistentFlags().String("input", "profile.yaml", "household profile YAML file")
	rootCmd.PersistentFlags().String("format", "console", "output format (console, console-verbose, csv, json)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(expectedCmd)
	rootCmd.AddCommand(exampleCmd)
	rootCmd.AddCommand(scenariosCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("planner %s (%s)\n", version, commit)
	},
}

// --- Simulate Command ---

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a Monte Carlo projection for a household profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.New()
		defer log.Sync() //nolint:errcheck

		inputPath, _ := cmd.Flags().GetString("input")
		formatName, _ := cmd.Flags().GetString("format")
		sims, _ := cmd.Flags().GetInt("simulations")
		seed, _ := cmd.Flags().GetInt64("seed")
		model, _ := cmd.Flags().GetString("spending")
		preset, _ := cmd.Flags().GetString("market")
		saveName, _ := cmd.Flags().GetString("save")

		parser := config.NewInputParser()
		profile, err := parser.LoadProfile(inputPath)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		assumptions, err := parser.ResolveAssumptions(preset)
		if err != nil {
			return err
		}
		spendingModel, err := simulation.ParseSpendingModel(model)
		if err != nil {
			return err
		}

		runner, err := simulation.NewMonteCarloRunner(simulation.RunnerConfig{
			Simulations:   sims,
			Seed:          seed,
			SpendingModel: spendingModel,
			Assumptions:   assumptions,
			Logger:        log,
		})
		if err != nil {
			return err
		}

		log.Infow("starting simulation", "profile", inputPath, "simulations", sims, "market", assumptions.Name)
		result, err := runner.Run(cmd.Context(), profile)
		if err != nil {
			return fmt.Errorf("simulation failed: %w", err)
		}

		formatter := output.GetFormatterByName(formatName)
		if formatter == nil {
			return fmt.Errorf("unknown format %q (available: %v)", formatName, output.AvailableFormatterNames())
		}
		rendered, err := formatter.Format(result)
		if err != nil {
			return err
		}
		fmt.Print(string(rendered))

		if writeReport, _ := cmd.Flags().GetBool("report"); writeReport {
			filename, err := output.WriteFormatted(formatter, result, output.DefaultExtension(formatter.Name()))
			if err != nil {
				return err
			}
			log.Infow("wrote report", "file", filename)
			fmt.Printf("\nWrote report to %s\n", filename)
		}

		if saveName != "" {
			repo, err := scenarioRepo()
			if err != nil {
				return err
			}
			snapshot, err := repo.Save(saveName, profile, result)
			if err != nil {
				return err
			}
			log.Infow("saved scenario", "id", snapshot.ID, "name", saveName)
			fmt.Printf("\nSaved scenario %s (%s)\n", saveName, snapshot.ID)
		}
		return nil
	},
}

func init() {
	simulateCmd.Flags().Int("simulations", 1000, "number of Monte Carlo paths")
	simulateCmd.Flags().Int64("seed", 0, "RNG seed (0 = time-based)")
	simulateCmd.Flags().String("spending", "constant_real", "spending model (constant_real, retirement_smile, conservative_decline)")
	simulateCmd.Flags().String("market", "historical", "market preset name or assumptions YAML file")
	simulateCmd.Flags().String("save", "", "save the run as a named scenario snapshot")
	simulateCmd.Flags().Bool("report", false, "also write the output to a timestamped report file")
}

// --- Compare Command ---

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare allocation presets side by side",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.New()
		defer log.Sync() //nolint:errcheck

		inputPath, _ := cmd.Flags().GetString("input")
		sims, _ := cmd.Flags().GetInt("simulations")
		seed, _ := cmd.Flags().GetInt64("seed")
		model, _ := cmd.Flags().GetString("spending")
		preset, _ := cmd.Flags().GetString("market")

		parser := config.NewInputParser()
		profile, err := parser.LoadProfile(inputPath)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		assumptions, err := parser.ResolveAssumptions(preset)
		if err != nil {
			return err
		}
		spendingModel, err := simulation.ParseSpendingModel(model)
		if err != nil {
			return err
		}

		aggregator, err := simulation.NewScenarioAggregator(simulation.RunnerConfig{
			Simulations:   sims,
			Seed:          seed,
			SpendingModel: spendingModel,
			Assumptions:   assumptions,
			Logger:        log,
		})
		if err != nil {
			return err
		}

		results, err := aggregator.RunAll(cmd.Context(), profile, simulation.DefaultPresets())
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}
		fmt.Print(string(output.FormatComparison(results)))
		return nil
	},
}

func init() {
	compareCmd.Flags().Int("simulations", 1000, "number of Monte Carlo paths per preset")
	compareCmd.Flags().Int64("seed", 0, "RNG seed shared by all presets (0 = time-based)")
	compareCmd.Flags().String("spending", "constant_real", "spending model")
	compareCmd.Flags().String("market", "historical", "market preset name or assumptions YAML file")
}

// --- Expected Command ---

var expectedCmd = &cobra.Command{
	Use:   "expected",
	Short: "Run the deterministic expected-case projection",
	Long: `Runs a single path with every market draw pinned to the assumption means.
Useful as a sanity check next to the Monte Carlo spread.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath, _ := cmd.Flags().GetString("input")
		model, _ := cmd.Flags().GetString("spending")
		preset, _ := cmd.Flags().GetString("market")

		parser := config.NewInputParser()
		profile, err := parser.LoadProfile(inputPath)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		assumptions, err := parser.ResolveAssumptions(preset)
		if err != nil {
			return err
		}
		spendingModel, err := simulation.ParseSpendingModel(model)
		if err != nil {
			return err
		}

		path, err := simulation.ExpectedPath(profile, assumptions, spendingModel, 0)
		if err != nil {
			return err
		}

		fmt.Println("EXPECTED-CASE PROJECTION")
		fmt.Println("================================")
		fmt.Printf("%-6s %4s %-13s %18s %18s %18s\n", "Year", "Age", "Phase", "Income", "Spending", "End Balance")
		for _, year := range path.Years {
			fmt.Printf("%-6d %4d %-13s %18s %18s %18s\n",
				year.Year, year.PrimaryAge, year.State.String(),
				output.FormatCurrency(year.Income),
				output.FormatCurrency(year.Expenses),
				output.FormatCurrency(year.Balances.Total()),
			)
		}
		fmt.Println()
		fmt.Printf("Ending Balance: %s\n", output.FormatCurrency(path.EndingBalance))
		if path.Failed {
			fmt.Printf("Portfolio depleted in %d\n", path.FailedYear)
		}
		return nil
	},
}

func init() {
	expectedCmd.Flags().String("spending", "constant_real", "spending model")
	expectedCmd.Flags().String("market", "historical", "market preset name or assumptions YAML file")
}

// --- Example Command ---

var exampleCmd = &cobra.Command{
	Use:   "example [file]",
	Short: "Write an example household profile YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "profile.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, refusing to overwrite", path)
		}
		if err := config.NewInputParser().WriteExampleProfile(path); err != nil {
			return err
		}
		fmt.Printf("Wrote example profile to %s\n", path)
		return nil
	},
}

// --- Scenarios Command ---

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "Manage saved scenario snapshots",
}

var scenariosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved scenario snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := scenarioRepo()
		if err != nil {
			return err
		}
		snapshots, err := repo.List()
		if err != nil {
			return err
		}
		if len(snapshots) == 0 {
			fmt.Println("No saved scenarios.")
			return nil
		}
		fmt.Printf("%-38s %-20s %-20s %s\n", "ID", "Name", "Created", "Success")
		for _, s := range snapshots {
			fmt.Printf("%-38s %-20s %-20s %s\n",
				s.ID, s.Name, s.CreatedAt.Format("2006-01-02 15:04:05"),
				output.FormatPercent(s.Result.SuccessRate))
		}
		return nil
	},
}

var scenariosShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one saved scenario snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid scenario id %q: %w", args[0], err)
		}
		repo, err := scenarioRepo()
		if err != nil {
			return err
		}
		snapshot, err := repo.Load(id)
		if err != nil {
			return err
		}
		formatName, _ := cmd.Flags().GetString("format")
		formatter := output.GetFormatterByName(formatName)
		if formatter == nil {
			return fmt.Errorf("unknown format %q (available: %v)", formatName, output.AvailableFormatterNames())
		}
		fmt.Printf("Scenario %s (%s), saved %s\n\n", snapshot.Name, snapshot.ID, snapshot.CreatedAt.Format("2006-01-02 15:04:05"))
		rendered, err := formatter.Format(snapshot.Result)
		if err != nil {
			return err
		}
		fmt.Print(string(rendered))
		return nil
	},
}

func init() {
	scenariosCmd.AddCommand(scenariosListCmd)
	scenariosCmd.AddCommand(scenariosShowCmd)
}

// scenarioRepo opens the snapshot store under the user config directory.
func scenarioRepo() (*repository.FileScenarioRepository, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return repository.NewFileScenarioRepository(filepath.Join(base, "planner", "scenarios"))
}
