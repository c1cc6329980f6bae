// Package main implements the carelink CLI. The bare command starts the
// terminal UI; subcommands expose the stores for scripting.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"carelink/internal/app"
	"carelink/internal/config"
	"carelink/internal/record"
	"carelink/internal/ui"
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "carelink",
	Short: "CareLink - home care manager for the terminal",
	RunE:  runTUI,
}

var exportCmd = &cobra.Command{
	Use:   "export [notes|tasks|medications]",
	Short: "Print a feature's records as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Install sample data into empty stores",
	RunE:  runSeed,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.toml")
	rootCmd.AddCommand(exportCmd, seedCmd)
}

func openApp() (*app.App, error) {
	path := configPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	setupLogging(cfg.DataDir)
	return app.Open(cfg)
}

// setupLogging sends the app log to a file; the terminal belongs to the TUI.
func setupLogging(dataDir string) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return
	}
	f, err := os.OpenFile(filepath.Join(dataDir, "carelink.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return
	}
	log.SetOutput(f)
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	return ui.Run(a)
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var out any
	switch args[0] {
	case "notes":
		out = a.Notes.Records()
	case "tasks":
		out = a.Tasks.Records()
	case "medications":
		out = a.Meds.Records()
	default:
		return fmt.Errorf("unknown feature %q", args[0])
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	seeded := 0
	if a.Tasks.Len() == 0 {
		a.Tasks.Insert(record.Task{
			Title:       "Sample Task",
			Description: "This is a sample task description.",
			Category:    record.CategoryGeneral,
			Time:        "10:00 AM",
		})
		seeded++
	}
	if a.Meds.Len() == 0 {
		for _, med := range []record.Medication{
			{Name: "Metformin", Dosage: "500mg", Time: "08:00 AM"},
			{Name: "Lisinopril", Dosage: "10mg", Time: "08:00 AM"},
			{Name: "Aspirin", Dosage: "81mg", Time: "08:00 AM"},
		} {
			a.Meds.Insert(med)
		}
		seeded++
	}
	if seeded == 0 {
		fmt.Println("stores already have data; nothing seeded")
		return nil
	}
	fmt.Println("sample data installed")
	return nil
}
