// Package main is the entry point for the rhythm2midi CLI
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/james-see/rhythm2midi/pkg/api"
	"github.com/james-see/rhythm2midi/pkg/rhythm"
	"github.com/james-see/rhythm2midi/pkg/tui"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	outputFile string
	serverPort int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rhythm2midi",
	Short: "Quantize tapped rhythms into MIDI files",
	Long: `rhythm2midi reads a naive-rhythm tap document (a tempo plus key-press
timestamps in milliseconds), snaps each tap to the nearest beat and writes
the result as a two-track standard MIDI file.

Input format:
  naive-rhythm bpm 120
  0 250 500 750

Examples:
  rhythm2midi convert taps.txt -o taps.mid
  rhythm2midi check taps.txt
  rhythm2midi tap
  rhythm2midi serve --port 8080`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var convertCmd = &cobra.Command{
	Use:   "convert <input.txt>",
	Short: "Convert a tap document to a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

var checkCmd = &cobra.Command{
	Use:   "check <input.txt>",
	Short: "Parse and quantize a tap document without writing a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

var tapCmd = &cobra.Command{
	Use:   "tap",
	Short: "Record a rhythm interactively and save it as MIDI",
	RunE:  runTap,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .mid file path")

	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tapCmd)
	rootCmd.AddCommand(serveCmd)
}

func getOutputPath(input string) string {
	if outputFile != "" {
		return outputFile
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + ".mid"
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := getOutputPath(input)

	conv := rhythm.New()
	if err := conv.ConvertFile(input, output); err != nil {
		return err
	}

	fmt.Printf("Converted %s -> %s\n", input, output)
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	in, err := rhythm.Parse(string(data))
	if err != nil {
		return err
	}
	out := rhythm.Solve(in)

	fmt.Printf("Tempo: %d bpm (beat period %dms)\n", in.Tempo, 60000/in.Tempo)
	fmt.Printf("Taps:  %d\n", len(in.Keys))
	fmt.Printf("Beats: %d -> %v\n", len(out.Beats), out.Beats)
	return nil
}

func runTap(cmd *cobra.Command, args []string) error {
	return tui.Run()
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Printf("Starting API server on port %d...\n", serverPort)
	return api.StartServer(serverPort)
}
