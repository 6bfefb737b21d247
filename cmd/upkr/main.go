// upkr packs and unpacks size-optimized payloads.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/sizecoder/upkr"
)

const version = "1.0.0"

var (
	LevelFlag = &cli.IntFlag{
		Name:    "level",
		Aliases: []string{"l"},
		Value:   upkr.DefaultLevel,
		Usage:   "compression level, 0 (fastest) to 9 (smallest)",
	}
	OutputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file, only valid with a single input",
	}
	RawFlag = &cli.BoolFlag{
		Name:  "raw",
		Usage: "headerless stream without unpacked length or checksum",
	}
	JobsFlag = &cli.IntFlag{
		Name:    "jobs",
		Aliases: []string{"j"},
		Value:   runtime.NumCPU(),
		Usage:   "files to process in parallel",
	}
	ForceFlag = &cli.BoolFlag{
		Name:    "force",
		Aliases: []string{"f"},
		Usage:   "overwrite existing output files",
	}
	SizeFlag = &cli.IntFlag{
		Name:    "size",
		Aliases: []string{"n"},
		Usage:   "unpacked size of a raw stream, 0 grows until the terminator",
	}
	QuietFlag = &cli.BoolFlag{
		Name:    "quiet",
		Aliases: []string{"q"},
		Usage:   "suppress the per-file summary",
	}
)

var (
	shrunkColor = color.New(color.FgGreen).SprintfFunc()
	warnColor   = color.New(color.FgYellow).SprintfFunc()
)

var app = &cli.App{
	Name:    "upkr",
	Usage:   "size-optimized compression for demos, intros and other tiny payloads",
	Version: version,
	Commands: []*cli.Command{
		packCommand,
		unpackCommand,
		infoCommand,
	},
}

func init() {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type fileResult struct {
	name    string
	inSize  int
	outSize int
}

// ratioCell renders out/in as a percentage, green when the data
// shrank and yellow when it did not.
func ratioCell(inSize, outSize int) string {
	if inSize == 0 {
		return "-"
	}

	cell := fmt.Sprintf("%.1f%%", 100*float64(outSize)/float64(inSize))
	if outSize < inSize {
		return shrunkColor("%s", cell)
	}

	return warnColor("%s", cell)
}

// printResults writes per-file size accounting to stderr, plus a
// summary table for multi-file batches. Diagnostics never mix with
// payload data on stdout.
func printResults(results []fileResult) {
	for _, res := range results {
		fmt.Fprintf(os.Stderr, "%s: %d -> %d bytes (%s)\n",
			res.name, res.inSize, res.outSize, ratioCell(res.inSize, res.outSize))
	}

	if len(results) < 2 {
		return
	}

	table := tablewriter.NewWriter(os.Stderr)

	table.SetHeader([]string{"File", "In", "Out", "Ratio"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, res := range results {
		table.Append([]string{
			res.name,
			fmt.Sprintf("%d", res.inSize),
			fmt.Sprintf("%d", res.outSize),
			ratioCell(res.inSize, res.outSize),
		})
	}

	table.Render()
}

// checkOutput refuses to clobber an existing file unless forced.
func checkOutput(path string, force bool) error {
	if force || path == "-" {
		return nil
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}

	return nil
}

// writeOutput stores data at path, or streams it to stdout for "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)

		return err
	}

	return os.WriteFile(path, data, 0o644)
}

func parallelJobs(jobs int) int {
	if jobs < 1 {
		return 1
	}

	return jobs
}
