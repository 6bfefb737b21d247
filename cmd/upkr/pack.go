package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/sizecoder/upkr"
)

var packCommand = &cli.Command{
	Name:      "pack",
	Usage:     "Compress one or more files",
	ArgsUsage: "FILE...",
	Action:    packFiles,
	Flags: []cli.Flag{
		LevelFlag,
		OutputFlag,
		RawFlag,
		JobsFlag,
		ForceFlag,
		QuietFlag,
	},
}

func packFiles(ctx *cli.Context) error {
	files := ctx.Args().Slice()
	if len(files) == 0 {
		return fmt.Errorf("pack: no input files")
	}

	output := ctx.String(OutputFlag.Name)
	if output != "" && len(files) > 1 {
		return fmt.Errorf("pack: --output needs a single input file")
	}

	opts := &upkr.PackOptions{Level: ctx.Int(LevelFlag.Name)}
	raw := ctx.Bool(RawFlag.Name)
	force := ctx.Bool(ForceFlag.Name)

	if output == "-" && !force && isatty.IsTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("pack: refusing to write compressed data to a terminal, redirect or use --force")
	}

	results := make([]fileResult, len(files))

	var group errgroup.Group
	group.SetLimit(parallelJobs(ctx.Int(JobsFlag.Name)))

	for i, file := range files {
		i, file := i, file

		group.Go(func() error {
			outPath := output
			if outPath == "" {
				outPath = file + ".upk"
			}

			res, err := packFile(file, outPath, raw, force, opts)
			if err != nil {
				return fmt.Errorf("pack %s: %w", file, err)
			}

			results[i] = res

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	if !ctx.Bool(QuietFlag.Name) {
		printResults(results)
	}

	return nil
}

func packFile(inPath, outPath string, raw, force bool, opts *upkr.PackOptions) (fileResult, error) {
	if err := checkOutput(outPath, force); err != nil {
		return fileResult{}, err
	}

	data, err := os.ReadFile(inPath)
	if err != nil {
		return fileResult{}, err
	}

	var packed []byte
	if raw {
		packed, err = upkr.Pack(data, opts)
	} else {
		packed, err = upkr.PackFrame(data, opts)
	}
	if err != nil {
		return fileResult{}, err
	}

	if err := writeOutput(outPath, packed); err != nil {
		return fileResult{}, err
	}

	return fileResult{name: inPath, inSize: len(data), outSize: len(packed)}, nil
}
