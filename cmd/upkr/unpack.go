package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/sizecoder/upkr"
)

var unpackCommand = &cli.Command{
	Name:      "unpack",
	Usage:     "Decompress one or more files",
	ArgsUsage: "FILE...",
	Action:    unpackFiles,
	Flags: []cli.Flag{
		OutputFlag,
		RawFlag,
		SizeFlag,
		JobsFlag,
		ForceFlag,
		QuietFlag,
	},
}

func unpackFiles(ctx *cli.Context) error {
	files := ctx.Args().Slice()
	if len(files) == 0 {
		return fmt.Errorf("unpack: no input files")
	}

	output := ctx.String(OutputFlag.Name)
	if output != "" && len(files) > 1 {
		return fmt.Errorf("unpack: --output needs a single input file")
	}

	raw := ctx.Bool(RawFlag.Name)
	size := ctx.Int(SizeFlag.Name)
	force := ctx.Bool(ForceFlag.Name)

	results := make([]fileResult, len(files))

	var group errgroup.Group
	group.SetLimit(parallelJobs(ctx.Int(JobsFlag.Name)))

	for i, file := range files {
		i, file := i, file

		group.Go(func() error {
			outPath := output
			if outPath == "" {
				outPath = defaultUnpackedName(file)
			}

			res, err := unpackFile(file, outPath, raw, size, force)
			if err != nil {
				return fmt.Errorf("unpack %s: %w", file, err)
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

func defaultUnpackedName(inPath string) string {
	if out := strings.TrimSuffix(inPath, ".upk"); out != inPath {
		return out
	}

	return inPath + ".out"
}

func unpackFile(inPath, outPath string, raw bool, size int, force bool) (fileResult, error) {
	if err := checkOutput(outPath, force); err != nil {
		return fileResult{}, err
	}

	data, err := os.ReadFile(inPath)
	if err != nil {
		return fileResult{}, err
	}

	var unpacked []byte

	switch {
	case !raw:
		unpacked, err = upkr.UnpackFrame(data)
	case size > 0:
		dst := make([]byte, size)

		var n int
		n, err = upkr.UnpackInto(dst, data)
		unpacked = dst[:n]
	default:
		unpacked, err = upkr.Unpack(data)
	}
	if err != nil {
		return fileResult{}, err
	}

	if err := writeOutput(outPath, unpacked); err != nil {
		return fileResult{}, err
	}

	return fileResult{name: inPath, inSize: len(data), outSize: len(unpacked)}, nil
}
