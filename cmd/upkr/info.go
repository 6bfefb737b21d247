package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/sizecoder/upkr"
)

var infoCommand = &cli.Command{
	Name:      "info",
	Usage:     "Show frame headers without decoding",
	ArgsUsage: "FILE...",
	Action:    infoFiles,
}

func infoFiles(ctx *cli.Context) error {
	files := ctx.Args().Slice()
	if len(files) == 0 {
		return fmt.Errorf("info: no input files")
	}

	table := tablewriter.NewWriter(os.Stdout)

	table.SetHeader([]string{"File", "Unpacked", "Packed", "Ratio", "CRC-32"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("info %s: %w", file, err)
		}

		hdr, err := upkr.ReadFrameHeader(data)
		if err != nil {
			return fmt.Errorf("info %s: %w", file, err)
		}

		table.Append([]string{
			file,
			fmt.Sprintf("%d", hdr.UnpackedLen),
			fmt.Sprintf("%d", len(data)),
			ratioCell(int(hdr.UnpackedLen), len(data)),
			fmt.Sprintf("%08x", hdr.Checksum),
		})
	}

	table.Render()

	return nil
}
