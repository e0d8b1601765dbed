package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/cubfile/pkg/cub"
)

func extractCmd() *cli.Command {
	var (
		index   int64
		kindStr string
		output  string
	)

	return &cli.Command{
		Name:      "extract",
		Usage:     "Extract one block payload to a file or stdout",
		ArgsUsage: "<file.cub>",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:        "index",
				Aliases:     []string{"i"},
				Usage:       "TOC position of the block to extract",
				Value:       -1,
				Destination: &index,
			},
			&cli.StringFlag{
				Name:        "kind",
				Aliases:     []string{"k"},
				Usage:       "block kind to extract (acis, mesh, facet, free-mesh, granite, assembly, or a numeric code)",
				Destination: &kindStr,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "output path (defaults to stdout)",
				Destination: &output,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one .cub file argument")
			}
			if (index >= 0) == (kindStr != "") {
				return fmt.Errorf("exactly one of --index or --kind is required")
			}

			f, err := os.Open(cmd.Args().First())
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			var sink io.Writer = os.Stdout
			var out *os.File
			if output != "" {
				out, err = os.Create(output)
				if err != nil {
					return err
				}
				sink = out
			}

			if index >= 0 {
				err = cub.ExtractByIndex(f, int(index), sink)
			} else {
				var kind cub.BlockType
				kind, err = resolveKind(kindStr)
				if err == nil {
					err = cub.ExtractByType(f, kind, sink)
				}
			}

			if out != nil {
				cerr := out.Close()
				if err == nil {
					err = cerr
				}
				// A partially written output is never valid.
				if err != nil {
					_ = os.Remove(output)
				}
			}
			return err
		},
	}
}

func resolveKind(raw string) (cub.BlockType, error) {
	if kind, ok := cub.ParseBlockType(raw); ok {
		return kind, nil
	}
	if n, err := strconv.ParseUint(raw, 10, 32); err == nil {
		return cub.BlockType(n), nil
	}
	return 0, fmt.Errorf("unknown block kind %q", raw)
}
