package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/cubfile/pkg/cub"
)

type tocListing struct {
	File        string         `json:"file"`
	ByteSwapped bool           `json:"byte_swapped"`
	Blocks      []listingBlock `json:"blocks"`
}

type listingBlock struct {
	Index    int    `json:"index"`
	Kind     uint32 `json:"kind"`
	KindName string `json:"kind_name"`
	Offset   uint32 `json:"offset"`
	Length   uint32 `json:"length"`
}

func listCmd() *cli.Command {
	var asJSON bool

	return &cli.Command{
		Name:      "list",
		Usage:     "Print the table of contents of a .cub file",
		ArgsUsage: "<file.cub>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "emit the table of contents as JSON",
				Destination: &asJSON,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one .cub file argument")
			}
			path := cmd.Args().First()
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			if !asJSON {
				cub.List(f, os.Stdout)
				return nil
			}

			swap, _, err := cub.Check(f)
			if err != nil {
				return err
			}
			toc, err := cub.TOC(f)
			if err != nil {
				return err
			}
			listing := tocListing{
				File:        filepath.Base(path),
				ByteSwapped: swap,
				Blocks:      make([]listingBlock, len(toc)),
			}
			for i, d := range toc {
				listing.Blocks[i] = listingBlock{
					Index:    i,
					Kind:     uint32(d.Kind),
					KindName: d.Kind.String(),
					Offset:   d.Offset,
					Length:   d.Length,
				}
			}
			out, err := json.MarshalIndent(listing, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}
