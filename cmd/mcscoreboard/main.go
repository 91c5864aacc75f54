// mcscoreboard - inspect and export Minecraft scoreboard.dat files
//
// Usage:
//
//	mcscoreboard dump -i scoreboard.dat -o board.json
//	mcscoreboard dump -i scoreboard.dat --format yaml -o -
//	mcscoreboard scores -i scoreboard.dat stone_mined
//
// The dump command writes the whole board (teams, objectives, scores,
// display slots) as JSON or YAML. The scores command prints a ranked
// leaderboard for one objective. Player whitelist/blacklist files use
// the server's whitelist.json format.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/svioletg/mcscoreboard/scoreboard"
)

const (
	inputFlag       = "input"
	outputFlag      = "output"
	formatFlag      = "format"
	whitelistFlag   = "whitelist"
	blacklistFlag   = "blacklist"
	dotNamesFlag    = "include-dot-names"
	ascendingFlag   = "ascending"
	stdoutCLIName   = "-"
	semanticVersion = "v0.2.0"
)

func loadDocument(path string) (*scoreboard.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := scoreboard.Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func buildFilter(cCtx *cli.Context) (*scoreboard.Filter, error) {
	var allow, deny []string
	if path := cCtx.String(whitelistFlag); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if allow, err = scoreboard.ParseWhitelist(data); err != nil {
			return nil, err
		}
	}
	if path := cCtx.String(blacklistFlag); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if deny, err = scoreboard.ParseWhitelist(data); err != nil {
			return nil, err
		}
	}
	if allow == nil && deny == nil {
		return nil, nil
	}
	return scoreboard.NewFilter(allow, deny, cCtx.Bool(dotNamesFlag))
}

func dumpAction(cCtx *cli.Context) error {
	doc, err := loadDocument(cCtx.String(inputFlag))
	if err != nil {
		return err
	}
	filter, err := buildFilter(cCtx)
	if err != nil {
		return err
	}
	dump := doc.Dump(filter)

	var out io.WriteCloser = os.Stdout
	if path := cCtx.String(outputFlag); path != stdoutCLIName {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch format := cCtx.String(formatFlag); format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(dump)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(dump); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}

func scoresAction(cCtx *cli.Context) error {
	objective := cCtx.Args().First()
	if objective == "" {
		return fmt.Errorf("missing objective name argument")
	}
	doc, err := loadDocument(cCtx.String(inputFlag))
	if err != nil {
		return err
	}
	if doc.Objective(objective) == nil {
		return fmt.Errorf("no objective named %q", objective)
	}
	filter, err := buildFilter(cCtx)
	if err != nil {
		return err
	}

	rank := 0
	for _, s := range doc.Leaderboard(objective, cCtx.Bool(ascendingFlag)) {
		if !filter.Admit(s.Player) {
			continue
		}
		rank++
		fmt.Printf("%4d  %-24s %d\n", rank, s.Player, s.Value)
	}
	return nil
}

func main() {
	inputRequired := &cli.StringFlag{
		Name:     inputFlag,
		Aliases:  []string{"i"},
		Usage:    "Path to the scoreboard.dat file",
		Required: true,
	}
	filterFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  whitelistFlag,
			Usage: "Only include players listed in this whitelist.json",
		},
		&cli.StringFlag{
			Name:  blacklistFlag,
			Usage: "Exclude players listed in this whitelist.json-format file",
		},
		&cli.BoolFlag{
			Name:  dotNamesFlag,
			Usage: "Admit dot-prefixed (Bedrock/Geyser) names past the whitelist",
			Value: true,
		},
	}

	app := &cli.App{
		Name:    "mcscoreboard",
		Usage:   "Inspect and export Minecraft scoreboard.dat files",
		Version: semanticVersion,
		Commands: []*cli.Command{
			{
				Name:  "dump",
				Usage: "Export the whole scoreboard as JSON or YAML",
				Flags: append([]cli.Flag{
					inputRequired,
					&cli.StringFlag{
						Name:    outputFlag,
						Aliases: []string{"o"},
						Usage:   "Output path, or \"-\" for stdout",
						Value:   stdoutCLIName,
					},
					&cli.StringFlag{
						Name:  formatFlag,
						Usage: "Output format: json or yaml",
						Value: "json",
					},
				}, filterFlags...),
				Action: dumpAction,
			},
			{
				Name:      "scores",
				Usage:     "Print a ranked leaderboard for one objective",
				ArgsUsage: "<objective>",
				Flags: append([]cli.Flag{
					inputRequired,
					&cli.BoolFlag{
						Name:  ascendingFlag,
						Usage: "Rank lowest to highest instead",
					},
				}, filterFlags...),
				Action: scoresAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
