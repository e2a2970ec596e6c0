package command

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/bdu-steam/steam-cli/internal/cli/config"
	"github.com/bdu-steam/steam-cli/internal/cli/credential"
	"github.com/bdu-steam/steam-cli/internal/cli/output"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "CLI configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration (secrets masked)",
				Action: configShowAction,
			},
			{
				Name:  "init",
				Usage: "Write the effective configuration to the config file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "File to write (default: the loaded config file or ~/.config/steam-cli/config.yaml)",
					},
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "Overwrite an existing file",
					},
				},
				Action: configInitAction,
			},
			{
				Name:   "validate",
				Usage:  "Validate the effective configuration",
				Action: configValidateAction,
			},
		},
	}
}

func configShowAction(c *cli.Context) error {
	rt := GetRuntime(c)
	data, err := config.Marshal(config.Sanitize(rt.Config))
	if err != nil {
		return err
	}

	if rt.Printer.Format != output.FormatTable {
		var m map[string]any
		if err := yaml.Unmarshal(data, &m); err != nil {
			return fmt.Errorf("decode config: %w", err)
		}
		return rt.Printer.Print(m)
	}

	source := rt.Config.File
	if source == "" {
		source = "(defaults, no file)"
	}
	rt.Printer.Printf("# file: %s\n", source)
	rt.Printer.Printf("%s", data)
	return nil
}

func configInitAction(c *cli.Context) error {
	rt := GetRuntime(c)

	path := c.String("path")
	if path == "" {
		path = rt.Config.File
	}
	if path == "" {
		path = config.DefaultConfigPath()
	}

	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}

	// A token given on the command line is not persisted.
	out := *rt.Config
	if out.Auth.Token != "" {
		out.Auth.Token = ""
		if out.Auth.Source == credential.SourceStatic {
			out.Auth.Source = credential.SourceAuto
		}
	}

	if err := config.Save(&out, path); err != nil {
		return err
	}
	rt.Printer.Printf("✓ Đã ghi cấu hình vào %s\n", path)
	return nil
}

func configValidateAction(c *cli.Context) error {
	rt := GetRuntime(c)
	if err := config.Verify(rt.Config); err != nil {
		return fmt.Errorf("invalid config:\n%w", err)
	}

	source := rt.Config.File
	if source == "" {
		source = "defaults"
	}
	rt.Printer.Printf("✓ Cấu hình hợp lệ (%s)\n", source)
	return nil
}
