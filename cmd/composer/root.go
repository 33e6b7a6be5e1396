package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/grcflow/notifcomposer/config"
	"github.com/grcflow/notifcomposer/pkg/logger"
	"github.com/grcflow/notifcomposer/pkg/render"
)

// cliContext is shared by every subcommand once the root pre-run has loaded
// configuration.
type cliContext struct {
	envFile   string
	logLevel  string
	logFormat string

	cfg    *config.Config
	logger logger.Logger
}

func (c *cliContext) load(cmd *cobra.Command) error {
	cfg, err := config.LoadWithOptions(config.LoadOptions{EnvFile: c.envFile})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	c.cfg = cfg

	level := c.logLevel
	if level == "" {
		level = cfg.LogLevel
	}
	// logs go to stderr so rendered output stays pipeable
	switch c.logFormat {
	case "json":
		c.logger = logger.NewLoggerWithOutput(cmd.ErrOrStderr(), level)
	case "", "console":
		c.logger = logger.NewConsoleLogger(cmd.ErrOrStderr(), level, false)
	default:
		return fmt.Errorf("unsupported log format %q, expected console or json", c.logFormat)
	}
	return nil
}

func (c *cliContext) renderer() *render.Renderer {
	p := c.cfg.Preview
	return render.NewRenderer(render.Options{
		BrandName:     p.BrandName,
		LogoText:      p.LogoText,
		FooterText:    p.FooterText,
		TruncateAt:    p.TruncateAt,
		LiquidMaxSize: p.LiquidMaxSize,
	}, c.logger)
}

func newRootCmd() *cobra.Command {
	c := &cliContext{}

	root := &cobra.Command{
		Use:   "composer",
		Short: "Render and check notification block documents offline",
		Long: `composer renders notification block documents the same way the
preview API does, without a database.

Examples:
  composer render rule-blocks.json --channel in-app --theme dark
  composer render rule-blocks.json --format mjml > email.mjml
  composer validate rule.json
  composer edit rule-blocks.json --script steps.txt -o rule-blocks.json
  composer catalog`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return c.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&c.envFile, "env-file", "", "environment file to load configuration from")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&c.logFormat, "log-format", "console", "log format on stderr (console, json)")

	root.AddCommand(newRenderCmd(c))
	root.AddCommand(newCatalogCmd(c))
	root.AddCommand(newValidateCmd(c))
	root.AddCommand(newEditCmd(c))
	return root
}

// readInput reads the named file, or stdin when name is "-"
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}
