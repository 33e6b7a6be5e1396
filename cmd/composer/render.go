package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/grcflow/notifcomposer/internal/service"
	"github.com/grcflow/notifcomposer/pkg/blocks"
	"github.com/grcflow/notifcomposer/pkg/render"
	"github.com/grcflow/notifcomposer/pkg/variables"
)

const (
	formatTree     = "tree"
	formatHTML     = "html"
	formatText     = "text"
	formatMJML     = "mjml"
	formatCompiled = "compiled"
)

var renderFormats = []string{formatTree, formatHTML, formatText, formatMJML, formatCompiled}

type renderOptions struct {
	channel     string
	theme       string
	format      string
	entityType  string
	contextFile string
}

func newRenderCmd(c *cliContext) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <file|->",
		Short: "Render a block document for one channel and theme",
		Long: `Render a block document for one channel and theme.

The input is either a JSON array of blocks or a notification rule object
carrying an "emailBlocks" array. Variables resolve against the sample data
of --entity unless --context points to a JSON file of values.

Formats: tree (JSON render tree), html, text, mjml, compiled (MJML compiled
to HTML, email channel only).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, c, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.channel, "channel", "c", string(render.ChannelEmail), "channel to render (email, in-app)")
	cmd.Flags().StringVarP(&opts.theme, "theme", "t", string(render.ThemeLight), "theme to render (light, dark)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatTree, "output format ("+strings.Join(renderFormats, ", ")+")")
	cmd.Flags().StringVar(&opts.entityType, "entity", service.DefaultSampleEntity, "entity type whose sample data fills variables")
	cmd.Flags().StringVar(&opts.contextFile, "context", "", "JSON file with the variable values to use instead of sample data")
	return cmd
}

func runRender(cmd *cobra.Command, c *cliContext, opts *renderOptions, input string) error {
	channel := render.Channel(opts.channel)
	if !channel.IsValid() {
		return fmt.Errorf("unsupported channel %q", opts.channel)
	}
	theme := render.Theme(opts.theme)
	if !theme.IsValid() {
		return fmt.Errorf("unsupported theme %q", opts.theme)
	}

	data, err := readInput(cmd, input)
	if err != nil {
		return err
	}
	doc, err := decodeDocument(data)
	if err != nil {
		return err
	}

	values, err := loadContext(cmd, opts)
	if err != nil {
		return err
	}

	tree := c.renderer().Render(doc, variables.NewResolver(values), channel, theme)
	c.logger.WithField("blocks", doc.Len()).
		WithField("channel", channel).
		WithField("theme", theme).
		Debug("Rendered document")

	out := cmd.OutOrStdout()
	switch opts.format {
	case formatTree:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(tree)
	case formatHTML:
		_, err = fmt.Fprintln(out, tree.HTML())
		return err
	case formatText:
		text, err := render.PlainText(tree.HTML())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, text)
		return err
	case formatMJML:
		mjml, err := render.ToMJML(tree)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, mjml)
		return err
	case formatCompiled:
		result, err := render.CompileEmail(cmd.Context(), tree)
		if err != nil {
			return err
		}
		if !result.Success {
			return fmt.Errorf("mjml compilation failed: %s", result.Error.Message)
		}
		_, err = fmt.Fprintln(out, *result.HTML)
		return err
	default:
		return fmt.Errorf("unsupported format %q, expected one of %s", opts.format, strings.Join(renderFormats, ", "))
	}
}

// decodeDocument accepts a bare block array or an object with emailBlocks
func decodeDocument(data []byte) (blocks.Document, error) {
	if !gjson.ValidBytes(data) {
		return blocks.Document{}, fmt.Errorf("input is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if root.IsObject() {
		field := root.Get("emailBlocks")
		if !field.Exists() {
			return blocks.Document{}, fmt.Errorf(`input object has no "emailBlocks" field`)
		}
		return blocks.Decode([]byte(field.Raw))
	}
	return blocks.Decode(data)
}

func loadContext(cmd *cobra.Command, opts *renderOptions) (variables.Context, error) {
	if opts.contextFile == "" {
		return service.NewStaticPreviewData().SampleContext(cmd.Context(), opts.entityType)
	}

	data, err := readInput(cmd, opts.contextFile)
	if err != nil {
		return variables.Context{}, err
	}
	var values variables.Context
	if err := json.Unmarshal(data, &values); err != nil {
		return variables.Context{}, fmt.Errorf("failed to parse context file: %w", err)
	}
	return values, nil
}
