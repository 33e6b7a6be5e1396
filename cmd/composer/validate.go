package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grcflow/notifcomposer/internal/domain"
	"github.com/grcflow/notifcomposer/pkg/blocks"
	"github.com/grcflow/notifcomposer/pkg/variables"
)

func newValidateCmd(c *cliContext) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate <file|->",
		Short: "Check a notification rule before saving it",
		Long: `Check a notification rule the way notificationRules.create does.

Blocks of an unknown type and variable blocks pointing outside the catalog
are reported as warnings; with --strict they fail the check.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			var req domain.CreateNotificationRuleRequest
			if err := json.Unmarshal(data, &req); err != nil {
				return domain.NewValidationError(fmt.Sprintf("malformed rule: %v", err))
			}

			rule, err := req.Validate()
			if err != nil {
				return domain.NewValidationError(err.Error())
			}

			warnings := documentWarnings(rule.EmailBlocks)
			out := cmd.OutOrStdout()
			for _, w := range warnings {
				fmt.Fprintf(out, "warning: %s\n", w)
			}
			if strict && len(warnings) > 0 {
				return domain.NewValidationError(strings.Join(warnings, "; "))
			}

			c.logger.WithField("rule", rule.Name).WithField("warnings", len(warnings)).Debug("Rule validated")
			fmt.Fprintf(out, "ok: %q delivers %d block(s) to %d recipient(s)\n", rule.Name, rule.EmailBlocks.Len(), len(rule.Recipients))
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")
	return cmd
}

// documentWarnings lists the blocks that will render as nothing or as a fallback
func documentWarnings(doc blocks.Document) []string {
	var warnings []string
	for _, b := range doc.Blocks() {
		switch {
		case !b.Type.IsValid():
			warnings = append(warnings, fmt.Sprintf("block %s has unknown type %q and will not render", b.ID, b.Type))
		case b.Type == blocks.BlockTypeVariable && !variables.IsKnown(b.Content):
			warnings = append(warnings, fmt.Sprintf("block %s references unknown variable %q", b.ID, b.Content))
		}
	}
	return warnings
}
