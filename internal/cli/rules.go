package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/relint/internal/logging"
	"github.com/yaklabco/relint/pkg/rewrite"
)

const formatJSON = "json"

// ruleInfo represents a rewrite rule in JSON output.
type ruleInfo struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

func newRulesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rewrite rule table",
		Long: `List the ordered rewrite rule table with rule IDs and descriptions.

Rules are applied in the listed order on every engine pass. Any rule can
be excluded from a run with the fix command's --disable flag or the
disable_rules configuration key.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			rules := rewrite.DefaultRules()

			if format == formatJSON {
				return outputRulesJSON(rules)
			}

			logger := logging.NewInteractive()
			logger.Info("rewrite rules, in application order")

			for _, rule := range rules {
				logger.Info(rule.ID(),
					logging.FieldKind, ruleKind(rule),
					logging.FieldDescription, rule.Description(),
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

// ruleKind names the mechanism a rule uses to rewrite content.
func ruleKind(rule rewrite.Rule) string {
	switch rule.(type) {
	case *rewrite.LineRule:
		return "line"
	case *rewrite.PatternRule:
		return "pattern"
	default:
		return "custom"
	}
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(rules []rewrite.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Kind:        ruleKind(rule),
			Description: rule.Description(),
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
