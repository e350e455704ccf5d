package commands

import (
	"MoodKeeper/internal/config"
	"MoodKeeper/internal/journal"
	"context"
	"fmt"
	"strings"
)

type categoriesCmd struct{}

func (categoriesCmd) Name() string        { return "categories" }
func (categoriesCmd) Description() string { return "List categories and their options" }
func (categoriesCmd) Usage() string       { return "categories" }

func (categoriesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	schemas, err := newDeps(cfg).client.Schema(ctx)
	if err != nil || len(schemas) == 0 {
		log.Debugw("server schema unavailable, using built-in registry", "err", err)
		schemas = journal.Schemas()
	}
	for _, s := range schemas {
		fmt.Fprintf(Out, "%s (%s)\n", s.Category, s.Label)
		if len(s.Options) == 0 {
			fmt.Fprintln(Out, "  free text: --content is required")
		} else {
			fmt.Fprintf(Out, "  values: %s\n", optionList(s.Options))
		}
		if sub := s.SubAttribute; sub != nil {
			line := fmt.Sprintf("  --%s: %s", subFlag(sub.Field), optionList(sub.Options))
			if sub.Default != "" {
				line += fmt.Sprintf(" (default %s)", sub.Default)
			}
			fmt.Fprintln(Out, line)
		}
	}
	return nil
}

func optionList(opts []journal.Option) string {
	parts := make([]string, 0, len(opts))
	for _, o := range opts {
		if o.Label == o.ID {
			parts = append(parts, o.ID)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%q", o.ID, o.Label))
	}
	return strings.Join(parts, ", ")
}

// subFlag - имя флага команды add для поля под-атрибута.
func subFlag(field string) string {
	switch field {
	case journal.FieldPain:
		return "pain"
	case journal.FieldScreenTime:
		return "screen"
	case journal.FieldSeverity:
		return "severity"
	}
	return field
}

func init() { RegisterCmd(categoriesCmd{}) }
