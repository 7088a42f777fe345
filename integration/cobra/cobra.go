// Package cobra renders a compiled dialect.Command as a *cobra.Command for
// help/usage text and shell wiring only: RunE always delegates back to
// dialect.Parse, never re-implements matching. Kept thin, the way a CLI
// front-end collaborator should stay out of the matching business entirely.
package cobra

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/reeflective/dialect"
)

// Generate renders cmd as a root *cobra.Command: Use/Short/Long/Example from
// cmd.Meta, one pflag.Flag per Option and one nested *cobra.Command per
// Subcommand (for --help listing only), and a RunE that puts cmd's first
// header in front of the positional args cobra passes it, joins them into a
// single string and feeds it to dialect.Parse.
func Generate(cmd *dialect.Command) (*cobra.Command, error) {
	view, err := dialect.VisitCommand(cmd)
	if err != nil {
		return nil, err
	}

	root := &cobra.Command{
		Use:     cmd.CommandName,
		Short:   cmd.Meta.Description,
		Long:    cmd.Meta.Usage,
		Example: cmd.Meta.Example,
	}
	root.RunE = func(_ *cobra.Command, args []string) error {
		line := append([]string{cmd.CommandName}, args...)
		if len(cmd.Headers) > 0 {
			line[0] = cmd.Headers[0].Prefix + cmd.Headers[0].Name
		}
		result := dialect.Parse(cmd, strings.Join(line, " "))
		if !result.Matched {
			return result.ErrorInfo
		}
		return nil
	}

	addChildren(root, view.SubNodes)

	return root, nil
}

// addChildren renders views onto parent: a subcommand becomes a nested,
// non-runnable cobra.Command purely so `--help` lists it (actual matching
// always goes through the owning dialect.Command's analyser via the root's
// RunE), while an option becomes a real pflag.Flag on parent's own flag set
// instead of a fake subcommand entry.
func addChildren(parent *cobra.Command, views []*dialect.NodeView) {
	for _, view := range views {
		if view.Type == "option" {
			registerFlag(parent.Flags(), view)
			continue
		}

		child := &cobra.Command{
			Use:     usageLine(view),
			Short:   view.Description,
			Aliases: view.Aliases,
		}
		addChildren(child, view.SubNodes)
		parent.AddCommand(child)
	}
}

// registerFlag declares view on fs as a genuine pflag.Flag, the way the
// teacher's own command.go visits a pflag.FlagSet to render flag help: a
// parameter-less option becomes a bool flag (StoreTrue/StoreFalse style),
// one with parameters becomes a string flag with its argument labels folded
// into the usage string.
func registerFlag(fs *pflag.FlagSet, view *dialect.NodeView) {
	name := strings.TrimLeft(view.Name, "-")
	if name == "" {
		return
	}
	shorthand := shorthandFrom(view.Aliases)
	usage := view.Description

	if len(view.Parameters) > 0 {
		usage = strings.TrimSpace(usage + " " + strings.Join(view.Parameters, " "))
		fs.StringP(name, shorthand, "", usage)
		return
	}
	fs.BoolP(name, shorthand, false, usage)
}

// shorthandFrom picks the first single-rune alias (e.g. "-f") to use as a
// pflag shorthand, or "" if none of aliases qualifies.
func shorthandFrom(aliases []string) string {
	for _, a := range aliases {
		trimmed := strings.TrimLeft(a, "-")
		if len(trimmed) == 1 {
			return trimmed
		}
	}
	return ""
}

func usageLine(view *dialect.NodeView) string {
	if len(view.Parameters) == 0 {
		return view.Name
	}
	return view.Name + " " + strings.Join(view.Parameters, " ")
}
