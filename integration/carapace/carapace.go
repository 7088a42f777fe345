// Package carapace adapts dialect.Complete to github.com/rsteube/carapace
// actions: one carapace.Carapace per compiled command,
// PositionalAnyCompletion/FlagCompletion driven by a carapace.ActionCallback
// that re-runs dialect.Complete on every keystroke rather than precomputing
// a static candidate list.
package carapace

import (
	"strings"

	"github.com/rsteube/carapace"

	"github.com/reeflective/dialect"
)

// Generate builds a carapace.Carapace around root, wired to cmd: flag
// completion lists cmd's option aliases, and positional completion lists
// its subcommand names plus its main-args hints, both ranked live through
// dialect.Complete. Options already used on the line are not filtered out.
func Generate(root *carapace.Command, cmd *dialect.Command) *carapace.Carapace {
	comps := carapace.Gen(root)

	comps.PositionalAnyCompletion(carapace.ActionCallback(func(ctx carapace.Context) carapace.Action {
		hint := dialect.Complete(cmd, strings.Join(ctx.Args, " "), ctx.Value)
		values := append(append([]string{}, hint.Subcommands...), hint.ArgHints...)
		return carapace.ActionValues(values...).Tag("subcommands")
	}))

	comps.FlagCompletion(carapace.ActionMap{
		"": carapace.ActionCallback(func(ctx carapace.Context) carapace.Action {
			hint := dialect.Complete(cmd, strings.Join(ctx.Args, " "), ctx.Value)
			return carapace.ActionValues(hint.Options...).Tag("options")
		}),
	})

	return comps
}
