package core

import cerrors "github.com/reeflective/dialect/internal/errors"

// NodeView is a structural projection of one node in a compiled command's
// tree, used to drive help/usage rendering without re-walking the raw
// Command/Option/Subcommand graph (spec.md SPEC_FULL §3 "AlconnaNodeVisitor").
type NodeView struct {
	Type        string // "command", "option", "subcommand"
	Name        string
	Aliases     []string
	Description string
	Parameters  []string
	Separators  []string
	SubNodes    []*NodeView
}

// Visit walks cmd's tree and returns its structural view, erroring with
// AmbiguousQuery if two options, or two subcommands, share a name at the same
// scope (the same condition core.NewCommand already rejects at
// construction, checked again here defensively for commands built by
// hand without going through NewCommand).
func Visit(cmd *Command) (*NodeView, error) {
	children, err := visitChildren(cmd.Options)
	if err != nil {
		return nil, err
	}
	return &NodeView{
		Type:        "command",
		Name:        cmd.CommandName,
		Description: cmd.Meta.Description,
		Parameters:  argNames(cmd.MainArgs),
		SubNodes:    children,
	}, nil
}

func visitChildren(nodes []Node) ([]*NodeView, error) {
	seen := map[string]bool{}
	views := make([]*NodeView, 0, len(nodes))

	for _, n := range nodes {
		switch child := n.(type) {
		case *Option:
			key := "option:" + child.Name
			if seen[key] {
				return nil, cerrors.Newf(cerrors.AmbiguousQuery, "duplicate option %q", child.Name)
			}
			seen[key] = true
			views = append(views, &NodeView{
				Type:        "option",
				Name:        child.Name,
				Aliases:     child.Aliases,
				Description: child.HelpText,
				Parameters:  argNames(child.Args),
				Separators:  child.Separators,
			})
		case *Subcommand:
			key := "subcommand:" + child.Name
			if seen[key] {
				return nil, cerrors.Newf(cerrors.AmbiguousQuery, "duplicate subcommand %q", child.Name)
			}
			seen[key] = true
			sub, err := visitChildren(child.Options)
			if err != nil {
				return nil, err
			}
			views = append(views, &NodeView{
				Type:        "subcommand",
				Name:        child.Name,
				Aliases:     child.Aliases,
				Description: child.HelpText,
				Parameters:  argNames(child.Args),
				Separators:  child.Separators,
				SubNodes:    sub,
			})
		}
	}
	return views, nil
}

func argNames(args *Args) []string {
	if args == nil {
		return nil
	}
	names := make([]string, 0, args.Len())
	for _, s := range args.Slots() {
		if s.IsHiddenFiller() {
			continue
		}
		names = append(names, s.Label())
	}
	return names
}
