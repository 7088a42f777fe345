package core

import (
	"strings"

	cerrors "github.com/reeflective/dialect/internal/errors"
)

// Query resolves a dotted path against the result, following the exact
// fallback chain of arclet.alconna's Arparma.__require__ (spec.md §4.7),
// with one deliberate strengthening: a bare name that is registered as both
// an option and a subcommand is an ambiguity error rather than a silent
// "options wins" (spec.md §8 scenario 6 "Ambiguous query" is explicit about
// this; the Python source's single-part branch is not, so SPEC_FULL follows
// the stricter, explicitly-specified behavior).
func (a *Arparma) Query(path string) (any, error) {
	parts := strings.Split(path, ".")
	return resolveQuery(a, parts)
}

// QueryOr is Query with a default value substituted on any failure
// (not-found or ambiguous) - the common case at call sites.
func (a *Arparma) QueryOr(path string, def any) any {
	v, err := a.Query(path)
	if err != nil {
		return def
	}
	return v
}

func resolveQuery(a *Arparma, parts []string) (any, error) {
	if len(parts) == 1 {
		return resolveBare(a, parts[0])
	}

	prefix, rest := parts[0], parts[1:]

	if prefix == "$main" {
		prefix = "main_args"
	} else if prefix == "$other" {
		prefix = "other_args"
	}

	switch prefix {
	case "main_args":
		return lookupMap(a.MainArgs, rest[0])
	case "other_args":
		return lookupMap(a.OtherArgs, rest[0])
	case "options":
		return resolveOption(a.Options, rest)
	case "subcommands":
		return resolveSubcommand(a.Subcommands, rest)
	}

	if _, ok := a.Options[prefix]; ok {
		return resolveOption(a.Options, parts)
	}
	if _, ok := a.Subcommands[prefix]; ok {
		return resolveSubcommand(a.Subcommands, parts)
	}

	return nil, cerrors.Newf(cerrors.Unknown, "no such path %q", strings.Join(parts, "."))
}

func resolveBare(a *Arparma, part string) (any, error) {
	if v, ok := a.MainArgs[part]; ok {
		return v, nil
	}
	if v, ok := a.OtherArgs[part]; ok {
		return v, nil
	}

	_, inOpts := a.Options[part]
	_, inSubs := a.Subcommands[part]
	if inOpts && inSubs {
		return nil, cerrors.Newf(cerrors.AmbiguousQuery, "%q is both an option and a subcommand", part)
	}
	if inOpts {
		return a.Options[part], nil
	}
	if inSubs {
		return a.Subcommands[part], nil
	}

	switch part {
	case "options":
		return a.Options, nil
	case "subcommands":
		return a.Subcommands, nil
	case "main_args":
		return a.MainArgs, nil
	case "other_args":
		return a.OtherArgs, nil
	case "args":
		return a.AllMatchedArgs(), nil
	}

	return nil, cerrors.Newf(cerrors.Unknown, "no such path %q", part)
}

// resolveOption mirrors __require__'s _handle_opt: parts[0] may be "options"
// itself (meaning "consume the next part as the option name") or already
// the option name (when dispatched via the bare-name shortcut).
func resolveOption(options map[string]OptionResult, parts []string) (any, error) {
	pf := parts[0]
	rest := parts[1:]
	if pf == "options" {
		if len(rest) == 0 {
			return options, nil
		}
		pf, rest = rest[0], rest[1:]
	}

	if len(rest) == 0 {
		v, ok := options[pf]
		if !ok {
			return nil, cerrors.Newf(cerrors.Unknown, "no such option %q", pf)
		}
		return v, nil
	}

	opt, ok := options[pf]
	if !ok {
		return nil, cerrors.Newf(cerrors.Unknown, "no such option %q", pf)
	}

	end, tail := rest[0], rest[1:]
	switch end {
	case "value":
		return opt.Value, nil
	case "args":
		if len(tail) > 0 {
			return lookupMap(opt.Args, tail[0])
		}
		return opt.Args, nil
	default:
		return lookupMap(opt.Args, end)
	}
}

func resolveSubcommand(subs map[string]SubcommandResult, parts []string) (any, error) {
	pf := parts[0]
	rest := parts[1:]
	if pf == "subcommands" {
		if len(rest) == 0 {
			return subs, nil
		}
		pf, rest = rest[0], rest[1:]
	}

	if len(rest) == 0 {
		v, ok := subs[pf]
		if !ok {
			return nil, cerrors.Newf(cerrors.Unknown, "no such subcommand %q", pf)
		}
		return v, nil
	}

	sub, ok := subs[pf]
	if !ok {
		return nil, cerrors.Newf(cerrors.Unknown, "no such subcommand %q", pf)
	}

	end, tail := rest[0], rest[1:]
	switch end {
	case "value":
		return sub.Value, nil
	case "args":
		if len(tail) > 0 {
			return lookupMap(sub.Args, tail[0])
		}
		return sub.Args, nil
	case "options":
		if _, optExists := sub.Options["options"]; (optExists && len(tail) == 0) {
			return nil, cerrors.Newf(cerrors.AmbiguousQuery, "%s.options is ambiguous", pf)
		}
		if len(tail) == 0 {
			return sub.Options, nil
		}
		return resolveOption(sub.Options, tail)
	default:
		if _, isOpt := sub.Options[end]; isOpt {
			return resolveOption(sub.Options, rest)
		}
		return lookupMap(sub.Args, end)
	}
}

func lookupMap(m map[string]any, key string) (any, error) {
	v, ok := m[key]
	if !ok {
		return nil, cerrors.Newf(cerrors.Unknown, "no such arg %q", key)
	}
	return v, nil
}
