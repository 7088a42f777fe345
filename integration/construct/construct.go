// Package construct provides FromCallable, reflection-based sugar that
// derives an Args list from a Go function's signature instead of a
// declarative builder call or a string grammar. This is not the canonical
// construction path - it's a convenience layer over reflect.Type, existing
// alongside the declarative builder rather than replacing it.
package construct

import (
	"fmt"
	"reflect"

	"github.com/reeflective/dialect"
)

// FromCallable inspects fn's parameter list and builds one Arg slot per
// parameter (positional, or Variadic for a variadic final one), using
// names (if given, one per parameter; missing entries fall back to
// "arg<N>") and each parameter's Kind to select a built-in Pattern. fn must be a func value; FromCallable panics otherwise,
// mirroring reflect's own behavior on a non-func Type.
func FromCallable(fn any, names ...string) (*dialect.Args, error) {
	typ := reflect.TypeOf(fn)
	if typ == nil || typ.Kind() != reflect.Func {
		panic("construct.FromCallable: not a function")
	}

	slots := make([]*dialect.Arg, 0, typ.NumIn())
	for i := 0; i < typ.NumIn(); i++ {
		name := argName(names, i)
		param := typ.In(i)

		variadic := typ.IsVariadic() && i == typ.NumIn()-1
		if variadic {
			param = param.Elem()
		}

		pattern, err := patternFor(param)
		if err != nil {
			return nil, fmt.Errorf("construct.FromCallable: parameter %d (%s): %w", i, name, err)
		}

		switch {
		case variadic:
			slots = append(slots, dialect.Variadic(name, pattern))
		default:
			slots = append(slots, dialect.Positional(name, pattern))
		}
	}

	return dialect.NewArgs(nil, slots...)
}

func argName(names []string, i int) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	return fmt.Sprintf("arg%d", i)
}

// patternFor maps a parameter's reflect.Kind to one of the package's
// built-in Patterns. Only the kinds a command-line token can unambiguously
// represent are supported; anything else is an error rather than a silent
// AnyOne fallback.
func patternFor(t reflect.Type) (*dialect.Pattern, error) {
	switch t.Kind() {
	case reflect.String:
		return dialect.Str, nil
	case reflect.Bool:
		return dialect.Bool, nil
	case reflect.Float32, reflect.Float64:
		return dialect.Float, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return dialect.Int, nil
	default:
		return nil, fmt.Errorf("unsupported parameter kind %s", t.Kind())
	}
}
