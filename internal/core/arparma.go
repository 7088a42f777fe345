package core

import (
	"reflect"

	cerrors "github.com/reeflective/dialect/internal/errors"
)

// Arparma is the immutable result of analysing one DataCollection against a
// compiled Command (spec.md §3 "Arparma", GLOSSARY "Arparma").
//
// A failed analysis still produces an Arparma with Matched=false and
// ErrorInfo set, rather than a bare error, whenever the command's
// Meta.RaiseException is false (spec.md §7 "Propagation policy").
type Arparma struct {
	Source *Command
	Origin *DataCollection

	Matched     bool
	HeaderMatch HeadResult

	MainArgs  map[string]any
	OtherArgs map[string]any

	Options     map[string]OptionResult
	Subcommands map[string]SubcommandResult

	ErrorInfo error
	ErrorData []string
}

// NewArparma builds an empty, unmatched result bound to source and origin.
func NewArparma(source *Command, origin *DataCollection) *Arparma {
	return &Arparma{
		Source:      source,
		Origin:      origin,
		MainArgs:    map[string]any{},
		OtherArgs:   map[string]any{},
		Options:     map[string]OptionResult{},
		Subcommands: map[string]SubcommandResult{},
	}
}

// EncapsulateResult folds the per-phase results the analyser collected into
// the final Arparma shape, flattening every matched option's and
// subcommand's own args into OtherArgs both under "dest.arg" and under the
// bare arg name (grounded on arclet.alconna's Analyser.export/arparma.py's
// encapsulate_result, which does the same main/other split so that
// Query("arg") resolves without the caller knowing which node owned it).
// When two nodes share an arg name, which value the bare key holds is not
// defined.
func (a *Arparma) EncapsulateResult(head HeadResult, mainArgs map[string]any, options map[string]OptionResult, subs map[string]SubcommandResult) {
	a.Matched = true
	a.HeaderMatch = head
	a.MainArgs = mainArgs
	a.Options = options
	a.Subcommands = subs

	a.OtherArgs = map[string]any{}
	for dest, opt := range options {
		for k, v := range opt.Args {
			a.OtherArgs[dest+"."+k] = v
			a.OtherArgs[k] = v
		}
	}
	for dest, sub := range subs {
		for k, v := range sub.Args {
			a.OtherArgs[dest+"."+k] = v
			a.OtherArgs[k] = v
		}
	}
}

// Fail marks the result as a failed analysis, carrying the originating error
// for ErrorInfo/Query inspection.
func (a *Arparma) Fail(err error) *Arparma {
	a.Matched = false
	a.ErrorInfo = err
	return a
}

// Clone deep-copies a into a fresh *Arparma, so a cache hit can hand callers
// their own copy instead of a pointer into the cached entry - mutating the
// clone (or running Execute's behaviors against it again) never corrupts
// what's held for the next cache hit.
func (a *Arparma) Clone() *Arparma {
	if a == nil {
		return nil
	}
	return &Arparma{
		Source:      a.Source,
		Origin:      a.Origin,
		Matched:     a.Matched,
		HeaderMatch: cloneHeadResult(a.HeaderMatch),
		MainArgs:    cloneAnyMap(a.MainArgs),
		OtherArgs:   cloneAnyMap(a.OtherArgs),
		Options:     cloneOptions(a.Options),
		Subcommands: cloneSubcommands(a.Subcommands),
		ErrorInfo:   a.ErrorInfo,
		ErrorData:   append([]string(nil), a.ErrorData...),
	}
}

func cloneHeadResult(h HeadResult) HeadResult {
	h.Groups = cloneStringMap(h.Groups)
	return h
}

func cloneAnyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneOptions(m map[string]OptionResult) map[string]OptionResult {
	if m == nil {
		return nil
	}
	out := make(map[string]OptionResult, len(m))
	for k, v := range m {
		v.Args = cloneAnyMap(v.Args)
		out[k] = v
	}
	return out
}

func cloneSubcommands(m map[string]SubcommandResult) map[string]SubcommandResult {
	if m == nil {
		return nil
	}
	out := make(map[string]SubcommandResult, len(m))
	for k, v := range m {
		v.Args = cloneAnyMap(v.Args)
		v.Options = cloneOptions(v.Options)
		v.Subs = cloneSubcommands(v.Subs)
		out[k] = v
	}
	return out
}

// AllMatchedArgs merges MainArgs and OtherArgs into one map, MainArgs taking
// precedence on key collision (spec.md §4.7 "args" bare query).
func (a *Arparma) AllMatchedArgs() map[string]any {
	merged := make(map[string]any, len(a.MainArgs)+len(a.OtherArgs))
	for k, v := range a.OtherArgs {
		merged[k] = v
	}
	for k, v := range a.MainArgs {
		merged[k] = v
	}
	return merged
}

// Find reports whether path resolves to anything at all - the boolean
// shorthand over Query (spec.md §4.7 "Find").
func (a *Arparma) Find(path string) bool {
	_, err := a.Query(path)
	return err == nil
}

// QueryWith behaves like Query but additionally requires the resolved value
// be assignable to T's zero value type, returning ArgInvalid otherwise
// (spec.md §4.7 "QueryWith").
func QueryWith[T any](a *Arparma, path string) (T, error) {
	var zero T
	v, err := a.Query(path)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, cerrors.Newf(cerrors.ArgInvalid, "value at %q is %T, not %T", path, v, zero)
	}
	return typed, nil
}

// Call is sugar over Query that panics on failure - reserved for call sites
// that have already used Find/Matched to establish the path exists (spec.md
// §4.7 "Call").
func (a *Arparma) Call(path string) any {
	v, err := a.Query(path)
	if err != nil {
		panic(err)
	}
	return v
}

// Execute runs source's Behaviors over this result, in dependency order
// (spec.md §4.7 "execute", GLOSSARY "Behavior"). A BehaveCancelled error from
// one behavior skips only that behavior; OutBoundsBehave marks the whole
// result failed and stops; any other error aborts Execute immediately.
func (a *Arparma) Execute() error {
	var ordered []Behavior
	seen := map[Behavior]bool{}
	for _, b := range a.Source.Behaviors {
		for _, flat := range requirementHandler(b) {
			if !seen[flat] {
				seen[flat] = true
				ordered = append(ordered, flat)
			}
		}
	}

	for _, b := range ordered {
		err := b.Operate(a)
		if err == nil {
			continue
		}
		switch cerrors.KindOf(err) {
		case cerrors.BehaveCancelled:
			continue
		case cerrors.OutBoundsBehave:
			a.Matched = false
			a.ErrorInfo = err
			return nil
		default:
			return err
		}
	}
	return nil
}

// GetDuplication reflectively projects matched args onto a struct pointed to
// by out, matching fields by their `dialect:"name"` tag or, absent a tag, by
// case-insensitive field name (spec.md §4.7 "GetDuplication", grounded on
// arclet.alconna's Duplication dataclass projection).
func (a *Arparma) GetDuplication(out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return cerrors.New(cerrors.ArgInvalid, "GetDuplication requires a pointer to a struct")
	}
	elem := rv.Elem()
	all := a.AllMatchedArgs()

	typ := elem.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Tag.Get("dialect")
		if name == "" {
			name = field.Name
		}

		value, ok := all[name]
		if !ok {
			value, ok = findCaseInsensitive(all, name)
			if !ok {
				continue
			}
		}

		fv := elem.Field(i)
		assignInto(fv, value)
	}
	return nil
}

func findCaseInsensitive(m map[string]any, name string) (any, bool) {
	for k, v := range m {
		if equalFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

func assignInto(fv reflect.Value, value any) {
	if !fv.CanSet() || value == nil {
		return
	}
	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(fv.Type()) {
		fv.Set(rv)
		return
	}
	if rv.Type().ConvertibleTo(fv.Type()) {
		fv.Set(rv.Convert(fv.Type()))
	}
}
