package analyser

import (
	"strconv"
	"strings"

	"github.com/reeflective/dialect/internal/core"
	cerrors "github.com/reeflective/dialect/internal/errors"
)

// analyseArgs fills every slot of args from d, in declaration order,
// stopping early at a token that belongs to the surrounding node's alias
// table unless the current slot is marked Greedy (spec.md §4.3 "InMainArgs",
// §9 open question on AllParam-inside-subcommand resolved via FlagGreedy).
func analyseArgs(args *core.Args, d *core.DataCollection, boundary map[string]bool) (map[string]any, error) {
	values := map[string]any{}
	if args == nil || args.IsEmpty() {
		return values, nil
	}

	kwOnlyStart := args.KWOnlyStartIndex()
	slots := args.Slots()

	// Keyword-only slots are filled first, from a run of leading "name=value"
	// tokens (in any order among themselves) before the positional tokens.
	if err := fillKWOnly(slots[kwOnlyStart:], d, boundary, values); err != nil {
		return values, err
	}

	for i := 0; i < kwOnlyStart; i++ {
		slot := slots[i]
		if slot.Flags.Has(core.FlagMultiple) {
			if err := fillVariadic(slot, d, boundary, values); err != nil {
				return values, err
			}
			continue
		}
		if err := fillOne(slot, d, boundary, values); err != nil {
			return values, err
		}
	}

	return values, nil
}

func atBoundary(d *core.DataCollection, boundary map[string]bool) bool {
	e, ok := d.Peek()
	if !ok || !e.IsText() {
		return false
	}
	return boundary[e.Text]
}

func fillOne(slot *core.Arg, d *core.DataCollection, boundary map[string]bool, values map[string]any) error {
	if d.IsExhausted() || (atBoundary(d, boundary) && !slot.Flags.Has(core.FlagGreedy)) {
		return defaultOrMissing(slot, values)
	}

	pattern := slot.Pattern
	if slot.Wildcard || pattern == nil {
		pattern = core.AnyOne
	}
	if pattern == core.AllParam && !slot.Flags.Has(core.FlagGreedy) {
		var rest []any
		for !d.IsExhausted() && !atBoundary(d, boundary) {
			e, _ := d.PopFront()
			if e.IsText() {
				rest = append(rest, e.Text)
			} else {
				rest = append(rest, e.Payload)
			}
		}
		values[slot.Name] = rest
		return nil
	}

	v, err := pattern.Find(d)
	if err != nil {
		return defaultOrMissingErr(slot, values, err)
	}
	if err := core.ValidateTag(slot.Validate, v); err != nil {
		return defaultOrMissingErr(slot, values, err)
	}
	values[slot.Name] = v
	return nil
}

func defaultOrMissing(slot *core.Arg, values map[string]any) error {
	if slot.Flags.Has(core.FlagOptional) {
		values[slot.Name] = slot.Default
		return nil
	}
	return cerrors.Newf(cerrors.ArgMissing, "missing required argument %q", slot.Label())
}

func defaultOrMissingErr(slot *core.Arg, values map[string]any, cause error) error {
	if slot.Flags.Has(core.FlagOptional) {
		values[slot.Name] = slot.Default
		return nil
	}
	return cerrors.Wrap(cerrors.ArgInvalid, "argument "+slot.Label()+" rejected its token", cause)
}

func fillVariadic(slot *core.Arg, d *core.DataCollection, boundary map[string]bool, values map[string]any) error {
	pattern := slot.Pattern
	if pattern == nil {
		pattern = core.AnyOne
	}

	var collected []any
	for !d.IsExhausted() {
		if atBoundary(d, boundary) && !slot.Flags.Has(core.FlagGreedy) {
			break
		}
		v, err := pattern.Find(d)
		if err != nil {
			break
		}
		collected = append(collected, v)
	}

	if len(collected) == 0 && !slot.Flags.Has(core.FlagOptional) {
		return cerrors.Newf(cerrors.ArgMissing, "missing required argument %q", slot.Label())
	}
	if len(collected) == 0 {
		values[slot.Name] = slot.Default
		return nil
	}
	values[slot.Name] = collected
	return nil
}

// fillKWOnly consumes leading "name=value" tokens matching any of kwSlots,
// in whatever order they appear, stopping at the first token that is
// neither a recognised "name=value" pair nor at the param boundary. Spec.md
// leaves keyword-only token syntax unspecified beyond "reachable by name";
// this mini-grammar is this module's concrete choice (documented as an
// Open Question decision).
func fillKWOnly(kwSlots []*core.Arg, d *core.DataCollection, boundary map[string]bool, values map[string]any) error {
	if len(kwSlots) == 0 {
		return nil
	}
	byName := map[string]*core.Arg{}
	for _, s := range kwSlots {
		byName[s.Name] = s
	}

	for !d.IsExhausted() {
		e, ok := d.Peek()
		if !ok || !e.IsText() || boundary[e.Text] {
			break
		}
		name, val, found := strings.Cut(e.Text, "=")
		if !found {
			break
		}
		slot, isKW := byName[name]
		if !isKW {
			break
		}
		d.PopFront()
		values[slot.Name] = convertKWValue(slot, val)
	}

	for _, slot := range kwSlots {
		if _, ok := values[slot.Name]; ok {
			continue
		}
		if err := defaultOrMissing(slot, values); err != nil {
			return err
		}
	}
	return nil
}

func convertKWValue(slot *core.Arg, val string) any {
	if slot.Pattern == nil {
		return val
	}
	switch slot.Pattern.TypeTag {
	case "int":
		if v, err := strconv.ParseInt(val, 10, 64); err == nil {
			return v
		}
	case "float":
		if v, err := strconv.ParseFloat(val, 64); err == nil {
			return v
		}
	case "bool":
		return val == "true" || val == "yes" || val == "1"
	}
	return val
}
