package core

import cerrors "github.com/reeflective/dialect/internal/errors"

// ValidateTag runs go-playground/validator's single-variable validation
// (the same "validate" tag vocabulary struct fields use elsewhere in the
// ecosystem, e.g. "gt=0", "oneof=a b c") against value - an Arg slot's
// optional escape hatch for constraints beyond what a Pattern alone can
// express.
func ValidateTag(tag string, value any) error {
	if tag == "" {
		return nil
	}
	if err := sharedValidator.Var(value, tag); err != nil {
		return cerrors.Newf(cerrors.ArgInvalid, "value %v failed validation %q: %v", value, tag, err)
	}
	return nil
}
