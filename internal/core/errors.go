package core

import (
	cerrors "github.com/reeflective/dialect/internal/errors"
)

// Error is the public alias for the shared error type, re-exported by the
// root package too so callers never need to import internal/errors
// directly.
type Error = cerrors.Error

// Kind is the public alias for the shared error kind enum.
type Kind = cerrors.Kind

// Error kind constants, re-exported from internal/errors.
const (
	KindUnknown           = cerrors.Unknown
	KindHeaderMissing     = cerrors.HeaderMissing
	KindFuzzyMatchSuccess = cerrors.FuzzyMatchSuccess
	KindUnexpectedToken   = cerrors.UnexpectedToken
	KindArgMissing        = cerrors.ArgMissing
	KindArgInvalid        = cerrors.ArgInvalid
	KindDuplicateCommand  = cerrors.DuplicateCommand
	KindBehaveCancelled   = cerrors.BehaveCancelled
	KindOutBoundsBehave   = cerrors.OutBoundsBehave
	KindAmbiguousQuery    = cerrors.AmbiguousQuery
)

// KindOf extracts the Kind from err, Unknown if err carries none.
var KindOf = cerrors.KindOf

func errNoToken(pattern string) error {
	return cerrors.Newf(cerrors.ArgInvalid, "pattern %q: no token available", pattern)
}

func errRejected(pattern string, e Element) error {
	if e.IsText() {
		return cerrors.Newf(cerrors.ArgInvalid, "pattern %q: rejected token %q", pattern, e.Text)
	}
	return cerrors.Newf(cerrors.ArgInvalid, "pattern %q: rejected payload %T", pattern, e.Payload)
}

func errRejectedPeek(pattern string, d *DataCollection) error {
	e, ok := d.Peek()
	if !ok {
		return errNoToken(pattern)
	}
	return errRejected(pattern, e)
}

func errConvert(pattern, raw string, cause error) error {
	return cerrors.Wrap(cerrors.ArgInvalid, "pattern \""+pattern+"\": cannot convert \""+raw+"\"", cause)
}
