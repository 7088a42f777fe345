// Package dialect is a declarative engine for parsing commands out of a
// plain string or a mixed string/payload stream (a chat message with
// mentions, attachments, or other platform-specific objects interleaved
// with text).
//
// A Command is declared once, compiled into an Analyser, and then run
// against any number of inputs; the result is an Arparma carrying matched
// arguments, options and subcommands, queryable by dotted path and subject
// to a post-analysis behavior pipeline.
//
// This package is a thin façade over internal/core (the data model: Pattern,
// Args, the node tree, DataCollection, Arparma) and internal/analyser (the
// compiled state machine) - it exists so callers never need to import
// either internal package directly.
package dialect

import (
	"github.com/reeflective/dialect/internal/core"
)

// Data model aliases (component C1-C5, C7).
type (
	Pattern          = core.Pattern
	PatternKind      = core.PatternKind
	Arg              = core.Arg
	Args             = core.Args
	SlotFlag         = core.SlotFlag
	TypeTable        = core.TypeTable
	Node             = core.Node
	CommandNode      = core.CommandNode
	Option           = core.Option
	Subcommand       = core.Subcommand
	Sentence         = core.Sentence
	ArgAction        = core.ArgAction
	Header           = core.Header
	Meta             = core.Meta
	Command          = core.Command
	CommandOption    = core.CommandOption
	DataCollection   = core.DataCollection
	Element          = core.Element
	CollectionOption = core.Options
	Arparma          = core.Arparma
	HeadResult       = core.HeadResult
	OptionResult     = core.OptionResult
	SubcommandResult = core.SubcommandResult
	Behavior         = core.Behavior
	NodeView         = core.NodeView
	NamespaceConfig  = core.NamespaceConfig
	Error            = core.Error
	ErrorKind        = core.Kind
)

// Error kind constants (spec.md §7).
const (
	KindUnknown           = core.KindUnknown
	KindHeaderMissing     = core.KindHeaderMissing
	KindFuzzyMatchSuccess = core.KindFuzzyMatchSuccess
	KindUnexpectedToken   = core.KindUnexpectedToken
	KindArgMissing        = core.KindArgMissing
	KindArgInvalid        = core.KindArgInvalid
	KindDuplicateCommand  = core.KindDuplicateCommand
	KindBehaveCancelled   = core.KindBehaveCancelled
	KindOutBoundsBehave   = core.KindOutBoundsBehave
	KindAmbiguousQuery    = core.KindAmbiguousQuery
)

// Slot flags (spec.md §3 "Arg slot").
const (
	FlagOptional = core.FlagOptional
	FlagHidden   = core.FlagHidden
	FlagAnti     = core.FlagAnti
	FlagKWOnly   = core.FlagKWOnly
	FlagMultiple = core.FlagMultiple
	FlagGreedy   = core.FlagGreedy
)

// Empty is the sentinel meaning "no argument was supplied" (spec.md §4.1).
var Empty = core.Empty

// Predefined patterns (spec.md §4.1).
var (
	Int          = core.Int
	Float        = core.Float
	Bool         = core.Bool
	Str          = core.Str
	AnyOne       = core.AnyOne
	URL          = core.URL
	IP           = core.IP
	Email        = core.Email
	Hex          = core.Hex
	AllParam     = core.AllParam
	EmptyPattern = core.EmptyPattern
)

// Pattern constructors and combinators (spec.md §4.1).
var (
	NewDirect         = core.NewDirect
	NewRegexMatch     = core.NewRegexMatch
	NewRegexTransform = core.NewRegexTransform
	NewTypeCheck      = core.NewTypeCheck
	NewTypeConvert    = core.NewTypeConvert
	Union             = core.Union
	Sequence          = core.Sequence
	Anti              = core.Anti
	OptionalPattern   = core.OptionalPattern
)

// Args construction (spec.md §4.2).
var (
	NewArgs         = core.NewArgs
	Positional      = core.Positional
	OptionalArg     = core.OptionalArg
	KeywordOnly     = core.KeywordOnly
	Variadic        = core.Variadic
	ParseArgSlot    = core.ParseArgSlot
	ParseArgsString = core.ParseArgsString
	NewTypeTable    = core.NewTypeTable
	DefaultTypes    = core.DefaultTypes
	ValidateTag     = core.ValidateTag
)

// Node model constructors (spec.md §4.3).
var (
	NewOption     = core.NewOption
	NewSubcommand = core.NewSubcommand
	StoreTrue     = core.StoreTrue
	StoreFalse    = core.StoreFalse
	StoreConst    = core.StoreConst
)

// Command construction (spec.md §4.4).
var (
	NewCommand       = core.NewCommand
	WithHeaders      = core.WithHeaders
	WithMainArgs     = core.WithMainArgs
	WithOptions      = core.WithOptions
	WithNamespace    = core.WithNamespace
	WithCommandMeta  = core.WithCommandMeta
	WithBehaviors    = core.WithBehaviors
	DefaultNamespace = core.DefaultNamespaceConfig
	VisitCommand     = core.Visit

	LoadNamespaceConfigs = core.LoadNamespaceConfigs
	SaveNamespaceConfigs = core.SaveNamespaceConfigs
)

// DataCollection construction (spec.md §4.5).
var (
	NewFromString   = core.NewFromString
	NewFromSequence = core.NewFromSequence
)

// Behavior helpers (spec.md §4.7).
var (
	BehaveCancel = core.BehaveCancel
	BehaveFail   = core.BehaveFail
)

// QueryWith is sugar over Arparma.Query with a runtime type assertion
// (spec.md §4.7 "query_with").
func QueryWith[T any](a *Arparma, path string) (T, error) {
	return core.QueryWith[T](a, path)
}
