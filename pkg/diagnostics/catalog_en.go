package diagnostics

// Lang identifies a diagnostic message catalog by BCP-47-ish tag.
type Lang string

// English is the only catalog that ships built in.
const English Lang = "en"

var catalogs = map[Lang]*Catalog{}

var english = &Catalog{
	lang: English,
	messages: map[Kind]string{
		UnnamedFunction:                   "fn sentence has no name: expected 'fn <name> { ... }'",
		SentenceHasNoStartIdentifier:      "sentence has no start identifier: expected a '{' somewhere in the source",
		SentenceDoesntEndWithEndSpecifier: "sentence does not end with a closing '}'",

		UndefinedFunctionCalled:     "undefined function called: %s",
		UndefinedVariableReferenced: "undefined variable referenced: %s",
		CouldntParseANumber:         "could not parse %q as a number",
		UnknownOperatorGiven:        "unknown operator given: %s",
		UnknownTypeAnnotation:       "unknown type annotation: %s",
		UnbalancedBrackets:          "unbalanced brackets in expression",
		InvalidFormula:              "invalid formula: %s",

		OperationOccuredBetweenUnsupportedTypes:   "operation occurred between unsupported types: %s and %s",
		AssignOccuredBetweenUnsupportedTypes:      "assignment occurred between unsupported types: cannot assign %s onto %s",
		ComparementOccuredBetweenUnsupportedTypes: "comparison occurred between unsupported types: %s and %s",
	},
}

func init() {
	catalogs[English] = english
}
