package diagnostics

import "golang.org/x/text/language"

// supported lists the language tags with a registered catalog, in the
// order passed to language.NewMatcher. Only English ships today; this
// list is the single place a future catalog gets registered.
var supported = []language.Tag{
	language.English,
}

var matcher = language.NewMatcher(supported)

// MatchLang resolves a language preference string to the closest
// registered Lang, falling back to English. It takes the preference as
// a parameter rather than reading a process-wide constant so a future
// CLI flag or config field can drive it directly; no such entry point
// is wired up yet, since diagnostics localization beyond English is out
// of scope for this compiler.
func MatchLang(preference string) Lang {
	tag, _, confidence := matcher.Match(language.Make(preference))
	if confidence == language.No {
		return English
	}
	base, _ := tag.Base()
	switch base.String() {
	case "en":
		return English
	default:
		return English
	}
}
