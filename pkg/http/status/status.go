package status

import "net/http"

type Phraser struct {
	// Extra phrases take precedence over the IANA registry.
	Extra map[int]string
}

func (phraser *Phraser) Phrase(code int) (string, bool) {
	if phraser != nil {
		if phrase, ok := phraser.Extra[code]; ok {
			return phrase, true
		}
	}

	phrase := http.StatusText(code)
	return phrase, phrase != ""
}
