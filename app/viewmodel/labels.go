package viewmodel

import (
	"strings"
)

// Labels are the static titles of the confirmation screen for one language.
type Labels struct {
	Hint    string
	Amount  string
	Total   string
	Details string
	SendTo  string
}

var defaultLabels = map[string]Labels{
	"en": {
		Hint:    "Please check the transfer details",
		Amount:  "Amount",
		Total:   "Total",
		Details: "Details",
		SendTo:  "Send to",
	},
	"de": {
		Hint:    "Bitte Überweisungsdetails prüfen",
		Amount:  "Betrag",
		Total:   "Gesamt",
		Details: "Details",
		SendTo:  "Senden an",
	},
}

func labelsFor(labels map[string]Labels, locale string) Labels {
	if labels == nil {
		labels = defaultLabels
	}

	if l, ok := labels[locale]; ok {
		return l
	}

	// e.g. "en" for "en-US"
	if i := strings.IndexAny(locale, "-_"); i > 0 {
		if l, ok := labels[locale[:i]]; ok {
			return l
		}
	}

	return labels["en"]
}
