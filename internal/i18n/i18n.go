// Package i18n holds the static fr/en message catalog used for user-facing
// strings (clock feedback, report names). French is the product default.
package i18n

const (
	LangFR = "fr"
	LangEN = "en"

	DefaultLanguage = LangFR
)

var catalog = map[string]map[string]string{
	"general.error": {
		LangFR: "Une erreur est survenue",
		LangEN: "An error occurred",
	},
	"clock.checkedIn": {
		LangFR: "Pointage d'arrivée enregistré",
		LangEN: "Check-in recorded",
	},
	"clock.checkedOut": {
		LangFR: "Pointage de départ enregistré",
		LangEN: "Check-out recorded",
	},
	"clock.alreadyCheckedIn": {
		LangFR: "Vous avez déjà pointé",
		LangEN: "You have already checked in today",
	},
	"clock.alreadyCheckedOut": {
		LangFR: "Vous avez déjà pointé votre départ",
		LangEN: "You have already checked out today",
	},
	"clock.notCheckedIn": {
		LangFR: "Vous n'êtes pas pointé",
		LangEN: "You are not checked in",
	},
	"reports.daily": {
		LangFR: "Rapport quotidien",
		LangEN: "Daily report",
	},
	"reports.weekly": {
		LangFR: "Rapport hebdomadaire",
		LangEN: "Weekly report",
	},
	"reports.monthly": {
		LangFR: "Rapport mensuel",
		LangEN: "Monthly report",
	},
	"reports.custom": {
		LangFR: "Rapport personnalisé",
		LangEN: "Custom report",
	},
}

// Translate looks up key in lang, falling back to the default language and
// finally to the key itself so a missing entry stays visible instead of empty.
func Translate(lang, key string) string {
	entry, ok := catalog[key]
	if !ok {
		return key
	}
	if msg, ok := entry[lang]; ok && msg != "" {
		return msg
	}
	return entry[DefaultLanguage]
}

// Supported reports whether lang is a language the catalog carries.
func Supported(lang string) bool {
	return lang == LangFR || lang == LangEN
}
