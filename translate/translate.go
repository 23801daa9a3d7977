// Package translate renders diagnostic strings in the user's locale.
package translate

import (
	"github.com/jeandeaual/go-locale"
	log "github.com/sirupsen/logrus"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Fallback is used when the host reports no usable locale.
var Fallback = language.AmericanEnglish

var printer *message.Printer

func init() {
	tags := []string{Fallback.String()}

	locales, err := locale.GetLocales()
	if err != nil {
		log.Warnf("ls8: locale: %v", err)
	} else if len(locales) != 0 {
		tags = locales
	}

	printer = message.NewPrinter(message.MatchLanguage(tags...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
