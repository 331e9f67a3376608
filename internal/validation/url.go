package validation

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// TagWebURL is the validator tag for profile links: an absolute http, https or ftp URL
// with a dotted host and no whitespace or characters outside the URL grammar.
const TagWebURL = "weburl"

const (
	urlUCS        = `\x{00A0}-\x{D7FF}\x{F900}-\x{FDCF}\x{FDF0}-\x{FFEF}`
	urlUnreserved = `a-z0-9\-._~` + urlUCS
	urlPctEncoded = `%[0-9a-f]{2}`
	urlPChar      = `(?:[` + urlUnreserved + `!$&'()*+,;=:@]|` + urlPctEncoded + `)`
	urlUserInfo   = `(?:(?:[` + urlUnreserved + `!$&'()*+,;=:]|` + urlPctEncoded + `)*@)?`
	urlOctet      = `(?:25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)`
	urlIPv4       = urlOctet + `(?:\.` + urlOctet + `){3}`
	urlLabel      = `[a-z0-9` + urlUCS + `](?:[` + urlUnreserved + `]*[a-z0-9` + urlUCS + `])?`
	urlTLD        = `[a-z` + urlUCS + `](?:[` + urlUnreserved + `]*[a-z` + urlUCS + `])?`
	urlHost       = `(?:` + urlIPv4 + `|(?:` + urlLabel + `\.)+` + urlTLD + `\.?)`
	urlPath       = `(?:/(?:` + urlPChar + `+(?:/` + urlPChar + `*)*)?)?`
	urlQuery      = `(?:\?(?:` + urlPChar + `|[\x{E000}-\x{F8FF}/?])*)?`
	urlFragment   = `(?:#(?:` + urlPChar + `|[/?])*)?`
)

var webURLPattern = regexp.MustCompile(
	`(?i)^(?:https?|ftp)://` + urlUserInfo + urlHost + `(?::\d*)?` + urlPath + urlQuery + urlFragment + `$`,
)

// IsWebURL reports whether s is a syntactically valid profile link.
func IsWebURL(s string) bool {
	return webURLPattern.MatchString(s)
}

func registerWebURL(v *validator.Validate) {
	err := v.RegisterValidation(TagWebURL, func(fl validator.FieldLevel) bool {
		return IsWebURL(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("failed to register %s validation: %v", TagWebURL, err))
	}
}
