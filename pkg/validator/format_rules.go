package validator

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
)

// Email validates that a value is an email address accepted by RFC 5322
// parsing and has a dotted domain.
func Email(field string) Rule {
	return newRule(field, CodeEmail, "must be a valid email address", nil, optional(func(v any) bool {
		return validEmail(toText(v))
	}))
}

func validEmail(value string) bool {
	if isBlank(value) {
		return false
	}

	addr, err := mail.ParseAddress(value)
	if err != nil {
		return false
	}

	// Reject display-name forms such as "Bob <bob@example.com>"
	if addr.Address != value {
		return false
	}

	localPart, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || localPart == "" {
		return false
	}

	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}

	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}

	return true
}

// URL validates that a value is an absolute URL with a scheme and host.
// When schemes is not empty the scheme must be one of them.
func URL(field string, schemes ...string) Rule {
	params := map[string]any{}
	if len(schemes) > 0 {
		params["schemes"] = schemes
	}
	return newRule(field, CodeURL, "must be a valid URL", params, optional(func(v any) bool {
		u, err := url.ParseRequestURI(toText(v))
		if err != nil || u.Scheme == "" || u.Host == "" {
			return false
		}
		if len(schemes) == 0 {
			return true
		}
		for _, s := range schemes {
			if strings.EqualFold(u.Scheme, s) {
				return true
			}
		}
		return false
	}))
}

// Pattern validates that a value matches re.
func Pattern(field string, re *regexp.Regexp) Rule {
	return newRule(field, CodePattern,
		fmt.Sprintf("must match pattern %s", re.String()),
		map[string]any{"pattern": re.String()},
		optional(func(v any) bool {
			return re.MatchString(toText(v))
		}))
}
