package extract

import "regexp"

var senderDomainPattern = regexp.MustCompile(`@([a-zA-Z0-9.-]+)`)

// SenderDomain returns the run of domain characters after the first matching `@` in sender.
func SenderDomain(sender string) string {
	match := senderDomainPattern.FindStringSubmatch(sender)
	if match == nil {
		return ""
	}
	return match[1]
}
