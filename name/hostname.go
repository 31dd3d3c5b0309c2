package name

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"golang.org/x/net/idna"
)

// Hostname is a tenant hostname taken from an inbound request.
type Hostname struct {
	// Key is the directory lookup key: the hostname with the port and any
	// leading "www." label removed. Case is preserved.
	Key string

	// Raw is the hostname as it was received, without the port.
	Raw string
}

// Parse produces a Hostname value from a string, or panics if it is unable
// to do so.
func Parse(host string) Hostname {
	normalized, err := TryParse(host)
	if err != nil {
		panic(err)
	}

	return normalized
}

// TryParse attempts to produce a Hostname value from a string, such as the
// value of an HTTP Host header.
func TryParse(host string) (Hostname, error) {
	var normalized Hostname

	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	// Validation is performed on the lowercased punycode form, but the
	// lookup key keeps the original case.
	ascii, err := idna.ToASCII(strings.ToLower(host))
	if err != nil {
		return normalized, err
	} else if !isDomainName(ascii) {
		return normalized, fmt.Errorf("invalid hostname '%s'", host)
	}

	normalized.Raw = host
	normalized.Key = strings.TrimPrefix(host, "www.")

	return normalized, nil
}

// FromHTTP attempts to parse a hostname from an HTTP request.
func FromHTTP(request *http.Request) (Hostname, error) {
	return TryParse(request.Host)
}

// isDomainName checks if the given domain name is valid.
func isDomainName(domainName string) bool {
	if len(domainName) == 0 || len(domainName) > 255 {
		return false
	}

	hasLetter := false
	atomLength := 0
	previousChar := byte('.')

	for index := 0; index < len(domainName); index++ {
		char := domainName[index]

		switch {
		case 'a' <= char && char <= 'z':
			fallthrough
		case 'A' <= char && char <= 'Z':
			hasLetter = true
			atomLength++

		case '0' <= char && char <= '9':
			atomLength++

		case char == '-':
			// A hyphen can not occur at the start of an atom ...
			if previousChar == '.' {
				return false
			}
			atomLength++

		case char == '.':
			// A dot can not occur at the start of an atom, or after a hyphen
			// or another dot ...
			if previousChar == '.' || previousChar == '-' {
				return false
			}
			atomLength = 0

		default:
			return false
		}

		if atomLength > 63 {
			return false
		}

		previousChar = char
	}

	if previousChar == '-' || previousChar == '.' {
		return false
	}

	return hasLetter && atomLength <= 63
}
