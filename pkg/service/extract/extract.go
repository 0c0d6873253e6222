package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Patterns for the evidence types the ingestion path recognizes. The IPv4
// pattern over-matches on octet range, so candidates are range-checked
// afterwards.
var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+(?:\.[a-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+)*@(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?`)
	ipPattern    = regexp.MustCompile(`[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}`)
	macPattern   = regexp.MustCompile(`(?:[0-9a-fA-F]{2}[:\-]){5}[0-9a-fA-F]{2}`)
)

// EmailAddresses returns the email addresses found in the text
func EmailAddresses(text string) []string {
	return emailPattern.FindAllString(text, -1)
}

// IPAddresses returns the IPv4 addresses found in the text, dropping
// candidates with an out-of-range octet.
func IPAddresses(text string) []string {
	var results []string
	for _, candidate := range ipPattern.FindAllString(text, -1) {
		valid := true
		for _, octet := range strings.Split(candidate, ".") {
			if n, err := strconv.Atoi(octet); err != nil || n > 255 {
				valid = false
				break
			}
		}
		if valid {
			results = append(results, candidate)
		}
	}
	return results
}

// MACAddresses returns the MAC addresses found in the text
func MACAddresses(text string) []string {
	return macPattern.FindAllString(text, -1)
}

// Candidates scans a ticket title and body for key information values and
// returns them deduplicated in order of first appearance. The body is split
// on commas, matching the field separator of the ingestion mail format, and
// the title is scanned first.
func Candidates(title, body string) []string {
	lines := append([]string{title}, strings.Split(body, ",")...)

	seen := map[string]bool{}
	var results []string
	for _, line := range lines {
		var matches []string
		matches = append(matches, EmailAddresses(line)...)
		matches = append(matches, IPAddresses(line)...)
		matches = append(matches, MACAddresses(line)...)

		for _, match := range matches {
			if match == "" || seen[match] {
				continue
			}
			seen[match] = true
			results = append(results, match)
		}
	}

	return results
}

// ParseQueueRef splits an ingested subject of the form "<queue> - <title>"
// into the queue reference and the remaining title. When the subject carries
// no hyphen the whole subject is the title and ok is false.
func ParseQueueRef(subject string) (ref string, title string, ok bool) {
	if !strings.Contains(subject, "-") {
		return "", strings.TrimSpace(subject), false
	}

	parts := strings.Split(subject, "-")
	ref = strings.TrimSpace(parts[0])
	title = strings.TrimSpace(strings.Join(parts[1:], ""))
	return ref, title, true
}
