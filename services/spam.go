package services

import (
	"strings"

	"helpdesk_app_go/models"
)

// NormalizeBlockList trims, lowercases and de-duplicates a blocked-domain or
// blocked-keyword list, dropping empty entries. Lists go through this before
// being saved so stored entries compare directly.
func NormalizeBlockList(entries []string) []string {
	normalized := make([]string, 0, len(entries))
	seen := make(map[string]bool, len(entries))

	for _, entry := range entries {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" || seen[entry] {
			continue
		}
		seen[entry] = true
		normalized = append(normalized, entry)
	}

	return normalized
}

// IsBlockedSender reports whether an address matches one of the blocked
// domains in the stored settings. Matching is case-insensitive and accepts
// both "spam.com" and subdomains like "mail.spam.com".
func IsBlockedSender(settings *models.EmailSettings, from string) bool {
	if settings == nil {
		return false
	}

	at := strings.LastIndex(from, "@")
	if at < 0 {
		return false
	}
	domain := strings.ToLower(strings.TrimSpace(from[at+1:]))
	if domain == "" {
		return false
	}

	for _, blocked := range settings.BlockedDomains {
		blocked = strings.ToLower(strings.TrimSpace(blocked))
		if blocked == "" {
			continue
		}
		if domain == blocked || strings.HasSuffix(domain, "."+blocked) {
			return true
		}
	}
	return false
}

// IsBlockedSubject reports whether the subject contains one of the blocked
// keywords, case-insensitively.
func IsBlockedSubject(settings *models.EmailSettings, subject string) bool {
	if settings == nil {
		return false
	}

	subject = strings.ToLower(subject)
	for _, keyword := range settings.BlockedKeywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" {
			continue
		}
		if strings.Contains(subject, keyword) {
			return true
		}
	}
	return false
}

// IsSpam applies both block lists to an address/subject pair
func IsSpam(settings *models.EmailSettings, from, subject string) bool {
	return IsBlockedSender(settings, from) || IsBlockedSubject(settings, subject)
}
