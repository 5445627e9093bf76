package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	slugInvalidChars = regexp.MustCompile("[^a-z0-9-]")
	slugDashes       = regexp.MustCompile("-+")
)

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(s))
}

// Slugify converts a string to a URL-friendly slug
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = slugInvalidChars.ReplaceAllString(s, "")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// shortID returns eight upper-case hex characters of a fresh UUID
func shortID() string {
	return strings.ToUpper(uuid.New().String()[:8])
}

// GenerateReceiptNo generates a unique goods receipt number
func GenerateReceiptNo(prefix string) string {
	if prefix == "" {
		prefix = "GRN-"
	}
	return prefix + shortID()
}

// GenerateSKU generates a SKU for items created without one
func GenerateSKU() string {
	return "SKU-" + shortID()
}

// NormalizeSKU trims and upper-cases a SKU so lookups are case-insensitive
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}
