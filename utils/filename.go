package utils

import (
	"regexp"
	"strings"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// ExportFilename derives a download filename from the customer name and stock
// number. Unsafe characters collapse to dashes; an empty customer name falls
// back to "{stock}-quote".
func ExportFilename(customerName, stockNumber, ext string) string {
	name := strings.TrimSpace(customerName)
	stock := strings.TrimSpace(stockNumber)

	base := ""
	if name != "" {
		base = unsafeFilenameChars.ReplaceAllString(name, "-")
		base = strings.Trim(base, "-.")
	}
	if base == "" {
		if stock == "" {
			base = "quote"
		} else {
			base = stock + "-quote"
		}
	} else if stock != "" {
		base = base + "-" + stock
	}

	return base + "." + strings.TrimPrefix(ext, ".")
}
