package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatFileSize converts a byte length into a human-readable lower-case unit string.
func FormatFileSize(bytes int64) string {
	if bytes < 0 {
		return "0b"
	}
	units := []string{"b", "kb", "mb", "gb", "tb", "pb"}
	value := float64(bytes)
	unitIndex := 0
	for value >= 1024 && unitIndex < len(units)-1 {
		value /= 1024
		unitIndex++
	}
	if unitIndex == 0 {
		return fmt.Sprintf("%db", bytes)
	}
	if value < 10 {
		formatted := fmt.Sprintf("%.1f", value)
		formatted = strings.TrimSuffix(formatted, ".0")
		return formatted + units[unitIndex]
	}
	return fmt.Sprintf("%.0f%s", value, units[unitIndex])
}

// FormatThousands renders an integer with comma separators between thousands
// groups, as shown in token and character counts reported to the user.
func FormatThousands(value int) string {
	digits := strconv.Itoa(value)
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}
	var grouped strings.Builder
	leadingLength := len(digits) % 3
	if leadingLength > 0 {
		grouped.WriteString(digits[:leadingLength])
	}
	for position := leadingLength; position < len(digits); position += 3 {
		if grouped.Len() > 0 {
			grouped.WriteString(",")
		}
		grouped.WriteString(digits[position : position+3])
	}
	if negative {
		return "-" + grouped.String()
	}
	return grouped.String()
}
