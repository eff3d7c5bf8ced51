package intake

import (
	"regexp"
	"strings"
)

// Error messages for the IMEI/serial heuristic. Tests pin specific inputs
// to specific branches, so the check order below is load-bearing.
const (
	errSerialRequired    = "IMEI or Serial Number is required"
	errSerialTooShort    = "IMEI or Serial Number is too short"
	errSerialNumericMin  = "IMEI or Serial Number must be at least 12 digits"
	errSerialTooLong     = "IMEI or Serial Number is too long"
	errSerialModelName   = "Please enter the actual IMEI or Serial Number, not the model name"
	errSerialDescription = "Please enter the actual IMEI or Serial Number, not a description"
	errSerialPlaceholder = "Please enter the actual IMEI or Serial Number from the device"
	errSerialRepeated    = "IMEI or Serial Number appears to be invalid (repeated digits)"
)

// Substrings that betray a model name typed where an identifier belongs.
var modelNameFragments = []string{
	"iphone", "galaxy", "pixel", "oneplus", "huawei", "xiaomi", "samsung", "apple",
	"tecno", "infinix", "itel", "nokia", "oppo", "vivo", "redmi",
	"note", "plus", "pro", "max", "ultra", "mini", "lite", "neo",
}

var (
	nonDigitRe    = regexp.MustCompile(`\D`)
	whitespaceRe  = regexp.MustCompile(`\s`)
	seriesModelRe = regexp.MustCompile(`(?i)\b[samcgx]\s*\d+`)
	repeatDigitRe = regexp.MustCompile(`(0{6}|1{6}|2{6}|3{6}|4{6}|5{6}|6{6}|7{6}|8{6}|9{6})`)
	placeholders  = map[string]bool{
		"n/a": true, "na": true, "unknown": true, "not available": true,
		"none": true, "tbd": true, "pending": true,
	}
)

// ValidateSerial applies the shop's IMEI/serial heuristic. It distinguishes
// a real hardware identifier from an accidentally typed model name,
// description, or placeholder. The empty error string means valid.
func ValidateSerial(value string) (bool, string) {
	if strings.TrimSpace(value) == "" {
		return false, errSerialRequired
	}

	digits := nonDigitRe.ReplaceAllString(value, "")
	compact := whitespaceRe.ReplaceAllString(value, "")
	totalLength := len(compact)
	digitCount := len(digits)
	letterCount := totalLength - digitCount
	hasSpace := strings.ContainsAny(value, " \t")

	// Single-token alphanumeric serials are accepted up front; anything
	// with internal whitespace has to survive the model-name and
	// description screens first.
	if !hasSpace {
		// Mostly letters, like "G9566RL4YC".
		if letterCount > digitCount && totalLength >= 8 {
			return true, ""
		}
		// Balanced mix of letters and digits.
		if totalLength >= 8 && digitCount >= 2 && letterCount >= 2 {
			return true, ""
		}
	}

	// Purely numeric input below IMEI length.
	if digitCount < 12 && letterCount == 0 {
		return false, errSerialNumericMin
	}

	if digitCount > 20 {
		return false, errSerialTooLong
	}

	lower := strings.ToLower(value)
	for _, fragment := range modelNameFragments {
		if strings.Contains(lower, fragment) {
			return false, errSerialModelName
		}
	}
	if seriesModelRe.MatchString(value) {
		return false, errSerialModelName
	}

	if len(strings.Fields(value)) > 2 {
		return false, errSerialDescription
	}

	if placeholders[lower] {
		return false, errSerialPlaceholder
	}

	if repeatDigitRe.MatchString(digits) {
		return false, errSerialRepeated
	}

	// IMEI-like: at least 12 digits and digit-dominated.
	if digitCount >= 12 && float64(digitCount)/float64(totalLength) >= 0.8 {
		return true, ""
	}

	if totalLength >= 8 && digitCount > 0 && letterCount > 0 {
		return true, ""
	}

	return false, errSerialTooShort
}
