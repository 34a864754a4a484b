package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// TypeCoercer classifies raw cell text into column types with deterministic
// threshold rules and parses individual values.
type TypeCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the coercion thresholds
type CoercionConfig struct {
	NumericThreshold   float64 // fraction of non-missing values that must parse as numbers
	TimestampThreshold float64 // fraction of non-missing values that must parse as dates
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		NumericThreshold:   0.8,
		TimestampThreshold: 0.8,
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	return &TypeCoercer{config: config}
}

// dateFormats are tried in order when parsing calendar dates
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"02-Jan-2006",
	"Jan 2, 2006",
	"2006-01",
}

// ParseNumeric attempts to parse a cell as a float. Currency symbols,
// percent signs, and thousands separators are stripped first.
func (c *TypeCoercer) ParseNumeric(strVal string) (float64, bool) {
	cleanVal := strings.TrimSpace(strVal)
	if cleanVal == "" {
		return 0, false
	}

	// Parenthesized values are negatives: (123) -> -123
	isNegative := false
	if strings.HasPrefix(cleanVal, "(") && strings.HasSuffix(cleanVal, ")") {
		cleanVal = strings.TrimSuffix(strings.TrimPrefix(cleanVal, "("), ")")
		isNegative = true
	}

	for _, symbol := range []string{"$", "€", "£", "¥", "%"} {
		cleanVal = strings.ReplaceAll(cleanVal, symbol, "")
	}
	cleanVal = strings.ReplaceAll(cleanVal, ",", "")
	cleanVal = strings.TrimSpace(cleanVal)

	if isNegative {
		cleanVal = "-" + cleanVal
	}

	val, err := strconv.ParseFloat(cleanVal, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// ParseDate attempts to parse a cell as a calendar date
func (c *TypeCoercer) ParseDate(strVal string) (time.Time, bool) {
	cleanVal := strings.TrimSpace(strVal)
	if cleanVal == "" {
		return time.Time{}, false
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, cleanVal); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// TypeAnalysis contains the results of type distribution analysis
type TypeAnalysis struct {
	TotalCount     int
	ValidCount     int
	NumericCount   int
	TimestampCount int
	NumericRatio   float64
	TimestampRatio float64
}

// AnalyzeColumn counts how many cells parse as each type
func (c *TypeCoercer) AnalyzeColumn(values []string) TypeAnalysis {
	analysis := TypeAnalysis{TotalCount: len(values)}

	for _, val := range values {
		if strings.TrimSpace(val) == "" {
			continue
		}
		analysis.ValidCount++
		if _, ok := c.ParseNumeric(val); ok {
			analysis.NumericCount++
		}
		if _, ok := c.ParseDate(val); ok {
			analysis.TimestampCount++
		}
	}

	if analysis.ValidCount > 0 {
		analysis.NumericRatio = float64(analysis.NumericCount) / float64(analysis.ValidCount)
		analysis.TimestampRatio = float64(analysis.TimestampCount) / float64(analysis.ValidCount)
	}
	return analysis
}

// IsNumericColumn reports whether a column clears the numeric threshold.
// Numeric wins over timestamp: bare years parse as both, and a column of
// numbers is the more useful reading.
func (c *TypeCoercer) IsNumericColumn(analysis TypeAnalysis) bool {
	return analysis.ValidCount > 0 && analysis.NumericRatio >= c.config.NumericThreshold
}

// IsTimestampColumn reports whether a column clears the timestamp threshold
func (c *TypeCoercer) IsTimestampColumn(analysis TypeAnalysis) bool {
	return analysis.ValidCount > 0 && analysis.TimestampRatio >= c.config.TimestampThreshold
}
