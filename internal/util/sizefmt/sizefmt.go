// Package sizefmt formats byte counts the way the reports expect them:
// kilobytes below 1000 KB, megabytes up to 100000 KB, gigabytes above.
package sizefmt

import (
	"fmt"
	"math"
)

// Format renders a byte count as "N KB", "N.NN MB" or "N.NN GB".
// Thresholds operate on whole kilobytes, matching the report output
// format consumers already parse.
func Format(bytes int64) string {
	kb := int64(math.Round(float64(bytes) / 1024))
	switch {
	case kb > 100000:
		return fmt.Sprintf("%.2f GB", float64(kb)/(1024*1024))
	case kb > 1000:
		return fmt.Sprintf("%.2f MB", float64(kb)/1024)
	default:
		return fmt.Sprintf("%d KB", kb)
	}
}
