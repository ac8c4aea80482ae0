package output

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pranshuparmar/procdump/pkg/model"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}

// FormatBytes renders n in decimal units with two decimals, e.g. 999 B,
// 1.50 KB, 12.00 MB.
func FormatBytes(n uint64) string {
	if n < 1000 {
		return strconv.FormatUint(n, 10) + " B"
	}
	v, unit := scale(float64(n), 999.995)
	return fmt.Sprintf("%.2f %s", v, unit)
}

// FormatRate renders a byte rate with one decimal, e.g. 12.3 KB/s.
func FormatRate(perSecond float64) string {
	if perSecond < 0 {
		perSecond = 0
	}
	v, unit := scale(perSecond, 999.95)
	return fmt.Sprintf("%.1f %s/s", v, unit)
}

// scale divides v by 1000 until it stays below limit once rounded.
func scale(v, limit float64) (float64, string) {
	i := 0
	for v >= limit && i < len(byteUnits)-1 {
		v /= 1000
		i++
	}
	return v, byteUnits[i]
}

// FormatLimit renders one side of a resource limit. Byte limits are
// shown in decimal units.
func FormatLimit(v uint64, unit string) string {
	switch {
	case v == model.Unlimited:
		return "unlimited"
	case unit == "bytes":
		return FormatBytes(v)
	}
	return strconv.FormatUint(v, 10)
}

// FormatDuration renders cpu and wall times with at most two decimals.
func FormatDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "0s"
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	case d < time.Minute:
		return d.Round(10 * time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}
