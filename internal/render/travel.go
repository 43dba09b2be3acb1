package render

import (
	"fmt"
	"time"

	"tripplanner/internal/maps"
)

// Travel formats a driving estimate as "about 3h05m by car (313 km)".
func Travel(est maps.Estimate) string {
	d := est.Duration.Round(time.Minute)
	h, m := int(d.Hours()), int(d.Minutes())%60
	dur := fmt.Sprintf("%dh%02dm", h, m)
	if h == 0 {
		dur = fmt.Sprintf("%dm", m)
	}
	if est.Distance == "" {
		return fmt.Sprintf("about %s by car", dur)
	}
	return fmt.Sprintf("about %s by car (%s)", dur, est.Distance)
}
