package client

import (
	"fmt"
	"time"
)

// TimeAgo renders the age of t relative to now as the dashboards display
// it: "Just now", "5 minutes ago", "2 days ago", and so on.
func TimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return "some time ago"
	}

	seconds := int64(now.Sub(t).Seconds())
	if seconds < 0 {
		seconds = 0
	}

	units := []struct {
		secs int64
		name string
	}{
		{31536000, "year"},
		{2592000, "month"},
		{86400, "day"},
		{3600, "hour"},
		{60, "minute"},
	}

	for _, u := range units {
		if seconds > u.secs {
			n := seconds / u.secs
			if n > 1 {
				return fmt.Sprintf("%d %ss ago", n, u.name)
			}
			return fmt.Sprintf("%d %s ago", n, u.name)
		}
	}
	return "Just now"
}
