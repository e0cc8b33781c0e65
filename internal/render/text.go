package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Wrap performs simple word wrapping to the given width, keeping the
// line breaks already in text.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	var result strings.Builder
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}
		lineLen := 0
		for i, word := range words {
			wlen := lipgloss.Width(word)
			if i > 0 && lineLen+1+wlen > width {
				result.WriteString("\n")
				lineLen = 0
			} else if i > 0 {
				result.WriteString(" ")
				lineLen++
			}
			result.WriteString(word)
			lineLen += wlen
		}
		result.WriteString("\n")
	}
	return strings.TrimRight(result.String(), "\n")
}

// ExcerptLength is how much of a post the reply modal quotes.
const ExcerptLength = 150

// Truncate cuts text to max runes and appends "..." when it was longer.
func Truncate(text string, max int) string {
	r := []rune(text)
	if len(r) <= max {
		return text
	}
	return string(r[:max]) + "..."
}

// TimeAgo renders the age of t as "3 ngày", "5 giờ", "2 phút" or "10 giây".
func TimeAgo(t time.Time) string {
	return timeAgo(t, time.Now())
}

func timeAgo(t, now time.Time) string {
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}
	seconds := int(d / time.Second)
	minutes := seconds / 60
	hours := minutes / 60
	days := hours / 24

	switch {
	case days > 0:
		return fmt.Sprintf("%d ngày", days)
	case hours > 0:
		return fmt.Sprintf("%d giờ", hours)
	case minutes > 0:
		return fmt.Sprintf("%d phút", minutes)
	}
	return fmt.Sprintf("%d giây", seconds)
}

// Timestamp formats a post time as "Jul 6, 12:00 PM".
func Timestamp(t time.Time) string {
	return t.Format("Jan 2, 03:04 PM")
}

// Followers formats a follower count: "67 người theo dõi",
// "9.3K người theo dõi", "1.2Tr người theo dõi".
func Followers(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fTr người theo dõi", float64(n)/1_000_000)
	case n >= 1000:
		return fmt.Sprintf("%.1fK người theo dõi", float64(n)/1000)
	}
	return fmt.Sprintf("%d người theo dõi", n)
}

// Count hides zero counters the way the post action bar does.
func Count(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%d", n)
}
