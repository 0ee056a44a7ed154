package format

import "time"

// Date renders a timestamp the way the order history shows it.
func Date(t time.Time) string {
	return t.Format("02.01.2006")
}

// DateTime renders a timestamp with time of day, used for order rows.
func DateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04:05")
}
