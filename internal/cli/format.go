package cli

import "strconv"

// itoa formats an int for table cells.
func itoa(v int) string {
	return strconv.Itoa(v)
}

// ftoa formats a score for table cells.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
