package utils

import "fmt"

// FormatAmount renders a cent amount as a currency string
func FormatAmount(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
