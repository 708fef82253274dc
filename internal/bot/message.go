package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/Spok95/kit-inventory/internal/domain/stock"
)

// LowStockText - текст уведомления, по строке на позицию в переданном порядке.
func LowStockText(items []stock.Item, now time.Time) string {
	var sb strings.Builder
	sb.WriteString("⚠️ Low stock alert\n")
	fmt.Fprintf(&sb, "%s\n\n", now.Format("2006-01-02 15:04:05"))
	sb.WriteString("The following items are running low:\n")
	for _, it := range items {
		fmt.Fprintf(&sb, "— %s: %d remaining (danger level: %d)\n", it.Name, it.Quantity, it.DangerLevel)
	}
	sb.WriteString("\nPlease restock as soon as possible.")
	return sb.String()
}
