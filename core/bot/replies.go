package bot

import (
	"strconv"
	"strings"
)

const (
	// replyGreeting is sent for every non-message activity.
	replyGreeting = "Hello, I'm Bot, if you need help, write [Help]"

	// replyCart is sent for the order command; there is no cart yet.
	replyCart = "Sorry, the cart is not working yet"
)

// helpLabels are the top-level menu labels listed by the help command.
var helpLabels = []string{"Menu", "Order"}

// catalogLabels are the two catalog categories listed by the menu command.
var catalogLabels = []string{"All T-shirts", "All Fresh"}

// tshirtItems is the category listing behind catalog selection "1".
var tshirtItems = []string{
	"Classic white tee",
	"Classic black tee",
	"Logo print tee",
	"Longsleeve",
}

// freshItems is the category listing behind catalog selection "2".
var freshItems = []string{
	"Orange fresh",
	"Apple fresh",
}

// listing renders items as a numbered multi-line reply.
func listing(items []string) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(item)
	}
	return b.String()
}

// lines joins labels as a plain multi-line reply.
func lines(labels []string) string {
	return strings.Join(labels, "\n")
}
