package bot

import (
	"context"
	"strconv"
	"strings"
)

// rule is one (predicate, action) pair of the command table.
type rule struct {
	name   string
	match  func(text string) bool
	action func(ctx context.Context, act Activity, tc TurnContext) error
}

// ruleGroups is the ordered command table. Groups are evaluated
// independently, so several groups may fire in the same turn; rules inside
// one group are chained and at most one of them fires.
func ruleGroups() [][]rule {
	return [][]rule{
		{
			{name: "help", match: equalsFold("help"), action: sendFixed(lines(helpLabels))},
		},
		{
			{name: "menu", match: equalsFold("menu", "меню"), action: sendFixed(lines(catalogLabels))},
		},
		{
			{name: "category.tshirts", match: equals("1"), action: categoryAction(tshirtItems)},
			{name: "category.fresh", match: equals("2"), action: categoryAction(freshItems)},
		},
		{
			{name: "order", match: equalsFold("order", "заказ"), action: sendFixed(replyCart)},
		},
	}
}

func equals(literal string) func(string) bool {
	return func(text string) bool {
		return text == literal
	}
}

func equalsFold(literals ...string) func(string) bool {
	return func(text string) bool {
		for _, lit := range literals {
			if strings.EqualFold(text, lit) {
				return true
			}
		}
		return false
	}
}

func sendFixed(reply string) func(context.Context, Activity, TurnContext) error {
	return func(ctx context.Context, _ Activity, tc TurnContext) error {
		return tc.Send(ctx, reply)
	}
}

// categoryAction lists the category and resolves an attached selection label.
// The confirmation is computed but never sent: there is no cart to add the
// item to yet, so the selection has no observable effect.
func categoryAction(items []string) func(context.Context, Activity, TurnContext) error {
	return func(ctx context.Context, act Activity, tc TurnContext) error {
		if err := tc.Send(ctx, listing(items)); err != nil {
			return err
		}
		if item, ok := selectedItem(act.Label, items); ok {
			confirmation := item + " ✔"
			// TODO: send the confirmation once the cart feature lands.
			_ = confirmation
		}
		return nil
	}
}

// selectedItem resolves a 1-based selection label against the listing.
func selectedItem(label string, items []string) (string, bool) {
	if label == "" {
		return "", false
	}
	n, err := strconv.Atoi(label)
	if err != nil || n < 1 || n > len(items) {
		return "", false
	}
	return items[n-1], true
}
