package report

import (
	"sort"
	"strings"
	"time"

	"forest-funds/internal/models"

	"github.com/shopspring/decimal"
)

// Item is a transaction as shown in a list.
type Item struct {
	models.Transaction
	Style    models.CategoryStyle
	IsIncome bool
}

// Group holds the transactions of one day.
type Group struct {
	Title string
	Date  string
	Net   decimal.Decimal // income minus expenses of the day
	Items []Item
}

// GroupByDate groups txs by their date, newest day first. Items keep their
// ledger order within a day.
func GroupByDate(txs []models.Transaction, today time.Time) []Group {
	groupsMap := make(map[string]*Group)
	for _, tx := range txs {
		dateStr := tx.Date.String()
		if _, ok := groupsMap[dateStr]; !ok {
			groupsMap[dateStr] = &Group{Date: dateStr, Title: groupTitle(tx.Date, today)}
		}
		group := groupsMap[dateStr]
		isIncome := tx.Type == models.Income
		if isIncome {
			group.Net = group.Net.Add(tx.Amount)
		} else {
			group.Net = group.Net.Sub(tx.Amount)
		}
		group.Items = append(group.Items, Item{
			Transaction: tx,
			Style:       models.StyleOf(tx.Category),
			IsIncome:    isIncome,
		})
	}

	groups := make([]Group, 0, len(groupsMap))
	for _, g := range groupsMap {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Date > groups[j].Date })
	return groups
}

func groupTitle(date models.Date, today time.Time) string {
	switch date {
	case models.DateOf(today):
		return "TODAY"
	case models.DateOf(today.AddDate(0, 0, -1)):
		return "YESTERDAY"
	}
	return strings.ToUpper(date.Time().Format("Mon, 02 Jan '06"))
}
