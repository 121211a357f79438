// Package board implements the presentation projections over an order
// snapshot: the fixed-column kanban partition, the due-soon window, and the
// conjunctive list filter. All functions are pure and never touch the store.
package board

import (
	"strings"
	"time"

	"github.com/alimikegami/pharmacy-order-tracker/internal/domain"
)

var dueDateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

func parseDueDate(value string) (time.Time, bool) {
	for _, format := range dueDateFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// daysUntil counts calendar days between now and due, both normalized to
// midnight so that time of day never shifts the result.
func daysUntil(due, now time.Time) int {
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	return int(dueDay.Sub(nowDay).Hours() / 24)
}

// IsDueSoon reports whether dueDate falls within the next three days,
// inclusive on both ends. Unparseable dates are never due soon.
func IsDueSoon(dueDate string, now time.Time) bool {
	due, ok := parseDueDate(dueDate)
	if !ok {
		return false
	}

	days := daysUntil(due, now)

	return days >= 0 && days <= 3
}

type Column struct {
	Status string
	Orders []domain.Order
}

// Partition buckets the snapshot into the five workflow columns in their
// fixed order. Orders with an unknown status are dropped, matching the
// board's behavior of only rendering known columns.
func Partition(orders []domain.Order) []Column {
	columns := make([]Column, 0, len(domain.Statuses))
	for _, status := range domain.Statuses {
		column := Column{Status: status, Orders: []domain.Order{}}
		for _, order := range orders {
			if order.Status == status {
				column.Orders = append(column.Orders, order)
			}
		}
		columns = append(columns, column)
	}

	return columns
}

// Filter is conjunctive: every populated constraint must hold. "All" (or an
// empty value) disables the status and type constraints.
type Filter struct {
	Search    string
	Status    string
	OrderType string
	DueFrom   string
	DueTo     string
}

func (f Filter) Match(order domain.Order) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(order.PatientName), strings.ToLower(f.Search)) {
		return false
	}

	if f.Status != "" && f.Status != "All" && order.Status != f.Status {
		return false
	}

	if f.OrderType != "" && f.OrderType != "All" && order.OrderType != f.OrderType {
		return false
	}

	if f.DueFrom != "" || f.DueTo != "" {
		due, ok := parseDueDate(order.DueDate)
		if !ok {
			return false
		}

		if from, ok := parseDueDate(f.DueFrom); f.DueFrom != "" && ok {
			if daysUntil(due, from) < 0 {
				return false
			}
		}

		if to, ok := parseDueDate(f.DueTo); f.DueTo != "" && ok {
			if daysUntil(due, to) > 0 {
				return false
			}
		}
	}

	return true
}

func Apply(orders []domain.Order, f Filter) []domain.Order {
	filtered := []domain.Order{}
	for _, order := range orders {
		if f.Match(order) {
			filtered = append(filtered, order)
		}
	}

	return filtered
}
