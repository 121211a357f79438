package board

import (
	"testing"
	"time"

	"github.com/alimikegami/pharmacy-order-tracker/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsDueSoon(t *testing.T) {
	now := time.Date(2025, 5, 10, 15, 30, 0, 0, time.UTC)

	testCases := []struct {
		Name     string
		DueDate  string
		Expected bool
	}{
		{Name: "due today", DueDate: "2025-05-10", Expected: true},
		{Name: "due tomorrow", DueDate: "2025-05-11", Expected: true},
		{Name: "due in three days", DueDate: "2025-05-13", Expected: true},
		{Name: "due in four days", DueDate: "2025-05-14", Expected: false},
		{Name: "due yesterday", DueDate: "2025-05-09", Expected: false},
		{Name: "long past", DueDate: "2024-01-01", Expected: false},
		{Name: "rfc3339 timestamp inside window", DueDate: "2025-05-12T08:00:00Z", Expected: true},
		{Name: "unparseable", DueDate: "not-a-date", Expected: false},
		{Name: "empty", DueDate: "", Expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, IsDueSoon(tc.DueDate, now))
		})
	}
}

func TestPartition(t *testing.T) {
	orders := []domain.Order{
		{ID: 1, Status: domain.StatusDelivered},
		{ID: 2, Status: domain.StatusOpen},
		{ID: 3, Status: domain.StatusOpen},
		{ID: 4, Status: domain.StatusReadyForPickup},
		{ID: 5, Status: "Archived"},
	}

	columns := Partition(orders)

	assert.Len(t, columns, 5)
	assert.Equal(t, domain.Statuses, []string{
		columns[0].Status, columns[1].Status, columns[2].Status, columns[3].Status, columns[4].Status,
	})
	assert.Len(t, columns[0].Orders, 2)
	assert.Len(t, columns[1].Orders, 0)
	assert.Len(t, columns[2].Orders, 0)
	assert.Len(t, columns[3].Orders, 1)
	assert.Len(t, columns[4].Orders, 1)

	total := 0
	for _, column := range columns {
		total += len(column.Orders)
	}
	assert.Equal(t, 4, total, "unknown statuses are dropped")
}

func TestFilterMatch(t *testing.T) {
	rx := "amoxicillin 500mg"
	order := domain.Order{
		ID:          1,
		PatientName: "Jane Doe",
		PatientRx:   &rx,
		Status:      domain.StatusInProgress,
		OrderType:   domain.TypePurchase,
		DueDate:     "2025-05-12",
	}

	testCases := []struct {
		Name     string
		Filter   Filter
		Expected bool
	}{
		{Name: "empty filter matches", Filter: Filter{}, Expected: true},
		{Name: "case-insensitive substring", Filter: Filter{Search: "jane"}, Expected: true},
		{Name: "substring middle of name", Filter: Filter{Search: "NE D"}, Expected: true},
		{Name: "search miss", Filter: Filter{Search: "smith"}, Expected: false},
		{Name: "status exact", Filter: Filter{Status: domain.StatusInProgress}, Expected: true},
		{Name: "status All disables", Filter: Filter{Status: "All"}, Expected: true},
		{Name: "status miss", Filter: Filter{Status: domain.StatusOpen}, Expected: false},
		{Name: "type exact", Filter: Filter{OrderType: domain.TypePurchase}, Expected: true},
		{Name: "type All disables", Filter: Filter{OrderType: "All"}, Expected: true},
		{Name: "type miss", Filter: Filter{OrderType: domain.TypeSpecial}, Expected: false},
		{Name: "range inclusive lower bound", Filter: Filter{DueFrom: "2025-05-12"}, Expected: true},
		{Name: "range inclusive upper bound", Filter: Filter{DueTo: "2025-05-12"}, Expected: true},
		{Name: "due before from", Filter: Filter{DueFrom: "2025-05-13"}, Expected: false},
		{Name: "due after to", Filter: Filter{DueTo: "2025-05-11"}, Expected: false},
		{Name: "inside range", Filter: Filter{DueFrom: "2025-05-01", DueTo: "2025-05-31"}, Expected: true},
		{Name: "conjunctive, one constraint fails", Filter: Filter{Search: "jane", Status: domain.StatusOpen}, Expected: false},
		{Name: "conjunctive, all hold", Filter: Filter{Search: "doe", Status: domain.StatusInProgress, OrderType: domain.TypePurchase, DueFrom: "2025-05-10", DueTo: "2025-05-15"}, Expected: true},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, tc.Filter.Match(order))
		})
	}
}

func TestApply(t *testing.T) {
	orders := []domain.Order{
		{ID: 1, PatientName: "Jane Doe", Status: domain.StatusOpen, OrderType: domain.TypeStock, DueDate: "2025-05-12"},
		{ID: 2, PatientName: "John Smith", Status: domain.StatusOpen, OrderType: domain.TypeStock, DueDate: "2025-05-20"},
	}

	filtered := Apply(orders, Filter{Search: "doe"})
	assert.Len(t, filtered, 1)
	assert.Equal(t, int64(1), filtered[0].ID)

	assert.Empty(t, Apply(orders, Filter{Search: "nobody"}))
	assert.Len(t, Apply(orders, Filter{}), 2)
}
