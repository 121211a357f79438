package domain

const (
	StatusOpen           = "Open"
	StatusOrderPlaced    = "Order Placed"
	StatusInProgress     = "In Progress"
	StatusReadyForPickup = "Ready for Pickup"
	StatusDelivered      = "Delivered"
)

// Statuses lists the workflow states in board column order.
var Statuses = []string{
	StatusOpen,
	StatusOrderPlaced,
	StatusInProgress,
	StatusReadyForPickup,
	StatusDelivered,
}

const (
	TypeStock    = "Stock"
	TypePurchase = "Purchase"
	TypeSpecial  = "Special"
)

var OrderTypes = []string{TypeStock, TypePurchase, TypeSpecial}

func IsValidOrderType(orderType string) bool {
	for _, t := range OrderTypes {
		if t == orderType {
			return true
		}
	}
	return false
}

type Order struct {
	ID          int64   `db:"id"`
	PatientName string  `db:"patient_name"`
	PatientRx   *string `db:"patient_rx"`
	Status      string  `db:"status"`
	OrderType   string  `db:"order_type"`
	DueDate     string  `db:"due_date"`
	DateCreated int64   `db:"date_created"`
	CreatedBy   *int64  `db:"created_by"`
	// Populated by the LEFT JOIN on users; nil when the creator is gone.
	CreatedByName *string `db:"created_by_name"`
}

type Comment struct {
	ID        int64  `db:"id"`
	OrderID   int64  `db:"order_id"`
	UserID    int64  `db:"user_id"`
	Comment   string `db:"comment"`
	CreatedAt int64  `db:"created_at"`
	UserName  string `db:"user_name"`
}

type OrderHistory struct {
	ID        int64   `db:"id"`
	OrderID   int64   `db:"order_id"`
	UserID    int64   `db:"user_id"`
	FieldName string  `db:"field_name"`
	OldValue  *string `db:"old_value"`
	NewValue  string  `db:"new_value"`
	CreatedAt int64   `db:"created_at"`
	UserName  string  `db:"user_name"`
}
