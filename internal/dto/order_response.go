package dto

type OrderResponse struct {
	ID            int64             `json:"id"`
	PatientName   string            `json:"patient_name"`
	PatientRx     *string           `json:"patient_rx"`
	Status        string            `json:"status"`
	OrderType     string            `json:"order_type"`
	DateCreated   int64             `json:"date_created"`
	DueDate       string            `json:"due_date"`
	CreatedBy     *int64            `json:"created_by"`
	CreatedByName *string           `json:"created_by_name"`
	Comments      []CommentResponse `json:"comments"`
}

type OrderDetailResponse struct {
	OrderResponse
	History []HistoryResponse `json:"history"`
}

type CommentResponse struct {
	ID        int64  `json:"id"`
	OrderID   int64  `json:"order_id"`
	UserID    int64  `json:"user_id"`
	Comment   string `json:"comment"`
	CreatedAt int64  `json:"created_at"`
	UserName  string `json:"user_name"`
}

type HistoryResponse struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"order_id"`
	UserID    int64   `json:"user_id"`
	FieldName string  `json:"field_name"`
	OldValue  *string `json:"old_value"`
	NewValue  string  `json:"new_value"`
	CreatedAt int64   `json:"created_at"`
	UserName  string  `json:"user_name"`
}

type BoardOrder struct {
	OrderResponse
	DueSoon bool `json:"due_soon"`
}

type BoardColumn struct {
	Status string       `json:"status"`
	Orders []BoardOrder `json:"orders"`
}

type BoardResponse struct {
	Columns []BoardColumn `json:"columns"`
}
