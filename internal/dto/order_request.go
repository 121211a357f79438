package dto

type OrderRequest struct {
	PatientName string  `json:"patient_name"`
	PatientRx   *string `json:"patient_rx"`
	DueDate     string  `json:"due_date"`
	Status      string  `json:"status"`
	OrderType   string  `json:"order_type"`
}

// UpdateOrderRequest distinguishes omitted fields from empty ones: patient_name
// and due_date fall back to the stored value when empty, while the pointer
// fields fall back only when the key is absent from the payload.
type UpdateOrderRequest struct {
	PatientName string  `json:"patient_name"`
	PatientRx   *string `json:"patient_rx"`
	DueDate     string  `json:"due_date"`
	Status      *string `json:"status"`
	OrderType   *string `json:"order_type"`
}

type CommentRequest struct {
	Comment string `json:"comment"`
}

type OrderFilter struct {
	Search    string `query:"search"`
	Status    string `query:"status"`
	OrderType string `query:"order_type"`
	DueFrom   string `query:"due_from"`
	DueTo     string `query:"due_to"`
}
