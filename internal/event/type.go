package event

const (
	PickupEventsQueue = "pickup_events"
	OrderEventsQueue  = "order_events"
)

// PickupScheduledEvent notifies logistics that a farmer's waste is ready for
// collection.
type PickupScheduledEvent struct {
	SubmissionID string  `json:"submission_id"`
	FarmerName   string  `json:"farmer_name"`
	MobileNumber string  `json:"mobile_number"`
	ResidueType  string  `json:"residue_type"`
	QuantityKg   float64 `json:"quantity_kg"`
	PickupDate   string  `json:"pickup_date"`
	Address      string  `json:"address,omitempty"`
}

// OrderPlacedEvent is emitted after checkout commits.
type OrderPlacedEvent struct {
	OrderID     string  `json:"order_id"`
	BuyerName   string  `json:"buyer_name"`
	CompanyName string  `json:"company_name"`
	TotalAmount float64 `json:"total_amount"`
	ItemCount   int     `json:"item_count"`
}
