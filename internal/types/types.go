package types

// PlaceInfo is a read-only snapshot of a seller's store and its lucky bag.
type PlaceInfo struct {
	ID            string `json:"id"`
	Name          string `json:"name" binding:"required"`
	Category      string `json:"category,omitempty"`
	Address       string `json:"address,omitempty"`
	PickupStart   string `json:"pickupStart" binding:"required"` // "HH:MM"
	PickupEnd     string `json:"pickupEnd" binding:"required"`
	ItemName      string `json:"itemName" binding:"required"`
	Price         int    `json:"price,omitempty"`
	OriginalPrice int    `json:"originalPrice,omitempty"`
	Quantity      int    `json:"quantity,omitempty"`
}

// ReviewInput is a customer review the seller wants to answer.
type ReviewInput struct {
	PlaceName string `json:"placeName" binding:"required"`
	Content   string `json:"reviewContent" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
}

// StatsData aggregates order counts for a place.
type StatsData struct {
	PaidCount       int `json:"paidCount"`
	ConfirmedCount  int `json:"confirmedCount"`
	PickedUpCount   int `json:"pickedUpCount"`
	CancelledCount  int `json:"cancelledCount"`
	TotalOrders     int `json:"totalOrders"`
	TotalPickedUp   int `json:"totalPickedUp"`
	CurrentQuantity int `json:"currentQuantity"`
	HistoryDays     int `json:"historyDays"`
}

type BaseResponse struct {
	RequestID string `json:"request_id,omitempty"`
	Success   bool   `json:"success"`
}
