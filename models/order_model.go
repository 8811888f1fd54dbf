package models

import (
	"time"

	"freight-app/controllers/idgen"
	"freight-app/types"

	"gorm.io/gorm"
)

// OrderHeader is one submitted booking batch. History browsing reads these;
// the live rate-shopping state never touches this table until submit succeeds.
type OrderHeader struct {
	ID        types.SnowflakeID `json:"id" gorm:"primaryKey"`
	OrderNo   string `json:"order_no" gorm:"unique"`
	ItemCount int    `json:"item_count"`
	Status    string `json:"status"`
	CreatedAt time.Time
	CreatedBy int
	UpdatedAt time.Time
	UpdatedBy int
	DeletedAt gorm.DeletedAt
	DeletedBy int

	Details []OrderDetail `json:"details" gorm:"foreignKey:OrderID"`
}

func (o *OrderHeader) BeforeCreate(tx *gorm.DB) (err error) {
	o.ID = types.SnowflakeID(idgen.GenerateID())
	return
}

// OrderDetail is one booked shipment inside a batch, frozen from the quote
// that was selected at submit time.
type OrderDetail struct {
	ID             types.SnowflakeID `json:"id" gorm:"primaryKey"`
	OrderID        types.SnowflakeID `json:"order_id" gorm:"index"`
	TrackingNumber string  `json:"tracking_number"`
	Region         Region  `json:"region"`
	Supplier       string  `json:"supplier"`
	ChannelCode    string  `json:"channel_code"`
	ChannelName    string  `json:"channel_name"`
	ExpressType    string  `json:"express_type"`
	TotalFee       float64 `json:"total_fee"`
	Qty            int     `json:"qty"`
	Weight         float64 `json:"weight"`
	DutyCode       string  `json:"duty_code"`
	Port           string  `json:"port"`
	CreatedAt      time.Time
	CreatedBy      int
}

func (o *OrderDetail) BeforeCreate(tx *gorm.DB) (err error) {
	o.ID = types.SnowflakeID(idgen.GenerateID())
	return
}

// TrackingEntry is one milestone event against a tracking number, fed by the
// upstream backend and browsed read-mostly from the history screens.
type TrackingEntry struct {
	gorm.Model
	TrackingNumber string    `json:"tracking_number" gorm:"index"`
	Status         string    `json:"status"`
	Location       string    `json:"location"`
	Remark         string    `json:"remark"`
	OccurredAt     time.Time `json:"occurred_at"`
	CreatedBy      int
	UpdatedBy      int
	DeletedBy      int
}
