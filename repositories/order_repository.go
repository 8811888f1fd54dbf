package repositories

import (
	"fmt"
	"time"

	"freight-app/models"
	"freight-app/services/upstream"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// SaveBooking persists a successfully submitted booking batch as order
// history. The live batch is already cleared by then; this is the only
// durable record of what was booked.
func (r *OrderRepository) SaveBooking(req *upstream.BookingRequest, userID int) (*models.OrderHeader, error) {
	header := models.OrderHeader{
		OrderNo:   generateOrderNo(r.DB),
		ItemCount: len(req.Items),
		Status:    "SUBMITTED",
		CreatedBy: userID,
	}

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&header).Error; err != nil {
			return err
		}
		for _, item := range req.Items {
			detail := models.OrderDetail{
				OrderID:        header.ID,
				TrackingNumber: item.TrackingNumber,
				Region:         models.Region(item.Area),
				Supplier:       item.Supplier,
				ChannelCode:    item.ChannelCode,
				ChannelName:    item.ChannelName,
				ExpressType:    item.ExpressType,
				TotalFee:       item.TotalFee,
				Qty:            item.Qty,
				Weight:         item.Weight,
				DutyCode:       item.DutyCode,
				Port:           item.Port,
				CreatedBy:      userID,
			}
			if err := tx.Create(&detail).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &header, nil
}

// ListOrders pages through submitted bookings, newest first.
func (r *OrderRepository) ListOrders(page, pageSize int) ([]models.OrderHeader, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	var total int64
	if err := r.DB.Model(&models.OrderHeader{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.OrderHeader
	err := r.DB.Preload("Details").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orders).Error
	return orders, total, err
}

// GetOrderByNo loads one booking with its items.
func (r *OrderRepository) GetOrderByNo(orderNo string) (*models.OrderHeader, error) {
	var order models.OrderHeader
	err := r.DB.Preload("Details").Where("order_no = ?", orderNo).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// SearchDetails finds booked shipments by tracking number prefix.
func (r *OrderRepository) SearchDetails(trackingNumber string) ([]models.OrderDetail, error) {
	var details []models.OrderDetail
	err := r.DB.Where("tracking_number LIKE ?", trackingNumber+"%").
		Order("created_at DESC").
		Limit(200).
		Find(&details).Error
	return details, err
}

// generateOrderNo builds FO<yyyymm><seq>, resetting the sequence monthly.
func generateOrderNo(db *gorm.DB) string {
	now := time.Now()
	prefix := fmt.Sprintf("FO%s%s", now.Format("2006"), now.Format("01"))

	var last models.OrderHeader
	seq := 1
	if err := db.Where("order_no LIKE ?", prefix+"%").Order("order_no DESC").First(&last).Error; err == nil {
		var n int
		if _, err := fmt.Sscanf(last.OrderNo, prefix+"%04d", &n); err == nil {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s%04d", prefix, seq)
}
