package repository

import (
	"context"
	"edunity_backend/internal/model"

	"gorm.io/gorm"
)

// OrderRepository 订单数据由支付模块写入，这里只做购买校验
type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// paidItems 有效订单项 + 有效且已支付的订单
func (r *OrderRepository) paidItems(ctx context.Context, userID uint) *gorm.DB {
	return r.DB.WithContext(ctx).Model(&model.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id AND orders.deleted_at IS NULL").
		Where("orders.user_id = ? AND orders.status = ? AND orders.payment_status = ?",
			userID, model.StatusActive, model.PaymentPaid).
		Where("order_items.status = ?", model.StatusActive)
}

// HasPaidCourse 用户是否已购买该课程
func (r *OrderRepository) HasPaidCourse(ctx context.Context, userID, courseID uint) (bool, error) {
	var count int64
	err := r.paidItems(ctx, userID).
		Where("order_items.course_id = ?", courseID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListPaidCourseIDs 用户已购买的全部课程 ID（去重）
func (r *OrderRepository) ListPaidCourseIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.paidItems(ctx, userID).
		Distinct("order_items.course_id").
		Order("order_items.course_id").
		Pluck("order_items.course_id", &ids).Error
	return ids, err
}
