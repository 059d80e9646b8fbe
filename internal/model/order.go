package model

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Order 由支付模块写入，本服务只读
type Order struct {
	BaseModel
	UserID        uint          `gorm:"index;not null" json:"userId"`
	PaymentStatus PaymentStatus `gorm:"size:20;default:'pending'" json:"paymentStatus"`
	Status        Status        `gorm:"size:20;default:'active'" json:"status"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	BaseModel
	OrderID  uint   `gorm:"index;not null" json:"orderId"`
	CourseID uint   `gorm:"index;not null" json:"courseId"`
	Status   Status `gorm:"size:20;default:'active'" json:"status"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
