package model

import "time"

type PaymentEvent struct {
	ID                      int64     `gorm:"primaryKey;autoIncrement"`
	Kind                    string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_charge_kind,priority:2"`
	TelegramPaymentChargeID string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_charge_kind,priority:1"`
	ProviderPaymentChargeID string    `gorm:"type:varchar(128)"`
	ChatID                  int64     `gorm:"not null;index"`
	UserID                  int64     `gorm:"not null;index"`
	Currency                string    `gorm:"type:varchar(8);not null"`
	TotalAmount             int       `gorm:"not null"`
	Payload                 string    `gorm:"type:varchar(128)"`
	OccurredAt              time.Time `gorm:"not null"`
	CreatedAt               time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}
