package repository

import (
	"context"
	"errors"

	"github.com/Behyna/paymentbot/internal/model"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var ErrPaymentEventExisted = errors.New("PAYMENT_EVENT_EXISTED")

const mysqlDuplicateEntry = 1062

type PaymentEventRepository interface {
	Create(ctx context.Context, event *model.PaymentEvent) error
	GetByChargeID(ctx context.Context, kind, chargeID string) (*model.PaymentEvent, error)
}

type paymentEvent struct {
	db *gorm.DB
}

func NewPaymentEventRepository(db *gorm.DB) PaymentEventRepository {
	return &paymentEvent{db: db}
}

func (p *paymentEvent) Create(ctx context.Context, event *model.PaymentEvent) error {
	err := p.db.WithContext(ctx).Create(event).Error
	if err == nil {
		return nil
	}

	if isDuplicateEntry(err) {
		return ErrPaymentEventExisted
	}

	return err
}

func (p *paymentEvent) GetByChargeID(ctx context.Context, kind, chargeID string) (*model.PaymentEvent, error) {
	var event model.PaymentEvent
	err := p.db.WithContext(ctx).
		Where("kind = ? AND telegram_payment_charge_id = ?", kind, chargeID).
		First(&event).Error
	if err != nil {
		return nil, err
	}

	return &event, nil
}

func isDuplicateEntry(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
