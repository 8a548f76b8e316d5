package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jwalitptl/club-admin-api/internal/email"
	"github.com/jwalitptl/club-admin-api/internal/model"
	"github.com/jwalitptl/club-admin-api/internal/repository"
	"github.com/jwalitptl/club-admin-api/internal/service/event"
	apperrors "github.com/jwalitptl/club-admin-api/pkg/errors"
	"github.com/jwalitptl/club-admin-api/pkg/logger"
)

// Service handles orders and the settlement of tabs. No payment provider is
// called; charging a tab only records it as paid.
type Service struct {
	orders repository.OrderRepository
	mailer email.Service
	events event.Recorder
	logger *logger.Logger
	now    func() time.Time
}

func NewService(orders repository.OrderRepository, mailer email.Service, events event.Recorder, log *logger.Logger) *Service {
	if mailer == nil {
		mailer = email.Noop{}
	}
	if events == nil {
		events = event.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{orders: orders, mailer: mailer, events: events, logger: log, now: time.Now}
}

func (s *Service) ListOrders(ctx context.Context, filter *model.OrderFilter) ([]*model.Order, error) {
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListInvoices renders orders as invoices, newest first. Pending and Tab
// orders are both Unpaid.
func (s *Service) ListInvoices(ctx context.Context, filter *model.InvoiceFilter) ([]*model.Invoice, error) {
	orderFilter := &model.OrderFilter{}
	if filter != nil && filter.Status == model.InvoiceStatusPaid {
		orderFilter.Status = model.OrderStatusPaid
	}
	orders, err := s.orders.List(ctx, orderFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	invoices := make([]*model.Invoice, 0, len(orders))
	for _, o := range orders {
		inv := model.InvoiceFromOrder(o)
		if filter != nil && filter.Status != "" && inv.Status != filter.Status {
			continue
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

func (s *Service) CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.Order, error) {
	for _, item := range req.Items {
		if item.Price.IsNegative() {
			return nil, apperrors.BadRequest(fmt.Sprintf("item %q has a negative price", item.Name), nil)
		}
	}

	order := &model.Order{}
	req.Apply(order)
	if order.Total.IsNegative() {
		return nil, apperrors.BadRequest("total cannot be negative", nil)
	}
	if order.Status == model.OrderStatusPaid {
		now := s.now()
		order.ChargedAt = &now
	}

	err := s.events.InTx(ctx, func(ctx context.Context) error {
		if err := s.orders.Create(ctx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return s.events.Emit(ctx, model.EventOrderCreated, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

// ChargeTabs settles every open tab at once. Receipts are sent after the
// charge commits on a best-effort basis; a failed receipt does not undo it.
func (s *Service) ChargeTabs(ctx context.Context) (*model.ChargeTabsResult, error) {
	result := &model.ChargeTabsResult{Total: decimal.Zero}
	err := s.events.InTx(ctx, func(ctx context.Context) error {
		charged, err := s.orders.ChargeTabs(ctx, s.now())
		if err != nil {
			return fmt.Errorf("failed to charge tabs: %w", err)
		}

		result.Orders = charged
		ids := make([]int64, 0, len(charged))
		for _, o := range charged {
			result.Charged++
			result.Total = result.Total.Add(o.Total)
			ids = append(ids, o.ID)
		}
		if result.Charged == 0 {
			return nil
		}
		return s.events.Emit(ctx, model.EventTabsCharged, map[string]interface{}{
			"orderIds": ids,
			"total":    result.Total,
		})
	})
	if err != nil {
		return nil, err
	}

	for _, o := range result.Orders {
		if err := s.mailer.SendReceipt(ctx, o); err != nil {
			s.logger.Warn("receipt not sent", "order_id", o.ID, "error", err.Error())
		}
	}
	s.logger.Info("tabs charged", "count", result.Charged, "total", result.Total.String())
	return result, nil
}
