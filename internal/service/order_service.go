package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"go-storefront-admin/internal/apperr"
	"go-storefront-admin/internal/model"
	"go-storefront-admin/internal/remote"
	"go-storefront-admin/pkg/logger"
	"go-storefront-admin/pkg/validator"
)

type OrderService interface {
	List(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id string, status string) error
}

type orderService struct {
	store    remote.Store
	notifier Notifier
	log      *zap.Logger
}

func NewOrderService(store remote.Store, notifier Notifier, log *zap.Logger) OrderService {
	return &orderService{
		store:    store,
		notifier: notifierOrNop(notifier),
		log:      logger.OrNop(log).Named("orders"),
	}
}

// List has no offline fallback: an unreachable backend is an error.
func (s *orderService) List(ctx context.Context) ([]model.Order, error) {
	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		s.log.Warn("failed to load orders", zap.Error(err))
		s.notifier.Error(apperr.UserMessage(err))
		return nil, err
	}
	return orders, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id string, status string) error {
	req := model.UpdateOrderStatusRequest{Status: strings.ToLower(strings.TrimSpace(status))}
	var err error
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		err = apperr.Validation("status", "Unknown order status")
	} else {
		err = s.store.UpdateOrderStatus(ctx, id, req.Status)
	}
	if err != nil {
		s.notifier.Error(apperr.UserMessage(err))
		return err
	}
	s.notifier.Success("Order status updated")
	return nil
}
