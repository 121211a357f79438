package repository

import (
	"context"

	"github.com/alimikegami/pharmacy-order-tracker/internal/domain"
)

type OrderRepository interface {
	GetOrders(ctx context.Context) (data []domain.Order, err error)
	GetOrderByID(ctx context.Context, id int64) (data domain.Order, err error)
	AddOrder(ctx context.Context, data domain.Order) (id int64, err error)
	UpdateOrder(ctx context.Context, data domain.Order) (err error)
	DeleteOrder(ctx context.Context, id int64) (err error)
	AddOrderHistory(ctx context.Context, data domain.OrderHistory) (err error)
	GetOrderHistory(ctx context.Context, orderID int64) (data []domain.OrderHistory, err error)
	AddComment(ctx context.Context, data domain.Comment) (id int64, err error)
	GetCommentByID(ctx context.Context, id int64) (data domain.Comment, err error)
	GetCommentsByOrderID(ctx context.Context, orderID int64) (data []domain.Comment, err error)
	HandleTrx(ctx context.Context, fn func(ctx context.Context, repo OrderRepository) error) error
}
