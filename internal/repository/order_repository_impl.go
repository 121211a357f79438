package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/alimikegami/pharmacy-order-tracker/internal/domain"
	"github.com/alimikegami/pharmacy-order-tracker/pkg/errs"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type OrderRepositoryImpl struct {
	db *sqlx.DB
	tx *sqlx.Tx
}

func CreateOrderRepository(db *sqlx.DB) OrderRepository {
	return &OrderRepositoryImpl{
		db: db,
	}
}

func (r *OrderRepositoryImpl) GetOrders(ctx context.Context) (data []domain.Order, err error) {
	err = r.db.SelectContext(ctx, &data, "SELECT o.*, u.name AS created_by_name FROM orders o LEFT JOIN users u ON o.created_by = u.id ORDER BY o.date_created DESC, o.id DESC")
	if err != nil {
		log.Error().Err(err).Str("component", "GetOrders").Msg("")
		return nil, errs.ErrInternalServer
	}

	return
}

func (r *OrderRepositoryImpl) GetOrderByID(ctx context.Context, id int64) (data domain.Order, err error) {
	row := r.db.QueryRowxContext(ctx, "SELECT o.*, u.name AS created_by_name FROM orders o LEFT JOIN users u ON o.created_by = u.id WHERE o.id = $1", id)
	err = row.StructScan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, nil
		}
		log.Error().Err(err).Str("component", "GetOrderByID").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *OrderRepositoryImpl) AddOrder(ctx context.Context, data domain.Order) (id int64, err error) {
	data.DateCreated = time.Now().UnixMilli()

	nstmt, err := r.tx.PrepareNamedContext(ctx, "INSERT INTO orders(patient_name, patient_rx, status, order_type, due_date, date_created, created_by) VALUES (:patient_name, :patient_rx, :status, :order_type, :due_date, :date_created, :created_by) returning id")
	if err != nil {
		log.Error().Err(err).Str("component", "AddOrder").Msg("")
		return
	}

	err = nstmt.GetContext(ctx, &data.ID, data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddOrder").Msg("")
		return
	}

	return data.ID, nil
}

func (r *OrderRepositoryImpl) UpdateOrder(ctx context.Context, data domain.Order) (err error) {
	_, err = r.tx.NamedExecContext(ctx, "UPDATE orders SET patient_name=:patient_name, patient_rx=:patient_rx, due_date=:due_date, status=:status, order_type=:order_type WHERE id=:id", data)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateOrder").Msg("")
		return
	}

	return nil
}

func (r *OrderRepositoryImpl) DeleteOrder(ctx context.Context, id int64) (err error) {
	// comments and order_history rows go with the order via ON DELETE CASCADE
	_, err = r.db.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		log.Error().Err(err).Str("component", "DeleteOrder").Msg("")
		return errs.ErrInternalServer
	}

	return nil
}

func (r *OrderRepositoryImpl) AddOrderHistory(ctx context.Context, data domain.OrderHistory) (err error) {
	data.CreatedAt = time.Now().UnixMilli()

	_, err = r.tx.NamedExecContext(ctx, "INSERT INTO order_history(order_id, user_id, field_name, old_value, new_value, created_at) VALUES (:order_id, :user_id, :field_name, :old_value, :new_value, :created_at)", data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddOrderHistory").Msg("")
		return
	}

	return nil
}

func (r *OrderRepositoryImpl) GetOrderHistory(ctx context.Context, orderID int64) (data []domain.OrderHistory, err error) {
	err = r.db.SelectContext(ctx, &data, "SELECT h.*, u.name AS user_name FROM order_history h JOIN users u ON h.user_id = u.id WHERE h.order_id = $1 ORDER BY h.created_at DESC, h.id DESC", orderID)
	if err != nil {
		log.Error().Err(err).Str("component", "GetOrderHistory").Msg("")
		return nil, errs.ErrInternalServer
	}

	return
}

func (r *OrderRepositoryImpl) AddComment(ctx context.Context, data domain.Comment) (id int64, err error) {
	data.CreatedAt = time.Now().UnixMilli()

	nstmt, err := r.db.PrepareNamedContext(ctx, "INSERT INTO comments(order_id, user_id, comment, created_at) VALUES (:order_id, :user_id, :comment, :created_at) returning id")
	if err != nil {
		log.Error().Err(err).Str("component", "AddComment").Msg("")
		return
	}

	err = nstmt.GetContext(ctx, &data.ID, data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddComment").Msg("")
		return
	}

	return data.ID, nil
}

func (r *OrderRepositoryImpl) GetCommentByID(ctx context.Context, id int64) (data domain.Comment, err error) {
	row := r.db.QueryRowxContext(ctx, "SELECT c.*, u.name AS user_name FROM comments c JOIN users u ON c.user_id = u.id WHERE c.id = $1", id)
	err = row.StructScan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, nil
		}
		log.Error().Err(err).Str("component", "GetCommentByID").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *OrderRepositoryImpl) GetCommentsByOrderID(ctx context.Context, orderID int64) (data []domain.Comment, err error) {
	err = r.db.SelectContext(ctx, &data, "SELECT c.*, u.name AS user_name FROM comments c JOIN users u ON c.user_id = u.id WHERE c.order_id = $1 ORDER BY c.created_at DESC, c.id DESC", orderID)
	if err != nil {
		log.Error().Err(err).Str("component", "GetCommentsByOrderID").Msg("")
		return nil, errs.ErrInternalServer
	}

	return
}

func (r *OrderRepositoryImpl) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo OrderRepository) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	trxRepo := &OrderRepositoryImpl{
		db: r.db,
		tx: tx,
	}

	err = fn(ctx, trxRepo)

	return err
}
