package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/alimikegami/pharmacy-order-tracker/config"
	"github.com/alimikegami/pharmacy-order-tracker/internal/board"
	"github.com/alimikegami/pharmacy-order-tracker/internal/domain"
	"github.com/alimikegami/pharmacy-order-tracker/internal/dto"
	"github.com/alimikegami/pharmacy-order-tracker/internal/repository"
	"github.com/alimikegami/pharmacy-order-tracker/pkg/errs"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

type OrderService interface {
	GetOrders(ctx context.Context, filter dto.OrderFilter) (respPayload []dto.OrderResponse, err error)
	GetBoard(ctx context.Context) (respPayload dto.BoardResponse, err error)
	GetOrder(ctx context.Context, id int64) (respPayload dto.OrderDetailResponse, err error)
	AddOrder(ctx context.Context, userID int64, payload dto.OrderRequest) (respPayload dto.OrderResponse, err error)
	UpdateOrder(ctx context.Context, userID int64, id int64, payload dto.UpdateOrderRequest) (respPayload dto.OrderResponse, err error)
	DeleteOrder(ctx context.Context, id int64) (err error)
	AddComment(ctx context.Context, userID int64, orderID int64, payload dto.CommentRequest) (respPayload dto.CommentResponse, err error)
}

type OrderServiceImpl struct {
	repo          repository.OrderRepository
	config        config.Config
	kafkaProducer *kafka.Conn
}

func CreateOrderService(repo repository.OrderRepository, config config.Config, kafkaProducer *kafka.Conn) OrderService {
	return &OrderServiceImpl{repo: repo, config: config, kafkaProducer: kafkaProducer}
}

func (s *OrderServiceImpl) GetOrders(ctx context.Context, filter dto.OrderFilter) (respPayload []dto.OrderResponse, err error) {
	orders, err := s.repo.GetOrders(ctx)
	if err != nil {
		return nil, err
	}

	orders = board.Apply(orders, board.Filter{
		Search:    filter.Search,
		Status:    filter.Status,
		OrderType: filter.OrderType,
		DueFrom:   filter.DueFrom,
		DueTo:     filter.DueTo,
	})

	respPayload = []dto.OrderResponse{}
	for _, order := range orders {
		comments, err := s.repo.GetCommentsByOrderID(ctx, order.ID)
		if err != nil {
			return nil, err
		}

		respPayload = append(respPayload, toOrderResponse(order, comments))
	}

	return respPayload, nil
}

func (s *OrderServiceImpl) GetBoard(ctx context.Context) (respPayload dto.BoardResponse, err error) {
	orders, err := s.repo.GetOrders(ctx)
	if err != nil {
		return
	}

	now := time.Now()
	respPayload.Columns = []dto.BoardColumn{}
	for _, column := range board.Partition(orders) {
		boardColumn := dto.BoardColumn{Status: column.Status, Orders: []dto.BoardOrder{}}
		for _, order := range column.Orders {
			boardColumn.Orders = append(boardColumn.Orders, dto.BoardOrder{
				OrderResponse: toOrderResponse(order, nil),
				DueSoon:       board.IsDueSoon(order.DueDate, now),
			})
		}
		respPayload.Columns = append(respPayload.Columns, boardColumn)
	}

	return respPayload, nil
}

func (s *OrderServiceImpl) GetOrder(ctx context.Context, id int64) (respPayload dto.OrderDetailResponse, err error) {
	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return
	}

	if order.ID == 0 {
		return respPayload, errs.ErrOrderNotFound
	}

	comments, err := s.repo.GetCommentsByOrderID(ctx, order.ID)
	if err != nil {
		return
	}

	history, err := s.repo.GetOrderHistory(ctx, order.ID)
	if err != nil {
		return
	}

	respPayload.OrderResponse = toOrderResponse(order, comments)
	respPayload.History = []dto.HistoryResponse{}
	for _, entry := range history {
		respPayload.History = append(respPayload.History, dto.HistoryResponse{
			ID:        entry.ID,
			OrderID:   entry.OrderID,
			UserID:    entry.UserID,
			FieldName: entry.FieldName,
			OldValue:  entry.OldValue,
			NewValue:  entry.NewValue,
			CreatedAt: entry.CreatedAt,
			UserName:  entry.UserName,
		})
	}

	return respPayload, nil
}

func (s *OrderServiceImpl) AddOrder(ctx context.Context, userID int64, payload dto.OrderRequest) (respPayload dto.OrderResponse, err error) {
	if payload.PatientName == "" || payload.DueDate == "" {
		return respPayload, errs.ErrMissingOrderFields
	}

	status := payload.Status
	if status == "" {
		status = domain.StatusOpen
	}

	orderType := payload.OrderType
	if !domain.IsValidOrderType(orderType) {
		orderType = domain.TypeStock
	}

	order := domain.Order{
		PatientName: payload.PatientName,
		PatientRx:   payload.PatientRx,
		Status:      status,
		OrderType:   orderType,
		DueDate:     payload.DueDate,
		CreatedBy:   &userID,
	}

	var id int64
	err = s.repo.HandleTrx(ctx, func(ctx context.Context, repo repository.OrderRepository) error {
		id, err = repo.AddOrder(ctx, order)
		if err != nil {
			return err
		}

		return repo.AddOrderHistory(ctx, domain.OrderHistory{
			OrderID:   id,
			UserID:    userID,
			FieldName: "status",
			OldValue:  nil,
			NewValue:  status,
		})
	})
	if err != nil {
		return respPayload, errs.ErrInternalServer
	}

	stored, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return
	}

	respPayload = toOrderResponse(stored, nil)

	s.publishOrderEvent("order_created", respPayload)

	return respPayload, nil
}

func (s *OrderServiceImpl) UpdateOrder(ctx context.Context, userID int64, id int64, payload dto.UpdateOrderRequest) (respPayload dto.OrderResponse, err error) {
	current, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return
	}

	if current.ID == 0 {
		return respPayload, errs.ErrOrderNotFound
	}

	updated := current
	diffs := []domain.OrderHistory{}

	appendDiff := func(fieldName string, oldValue *string, newValue string) {
		diffs = append(diffs, domain.OrderHistory{
			OrderID:   id,
			UserID:    userID,
			FieldName: fieldName,
			OldValue:  oldValue,
			NewValue:  newValue,
		})
	}

	if payload.PatientName != "" && payload.PatientName != current.PatientName {
		appendDiff("patient_name", strPtr(current.PatientName), payload.PatientName)
		updated.PatientName = payload.PatientName
	}

	if payload.DueDate != "" && payload.DueDate != current.DueDate {
		appendDiff("due_date", strPtr(current.DueDate), payload.DueDate)
		updated.DueDate = payload.DueDate
	}

	if payload.PatientRx != nil {
		if current.PatientRx == nil || *payload.PatientRx != *current.PatientRx {
			appendDiff("patient_rx", current.PatientRx, *payload.PatientRx)
			updated.PatientRx = payload.PatientRx
		}
	}

	statusChanged := false
	if payload.Status != nil && *payload.Status != current.Status {
		appendDiff("status", strPtr(current.Status), *payload.Status)
		updated.Status = *payload.Status
		statusChanged = true
	}

	if payload.OrderType != nil {
		// an unrecognized type silently keeps the stored value
		incoming := *payload.OrderType
		if !domain.IsValidOrderType(incoming) {
			incoming = current.OrderType
			if incoming == "" {
				incoming = domain.TypeStock
			}
		}

		if incoming != current.OrderType {
			appendDiff("order_type", strPtr(current.OrderType), incoming)
			updated.OrderType = incoming
		}
	}

	if len(diffs) > 0 {
		err = s.repo.HandleTrx(ctx, func(ctx context.Context, repo repository.OrderRepository) error {
			if err := repo.UpdateOrder(ctx, updated); err != nil {
				return err
			}

			for _, diff := range diffs {
				if err := repo.AddOrderHistory(ctx, diff); err != nil {
					return err
				}
			}

			return nil
		})
		if err != nil {
			return respPayload, errs.ErrInternalServer
		}
	}

	stored, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return
	}

	respPayload = toOrderResponse(stored, nil)

	if statusChanged {
		s.publishOrderEvent("order_status_updated", respPayload)
	}

	return respPayload, nil
}

func (s *OrderServiceImpl) DeleteOrder(ctx context.Context, id int64) (err error) {
	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return
	}

	if order.ID == 0 {
		return errs.ErrOrderNotFound
	}

	if err = s.repo.DeleteOrder(ctx, id); err != nil {
		return err
	}

	s.publishOrderEvent("order_deleted", toOrderResponse(order, nil))

	return nil
}

func (s *OrderServiceImpl) AddComment(ctx context.Context, userID int64, orderID int64, payload dto.CommentRequest) (respPayload dto.CommentResponse, err error) {
	if payload.Comment == "" {
		return respPayload, errs.ErrMissingComment
	}

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return
	}

	if order.ID == 0 {
		return respPayload, errs.ErrOrderNotFound
	}

	id, err := s.repo.AddComment(ctx, domain.Comment{
		OrderID: orderID,
		UserID:  userID,
		Comment: payload.Comment,
	})
	if err != nil {
		return respPayload, errs.ErrInternalServer
	}

	comment, err := s.repo.GetCommentByID(ctx, id)
	if err != nil {
		return
	}

	return dto.CommentResponse{
		ID:        comment.ID,
		OrderID:   comment.OrderID,
		UserID:    comment.UserID,
		Comment:   comment.Comment,
		CreatedAt: comment.CreatedAt,
		UserName:  comment.UserName,
	}, nil
}

func (s *OrderServiceImpl) publishOrderEvent(eventType string, data dto.OrderResponse) {
	if s.kafkaProducer == nil {
		return
	}

	kafkaMsg := dto.KafkaMessage{
		EventType: eventType,
		Data:      data,
	}

	jsonMsg, err := json.Marshal(kafkaMsg)
	if err != nil {
		log.Error().Err(err).Str("component", "publishOrderEvent").Msg("")
		return
	}

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		_, err = s.kafkaProducer.WriteMessages(kafka.Message{Value: jsonMsg})
		if err == nil {
			return
		}
		time.Sleep(time.Second * time.Duration(i+1))
	}

	// the mutation already committed; a lost event must not fail the request
	log.Error().Err(err).Str("component", "publishOrderEvent").Str("event_type", eventType).Msg("giving up after retries")
}

func toOrderResponse(order domain.Order, comments []domain.Comment) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:            order.ID,
		PatientName:   order.PatientName,
		PatientRx:     order.PatientRx,
		Status:        order.Status,
		OrderType:     order.OrderType,
		DateCreated:   order.DateCreated,
		DueDate:       order.DueDate,
		CreatedBy:     order.CreatedBy,
		CreatedByName: order.CreatedByName,
		Comments:      []dto.CommentResponse{},
	}

	for _, comment := range comments {
		resp.Comments = append(resp.Comments, dto.CommentResponse{
			ID:        comment.ID,
			OrderID:   comment.OrderID,
			UserID:    comment.UserID,
			Comment:   comment.Comment,
			CreatedAt: comment.CreatedAt,
			UserName:  comment.UserName,
		})
	}

	return resp
}

func strPtr(s string) *string {
	return &s
}
