package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/alimikegami/pharmacy-order-tracker/config"
	"github.com/alimikegami/pharmacy-order-tracker/internal/domain"
	"github.com/alimikegami/pharmacy-order-tracker/internal/dto"
	localmiddleware "github.com/alimikegami/pharmacy-order-tracker/internal/middleware"
	"github.com/alimikegami/pharmacy-order-tracker/internal/repository"
	"github.com/alimikegami/pharmacy-order-tracker/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type fakeUserRepository struct {
	usersByEmail map[string]domain.User
	nextID       int64
}

func (f *fakeUserRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return f.usersByEmail[email], nil
}

func (f *fakeUserRepository) AddUser(ctx context.Context, data domain.User) (int64, error) {
	f.nextID++
	data.ID = f.nextID
	f.usersByEmail[data.Email] = data
	return data.ID, nil
}

func (f *fakeUserRepository) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	for _, user := range f.usersByEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return domain.User{}, nil
}

type fakeOrderRepository struct {
	users    *fakeUserRepository
	orders   map[int64]domain.Order
	comments map[int64]domain.Comment
	history  []domain.OrderHistory
	nextID   int64
}

func (f *fakeOrderRepository) userName(id int64) string {
	for _, user := range f.users.usersByEmail {
		if user.ID == id {
			return user.Name
		}
	}
	return ""
}

func (f *fakeOrderRepository) withCreatorName(order domain.Order) domain.Order {
	if order.CreatedBy != nil {
		if name := f.userName(*order.CreatedBy); name != "" {
			order.CreatedByName = &name
		}
	}
	return order
}

func (f *fakeOrderRepository) GetOrders(ctx context.Context) ([]domain.Order, error) {
	data := []domain.Order{}
	for _, order := range f.orders {
		data = append(data, f.withCreatorName(order))
	}
	sort.Slice(data, func(i, j int) bool { return data[i].ID > data[j].ID })
	return data, nil
}

func (f *fakeOrderRepository) GetOrderByID(ctx context.Context, id int64) (domain.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return domain.Order{}, nil
	}
	return f.withCreatorName(order), nil
}

func (f *fakeOrderRepository) AddOrder(ctx context.Context, data domain.Order) (int64, error) {
	f.nextID++
	data.ID = f.nextID
	data.DateCreated = time.Now().UnixMilli()
	f.orders[data.ID] = data
	return data.ID, nil
}

func (f *fakeOrderRepository) UpdateOrder(ctx context.Context, data domain.Order) error {
	stored := f.orders[data.ID]
	stored.PatientName = data.PatientName
	stored.PatientRx = data.PatientRx
	stored.DueDate = data.DueDate
	stored.Status = data.Status
	stored.OrderType = data.OrderType
	f.orders[data.ID] = stored
	return nil
}

func (f *fakeOrderRepository) DeleteOrder(ctx context.Context, id int64) error {
	delete(f.orders, id)
	for commentID, comment := range f.comments {
		if comment.OrderID == id {
			delete(f.comments, commentID)
		}
	}
	remaining := []domain.OrderHistory{}
	for _, entry := range f.history {
		if entry.OrderID != id {
			remaining = append(remaining, entry)
		}
	}
	f.history = remaining
	return nil
}

func (f *fakeOrderRepository) AddOrderHistory(ctx context.Context, data domain.OrderHistory) error {
	f.nextID++
	data.ID = f.nextID
	data.CreatedAt = time.Now().UnixMilli()
	data.UserName = f.userName(data.UserID)
	f.history = append(f.history, data)
	return nil
}

func (f *fakeOrderRepository) GetOrderHistory(ctx context.Context, orderID int64) ([]domain.OrderHistory, error) {
	data := []domain.OrderHistory{}
	for _, entry := range f.history {
		if entry.OrderID == orderID {
			data = append(data, entry)
		}
	}
	sort.Slice(data, func(i, j int) bool { return data[i].ID > data[j].ID })
	return data, nil
}

func (f *fakeOrderRepository) AddComment(ctx context.Context, data domain.Comment) (int64, error) {
	f.nextID++
	data.ID = f.nextID
	data.CreatedAt = time.Now().UnixMilli()
	data.UserName = f.userName(data.UserID)
	f.comments[data.ID] = data
	return data.ID, nil
}

func (f *fakeOrderRepository) GetCommentByID(ctx context.Context, id int64) (domain.Comment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return domain.Comment{}, nil
	}
	return comment, nil
}

func (f *fakeOrderRepository) GetCommentsByOrderID(ctx context.Context, orderID int64) ([]domain.Comment, error) {
	data := []domain.Comment{}
	for _, comment := range f.comments {
		if comment.OrderID == orderID {
			data = append(data, comment)
		}
	}
	sort.Slice(data, func(i, j int) bool { return data[i].ID > data[j].ID })
	return data, nil
}

func (f *fakeOrderRepository) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo repository.OrderRepository) error) error {
	return fn(ctx, f)
}

const testJWTSecret = "test-secret"

type APITestSuite struct {
	suite.Suite
	router *echo.Echo
}

func (s *APITestSuite) SetupTest() {
	conf := config.Config{JWTSecret: testJWTSecret}

	userRepo := &fakeUserRepository{usersByEmail: map[string]domain.User{}}
	orderRepo := &fakeOrderRepository{
		users:    userRepo,
		orders:   map[int64]domain.Order{},
		comments: map[int64]domain.Comment{},
	}

	e := echo.New()
	api := e.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	CreateUserController(api, service.CreateNewUserService(userRepo, conf))
	CreateOrderController(api, service.CreateOrderService(orderRepo, conf, nil), localmiddleware.IsLoggedIn(conf.JWTSecret))

	s.router = e
}

func (s *APITestSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		err := json.NewEncoder(&buf).Encode(body)
		s.Require().NoError(err)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	return rec
}

func (s *APITestSuite) registerUser(name, email string) dto.AuthResponse {
	rec := s.request(http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "123456",
	})
	s.Require().Equal(http.StatusCreated, rec.Code)

	var resp dto.AuthResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))

	return resp
}

func (s *APITestSuite) Test_Health() {
	rec := s.request(http.MethodGet, "/api/health", "", nil)

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"ok"}`, rec.Body.String())
}

func (s *APITestSuite) Test_OrdersRequireToken() {
	rec := s.request(http.MethodGet, "/api/orders", "", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.request(http.MethodGet, "/api/orders", "not-a-token", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *APITestSuite) Test_Register_Failures() {
	rec := s.request(http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: "alice@example.com"})
	s.Equal(http.StatusBadRequest, rec.Code)

	s.registerUser("Alice", "alice@example.com")

	rec = s.request(http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "123456"})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APITestSuite) Test_Login_InvalidCredentials() {
	s.registerUser("Alice", "alice@example.com")

	rec := s.request(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	s.Equal(http.StatusUnauthorized, rec.Code)

	var errResp map[string]string
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &errResp))
	s.Equal("Invalid credentials", errResp["error"])
}

func (s *APITestSuite) Test_EndToEndOrderFlow() {
	auth := s.registerUser("Alice", "alice@example.com")
	token := auth.Token

	// create an order due tomorrow with no status or type
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	rec := s.request(http.MethodPost, "/api/orders", token, dto.OrderRequest{
		PatientName: "Jane Doe",
		DueDate:     tomorrow,
	})
	s.Require().Equal(http.StatusCreated, rec.Code)

	var created dto.OrderResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	s.Equal(domain.TypeStock, created.OrderType)
	s.Equal(domain.StatusOpen, created.Status)
	s.Require().NotNil(created.CreatedByName)
	s.Equal("Alice", *created.CreatedByName)

	// the snapshot lists it with its comments
	rec = s.request(http.MethodGet, "/api/orders", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var list []dto.OrderResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &list))
	s.Require().Len(list, 1)
	s.Equal(created.ID, list[0].ID)

	// board flags it due soon in the Open column
	rec = s.request(http.MethodGet, "/api/orders/board", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var boardResp dto.BoardResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &boardResp))
	s.Require().Len(boardResp.Columns, 5)
	s.Require().Len(boardResp.Columns[0].Orders, 1)
	s.True(boardResp.Columns[0].Orders[0].DueSoon)

	// detail view carries the creation audit entry
	rec = s.request(http.MethodGet, fmt.Sprintf("/api/orders/%d", created.ID), token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var detail dto.OrderDetailResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &detail))
	s.Require().Len(detail.History, 1)
	s.Equal("status", detail.History[0].FieldName)
	s.Nil(detail.History[0].OldValue)
	s.Equal(domain.StatusOpen, detail.History[0].NewValue)

	// comment on it
	rec = s.request(http.MethodPost, fmt.Sprintf("/api/orders/%d/comments", created.ID), token, dto.CommentRequest{Comment: "called the patient"})
	s.Require().Equal(http.StatusCreated, rec.Code)

	var comment dto.CommentResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &comment))
	s.Equal("Alice", comment.UserName)

	// move it through the workflow
	rec = s.request(http.MethodPut, fmt.Sprintf("/api/orders/%d", created.ID), token, map[string]string{"status": domain.StatusInProgress})
	s.Require().Equal(http.StatusOK, rec.Code)

	var updated dto.OrderResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &updated))
	s.Equal(domain.StatusInProgress, updated.Status)

	// delete it and verify it is gone
	rec = s.request(http.MethodDelete, fmt.Sprintf("/api/orders/%d", created.ID), token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.request(http.MethodGet, fmt.Sprintf("/api/orders/%d", created.ID), token, nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *APITestSuite) Test_OrderValidationAndNotFound() {
	auth := s.registerUser("Alice", "alice@example.com")
	token := auth.Token

	rec := s.request(http.MethodPost, "/api/orders", token, dto.OrderRequest{PatientName: "Jane Doe"})
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.request(http.MethodGet, "/api/orders/999", token, nil)
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.request(http.MethodPut, "/api/orders/999", token, map[string]string{"status": domain.StatusOpen})
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.request(http.MethodDelete, "/api/orders/999", token, nil)
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.request(http.MethodPost, "/api/orders/999/comments", token, dto.CommentRequest{Comment: "hello"})
	s.Equal(http.StatusNotFound, rec.Code)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
