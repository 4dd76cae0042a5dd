package items_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/dkpatel/salestrack/internal/apperrors"
	"github.com/dkpatel/salestrack/internal/domain/models"
	"github.com/dkpatel/salestrack/internal/service/items"
)

// --- Mock sheet API client ---
type MockStoreClient struct {
	mock.Mock
}

func (m *MockStoreClient) ListAll(ctx context.Context) ([]models.RawItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RawItem), args.Error(1)
}

func (m *MockStoreClient) Create(ctx context.Context, item models.RawItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStoreClient) UpdateByUID(ctx context.Context, uid string, item models.RawItem) error {
	args := m.Called(ctx, uid, item)
	return args.Error(0)
}

func (m *MockStoreClient) DeleteByUID(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

// --- Test Suite ---
type ItemsServiceTestSuite struct {
	suite.Suite
	mockStore *MockStoreClient
	service   *items.Service
}

func (s *ItemsServiceTestSuite) SetupTest() {
	s.mockStore = new(MockStoreClient)
	s.service = items.NewService(s.mockStore, nil)
}

func rawFixture(uid, date, name, customer string) models.RawItem {
	return models.RawItem{
		UID:          uid,
		Date:         models.FlexString(date),
		ItemName:     name,
		Qty:          "1",
		CustomerName: customer,
		Price:        "10",
		DuePrice:     models.NA,
	}
}

// --- Add ---

func (s *ItemsServiceTestSuite) TestAdd_AppliesDefaults() {
	ctx := context.Background()
	today := time.Now().Format("2006-01-02")

	s.mockStore.On("Create", ctx, mock.MatchedBy(func(raw models.RawItem) bool {
		return len(raw.UID) == 5 &&
			raw.Date.String() == today &&
			raw.ItemName == "Pen" &&
			raw.Qty.String() == "1" &&
			raw.CustomerName == models.NA &&
			raw.Price.String() == "10" &&
			raw.DuePrice.String() == models.NA
	})).Return(nil).Once()

	item, err := s.service.Add(ctx, models.AddItemRequest{ItemName: "Pen", Price: "10"})

	s.Require().NoError(err)
	s.Len(item.UID, 5)
	s.Equal(today, item.Date)
	s.Equal("1", item.Qty)
	s.Equal(models.NA, item.CustomerName)
	s.Equal(models.NA, item.DuePrice)
	s.mockStore.AssertExpectations(s.T())
}

func (s *ItemsServiceTestSuite) TestAdd_KeepsProvidedFields() {
	ctx := context.Background()

	s.mockStore.On("Create", ctx, mock.MatchedBy(func(raw models.RawItem) bool {
		return raw.Date.String() == "2024-06-01" &&
			raw.Qty.String() == "3" &&
			raw.CustomerName == "John" &&
			raw.DuePrice.String() == "5.50"
	})).Return(nil).Once()

	item, err := s.service.Add(ctx, models.AddItemRequest{
		Date:         "2024-06-01",
		ItemName:     "Notebook",
		Qty:          "3",
		CustomerName: "John",
		Price:        "120",
		DuePrice:     "5.50",
	})

	s.Require().NoError(err)
	s.Equal("2024-06-01", item.Date)
	s.mockStore.AssertExpectations(s.T())
}

func (s *ItemsServiceTestSuite) TestAdd_MissingItemName() {
	_, err := s.service.Add(context.Background(), models.AddItemRequest{Price: "10"})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockStore.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *ItemsServiceTestSuite) TestAdd_MissingPrice() {
	_, err := s.service.Add(context.Background(), models.AddItemRequest{ItemName: "Pen"})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ItemsServiceTestSuite) TestAdd_NegativePrice() {
	_, err := s.service.Add(context.Background(), models.AddItemRequest{ItemName: "Pen", Price: "-10"})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ItemsServiceTestSuite) TestAdd_StoreError() {
	ctx := context.Background()
	storeErr := &apperrors.StoreError{Status: 500, Body: "boom"}

	s.mockStore.On("Create", ctx, mock.AnythingOfType("models.RawItem")).Return(storeErr).Once()

	_, err := s.service.Add(ctx, models.AddItemRequest{ItemName: "Pen", Price: "10"})

	s.Require().Error(err)
	se, ok := apperrors.IsStoreError(err)
	s.Require().True(ok)
	s.Equal(500, se.Status)
}

// --- List ---

func (s *ItemsServiceTestSuite) TestList_SortsByDateDescending() {
	ctx := context.Background()

	s.mockStore.On("ListAll", ctx).Return([]models.RawItem{
		rawFixture("11111", "2024-06-01", "Pen", "John"),
		rawFixture("22222", "2024-06-03", "Ink", "Mary"),
		rawFixture("33333", "2024-06-02", "Pad", "NA"),
	}, nil).Once()

	list, err := s.service.List(ctx)

	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.Equal("22222", list[0].UID)
	s.Equal("33333", list[1].UID)
	s.Equal("11111", list[2].UID)
}

func (s *ItemsServiceTestSuite) TestList_StableOnEqualDates() {
	ctx := context.Background()

	rows := []models.RawItem{
		rawFixture("aaaaa", "2024-06-01", "First", "NA"),
		rawFixture("bbbbb", "2024-06-01", "Second", "NA"),
		rawFixture("ccccc", "2024-06-01", "Third", "NA"),
	}
	s.mockStore.On("ListAll", ctx).Return(rows, nil).Twice()

	first, err := s.service.List(ctx)
	s.Require().NoError(err)
	second, err := s.service.List(ctx)
	s.Require().NoError(err)

	s.Equal(first, second)
	s.Equal("aaaaa", first[0].UID)
	s.Equal("ccccc", first[2].UID)
}

func (s *ItemsServiceTestSuite) TestList_NormalizesSerialDates() {
	ctx := context.Background()

	s.mockStore.On("ListAll", ctx).Return([]models.RawItem{
		rawFixture("12345", "45844", "Pen", "NA"),
	}, nil).Once()

	list, err := s.service.List(ctx)

	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("2025-07-07", list[0].Date)
	s.Equal("07/07/2025", list[0].DisplayDate)
}

func (s *ItemsServiceTestSuite) TestList_StoreUnavailable() {
	ctx := context.Background()
	s.mockStore.On("ListAll", ctx).Return(nil, assert.AnError).Once()

	_, err := s.service.List(ctx)

	s.Require().Error(err)
	s.ErrorIs(err, assert.AnError)
}

// --- Search ---

func (s *ItemsServiceTestSuite) TestSearch_EmptyTermReturnsFullList() {
	ctx := context.Background()

	rows := []models.RawItem{
		rawFixture("11111", "2024-06-02", "Pen", "John"),
		rawFixture("22222", "2024-06-01", "Ink", "Mary"),
	}
	s.mockStore.On("ListAll", ctx).Return(rows, nil).Twice()

	all, err := s.service.List(ctx)
	s.Require().NoError(err)
	searched, err := s.service.Search(ctx, "")
	s.Require().NoError(err)

	s.Equal(all, searched)
}

func (s *ItemsServiceTestSuite) TestSearch_CaseInsensitive() {
	ctx := context.Background()

	rows := []models.RawItem{
		rawFixture("11111", "2024-06-02", "Pen", "John"),
		rawFixture("22222", "2024-06-01", "Ink", "Mary"),
	}
	s.mockStore.On("ListAll", ctx).Return(rows, nil).Twice()

	lower, err := s.service.Search(ctx, "john")
	s.Require().NoError(err)
	upper, err := s.service.Search(ctx, "JOHN")
	s.Require().NoError(err)

	s.Equal(lower, upper)
	s.Require().Len(lower, 1)
	s.Equal("11111", lower[0].UID)
}

func (s *ItemsServiceTestSuite) TestSearch_MatchesUID() {
	ctx := context.Background()

	s.mockStore.On("ListAll", ctx).Return([]models.RawItem{
		rawFixture("98765", "2024-06-01", "Pen", "NA"),
		rawFixture("11111", "2024-06-01", "Ink", "NA"),
	}, nil).Once()

	found, err := s.service.Search(ctx, "987")

	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal("98765", found[0].UID)
}

// --- Get / Update ---

func (s *ItemsServiceTestSuite) TestGet_NotFound() {
	ctx := context.Background()
	s.mockStore.On("ListAll", ctx).Return([]models.RawItem{}, nil).Once()

	_, err := s.service.Get(ctx, "00000")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ItemsServiceTestSuite) TestUpdate_MergesOverStoredRecord() {
	ctx := context.Background()

	current := rawFixture("11111", "2024-06-01", "Pen", "John")
	s.mockStore.On("ListAll", ctx).Return([]models.RawItem{current}, nil).Once()

	s.mockStore.On("UpdateByUID", ctx, "11111", mock.MatchedBy(func(raw models.RawItem) bool {
		// item name patched, price kept, empty customer falls back to NA
		return raw.ItemName == "Blue Pen" &&
			raw.Price.String() == "10" &&
			raw.CustomerName == models.NA &&
			raw.DuePrice.String() == models.NA
	})).Return(nil).Once()

	item, err := s.service.Update(ctx, "11111", models.UpdateItemRequest{ItemName: "Blue Pen"})

	s.Require().NoError(err)
	s.Equal("Blue Pen", item.ItemName)
	s.Equal(models.NA, item.CustomerName)
	s.mockStore.AssertExpectations(s.T())
}

func (s *ItemsServiceTestSuite) TestUpdate_NotFoundIsTerminal() {
	ctx := context.Background()
	s.mockStore.On("ListAll", ctx).Return([]models.RawItem{}, nil).Once()

	_, err := s.service.Update(ctx, "00000", models.UpdateItemRequest{ItemName: "X"})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockStore.AssertNotCalled(s.T(), "UpdateByUID", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ItemsServiceTestSuite) TestUpdate_InvalidPrice() {
	ctx := context.Background()
	s.mockStore.On("ListAll", ctx).Return([]models.RawItem{rawFixture("11111", "2024-06-01", "Pen", "NA")}, nil).Once()

	_, err := s.service.Update(ctx, "11111", models.UpdateItemRequest{Price: "abc"})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

// --- Delete / BulkDelete ---

func (s *ItemsServiceTestSuite) TestDelete_Success() {
	ctx := context.Background()
	s.mockStore.On("DeleteByUID", ctx, "11111").Return(nil).Once()

	s.Require().NoError(s.service.Delete(ctx, "11111"))
	s.mockStore.AssertExpectations(s.T())
}

func (s *ItemsServiceTestSuite) TestDelete_NotFoundSurfaced() {
	ctx := context.Background()
	s.mockStore.On("DeleteByUID", ctx, "11111").Return(apperrors.ErrNotFound).Once()

	err := s.service.Delete(ctx, "11111")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ItemsServiceTestSuite) TestBulkDelete_AllSucceed() {
	ctx := context.Background()
	for _, id := range []string{"a1111", "b2222", "c3333"} {
		s.mockStore.On("DeleteByUID", ctx, id).Return(nil).Once()
	}

	result, err := s.service.BulkDelete(ctx, []string{"a1111", "b2222", "c3333"})

	s.Require().NoError(err)
	s.Equal([]string{"a1111", "b2222", "c3333"}, result.Deleted)
	s.Empty(result.Failed)
	s.mockStore.AssertExpectations(s.T())
}

func (s *ItemsServiceTestSuite) TestBulkDelete_PartialFailure() {
	ctx := context.Background()
	s.mockStore.On("DeleteByUID", ctx, "a1111").Return(nil).Once()
	s.mockStore.On("DeleteByUID", ctx, "b2222").Return(&apperrors.StoreError{Status: 500, Body: "boom"}).Once()
	s.mockStore.On("DeleteByUID", ctx, "c3333").Return(nil).Once()

	result, err := s.service.BulkDelete(ctx, []string{"a1111", "b2222", "c3333"})

	// every delete is attempted, the failure is aggregated, no rollback
	s.Require().Error(err)
	s.Equal([]string{"a1111", "c3333"}, result.Deleted)
	s.Equal([]string{"b2222"}, result.Failed)
	s.mockStore.AssertExpectations(s.T())
}

func TestItemsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ItemsServiceTestSuite))
}
