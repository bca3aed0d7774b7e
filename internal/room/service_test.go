// File: internal/room/service_test.go
package room

import (
	"context"
	"testing"
	"time"

	"ktm_rentals_backend/internal/common"
	"ktm_rentals_backend/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockRoomRepository is a mock type for room.Repository
type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(ctx context.Context, room *Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Room), args.Error(1)
}

func (m *MockRoomRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Room, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Room), args.Error(1)
}

func (m *MockRoomRepository) FindAvailable(ctx context.Context) ([]Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Room), args.Error(1)
}

func (m *MockRoomRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]Room, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Room), args.Error(1)
}

func (m *MockRoomRepository) Update(ctx context.Context, room *Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoomRepository) SearchILike(ctx context.Context, term string) ([]Room, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Room), args.Error(1)
}

func (m *MockRoomRepository) FindByPriceRange(ctx context.Context, min, max float64) ([]Room, error) {
	args := m.Called(ctx, min, max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Room), args.Error(1)
}

func (m *MockRoomRepository) FindBatch(ctx context.Context, offset, limit int) ([]Room, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Room), args.Error(1)
}

func newTestRoomService(repo Repository) *ServiceImplementation {
	// nil search client exercises the database fallback paths.
	return NewService(repo, nil, &config.Config{}, zap.NewNop())
}

func publishedRoom(ownerID uuid.UUID) *Room {
	desc := "Bright and quiet"
	return &Room{
		BaseModel:   common.BaseModel{ID: uuid.New(), CreatedAt: time.Now()},
		OwnerID:     ownerID,
		Slug:        "sunny-flat-ab12cd34",
		Title:       "Sunny flat",
		Location:    "Patan, Lalitpur",
		Description: &desc,
		Price:       25000,
		Bedrooms:    2,
		Bathrooms:   1,
		Available:   true,
	}
}

func TestGetRooms_NoRefinePassesThrough(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRoomRepository)
	svc := newTestRoomService(mockRepo)

	rooms := []Room{*publishedRoom(uuid.New()), *publishedRoom(uuid.New())}
	mockRepo.On("FindAvailable", ctx).Return(rooms, nil)

	got, err := svc.GetRooms(ctx, RefineOptions{})

	assert.NoError(t, err)
	assert.Len(t, got, 2)
	mockRepo.AssertExpectations(t)
}

func TestGetRooms_AppliesRefine(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRoomRepository)
	svc := newTestRoomService(mockRepo)

	matching := *publishedRoom(uuid.New())
	other := *publishedRoom(uuid.New())
	other.Title = "Quiet house"
	other.Location = "Bhaktapur"
	mockRepo.On("FindAvailable", ctx).Return([]Room{matching, other}, nil)

	got, err := svc.GetRooms(ctx, RefineOptions{Query: "patan"})

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, matching.ID, got[0].ID)
}

func TestUpdateRoom_OwnerOnly(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRoomRepository)
	svc := newTestRoomService(mockRepo)

	ownerID := uuid.New()
	existing := publishedRoom(ownerID)
	mockRepo.On("FindByID", ctx, existing.ID).Return(existing, nil)

	_, err := svc.UpdateRoom(ctx, existing.ID, UpdateRoomRequest{}, uuid.New(), common.RoleUser)

	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, common.ErrForbidden.Code, apiErr.Code)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateRoom_AppliesPartialFields(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRoomRepository)
	svc := newTestRoomService(mockRepo)

	ownerID := uuid.New()
	existing := publishedRoom(ownerID)
	mockRepo.On("FindByID", ctx, existing.ID).Return(existing, nil)
	mockRepo.On("Update", ctx, mock.MatchedBy(func(r *Room) bool {
		return r.Price == 30000 && r.Title == "Sunny flat" && !r.Available
	})).Return(nil)

	newPrice := 30000.0
	unavailable := false
	updated, err := svc.UpdateRoom(ctx, existing.ID, UpdateRoomRequest{
		Price:     &newPrice,
		Available: &unavailable,
	}, ownerID, common.RoleUser)

	assert.NoError(t, err)
	assert.Equal(t, 30000.0, updated.Price)
	assert.False(t, updated.Available)
	mockRepo.AssertExpectations(t)
}

func TestDeleteRoom_AdminCanRemoveAny(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRoomRepository)
	svc := newTestRoomService(mockRepo)

	existing := publishedRoom(uuid.New())
	mockRepo.On("FindByID", ctx, existing.ID).Return(existing, nil)
	mockRepo.On("Delete", ctx, existing.ID).Return(nil)

	err := svc.DeleteRoom(ctx, existing.ID, uuid.New(), common.RoleAdmin)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestDeleteRoom_StrangerForbidden(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRoomRepository)
	svc := newTestRoomService(mockRepo)

	existing := publishedRoom(uuid.New())
	mockRepo.On("FindByID", ctx, existing.ID).Return(existing, nil)

	err := svc.DeleteRoom(ctx, existing.ID, uuid.New(), common.RoleUser)

	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, common.ErrForbidden.Code, apiErr.Code)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestSearchRooms_NoIndexFallsBackToDatabase(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRoomRepository)
	svc := newTestRoomService(mockRepo)

	rooms := []Room{*publishedRoom(uuid.New())}
	mockRepo.On("SearchILike", ctx, "patan").Return(rooms, nil)

	got, err := svc.SearchRooms(ctx, "  patan ")

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	mockRepo.AssertExpectations(t)
}

func TestSearchRooms_EmptyTermListsAll(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRoomRepository)
	svc := newTestRoomService(mockRepo)

	mockRepo.On("FindAvailable", ctx).Return([]Room{}, nil)

	got, err := svc.SearchRooms(ctx, "   ")

	assert.NoError(t, err)
	assert.Empty(t, got)
	mockRepo.AssertNotCalled(t, "SearchILike", mock.Anything, mock.Anything)
}

func TestFilterByPriceRange_RejectsInvalidRange(t *testing.T) {
	mockRepo := new(MockRoomRepository)
	svc := newTestRoomService(mockRepo)

	_, err := svc.FilterByPriceRange(context.Background(), 20000, 10000)

	apiErr, ok := common.IsAPIError(err)
	assert.True(t, ok)
	assert.Equal(t, common.ErrBadRequest.Code, apiErr.Code)
	mockRepo.AssertNotCalled(t, "FindByPriceRange", mock.Anything, mock.Anything, mock.Anything)
}

func TestFilterByPriceRange_QueriesRepository(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRoomRepository)
	svc := newTestRoomService(mockRepo)

	rooms := []Room{*publishedRoom(uuid.New())}
	mockRepo.On("FindByPriceRange", ctx, 5000.0, 30000.0).Return(rooms, nil)

	got, err := svc.FilterByPriceRange(ctx, 5000, 30000)

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	mockRepo.AssertExpectations(t)
}
