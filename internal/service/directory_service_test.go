package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pharmacy-duty-api/internal/apperr"
	"pharmacy-duty-api/internal/dutydate"
	"pharmacy-duty-api/internal/models"
	"pharmacy-duty-api/internal/regions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDirectoryRepository is a mock implementation of DirectoryRepository.
type MockDirectoryRepository struct {
	mock.Mock
}

func (m *MockDirectoryRepository) ListCities(ctx context.Context, date string) ([]string, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDirectoryRepository) ListDistricts(ctx context.Context, city, date string) ([]string, error) {
	args := m.Called(ctx, city, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDirectoryRepository) ListPharmacies(ctx context.Context, city, district, date string) ([]models.Pharmacy, error) {
	args := m.Called(ctx, city, district, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Pharmacy), args.Error(1)
}

const testDate = "2025-03-15"

var cyprusAliases = []string{"Kıbrıs", "Kibris", "KIBRIS", "Kıbrıs (KKTC)"}

func newTestDirectoryService(repo DirectoryRepository) *DirectoryService {
	istanbul, err := time.LoadLocation("Europe/Istanbul")
	if err != nil {
		panic(err)
	}
	svc := NewDirectoryService(repo, regions.Default(), dutydate.NewResolver(istanbul, dutydate.DefaultCutoffHour))
	svc.now = func() time.Time {
		return time.Date(2025, 3, 15, 12, 0, 0, 0, istanbul)
	}
	return svc
}

func assertKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, kind, appErr.Kind)
}

func TestDirectoryService_ListCities(t *testing.T) {
	tests := []struct {
		name         string
		country      string
		mockCities   []string
		mockError    error
		expected     []string
		expectedKind apperr.Kind
		expectError  bool
	}{
		{
			name:       "all cities without discriminator",
			mockCities: []string{"Adana", "Ankara", "Kıbrıs", "İstanbul"},
			expected:   []string{"Adana", "Ankara", "Kıbrıs", "İstanbul"},
		},
		{
			name:       "cyprus filter keeps composite members only",
			country:    "cyprus",
			mockCities: []string{"Adana", "Kibris", "Kıbrıs", "İstanbul"},
			expected:   []string{"Kibris", "Kıbrıs"},
		},
		{
			name:       "turkey filter drops composite members",
			country:    "turkey",
			mockCities: []string{"Adana", "Kıbrıs", "İstanbul"},
			expected:   []string{"Adana", "İstanbul"},
		},
		{
			name:         "unknown discriminator is rejected",
			country:      "germany",
			expectError:  true,
			expectedKind: apperr.KindInvalidInput,
		},
		{
			name:         "repository failure",
			mockError:    errors.New("connection refused"),
			expectError:  true,
			expectedKind: apperr.KindRepository,
		},
		{
			name:         "empty roster day",
			mockCities:   []string{},
			expectError:  true,
			expectedKind: apperr.KindNotFound,
		},
		{
			name:         "filter producing nothing is not found",
			country:      "cyprus",
			mockCities:   []string{"Adana", "Ankara"},
			expectError:  true,
			expectedKind: apperr.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockDirectoryRepository)
			svc := newTestDirectoryService(mockRepo)

			if tt.mockCities != nil || tt.mockError != nil {
				mockRepo.On("ListCities", mock.Anything, testDate).Return(tt.mockCities, tt.mockError)
			}

			result, err := svc.ListCities(context.Background(), tt.country)

			if tt.expectError {
				assertKind(t, err, tt.expectedKind)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestDirectoryService_ListDistricts_PlainCity(t *testing.T) {
	mockRepo := new(MockDirectoryRepository)
	svc := newTestDirectoryService(mockRepo)

	mockRepo.On("ListDistricts", mock.Anything, "İstanbul", testDate).
		Return([]string{"Beşiktaş", "Kadıköy"}, nil)

	result, err := svc.ListDistricts(context.Background(), " İstanbul ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Beşiktaş", "Kadıköy"}, result)
	mockRepo.AssertExpectations(t)
}

func TestDirectoryService_ListDistricts_BlankCity(t *testing.T) {
	svc := newTestDirectoryService(new(MockDirectoryRepository))

	_, err := svc.ListDistricts(context.Background(), "   ")
	assertKind(t, err, apperr.KindInvalidInput)
}

func TestDirectoryService_ListDistricts_CompositeUnion(t *testing.T) {
	mockRepo := new(MockDirectoryRepository)
	svc := newTestDirectoryService(mockRepo)

	// The same district shows up under two spellings of the composite
	// region; the union must carry it once.
	mockRepo.On("ListDistricts", mock.Anything, "Kıbrıs", testDate).
		Return([]string{"Girne", "Lefkoşa"}, nil)
	mockRepo.On("ListDistricts", mock.Anything, "Kibris", testDate).
		Return([]string{"Lefkoşa ", "Gazimağusa"}, nil)
	mockRepo.On("ListDistricts", mock.Anything, "KIBRIS", testDate).
		Return([]string{}, nil)
	mockRepo.On("ListDistricts", mock.Anything, "Kıbrıs (KKTC)", testDate).
		Return([]string{}, nil)

	result, err := svc.ListDistricts(context.Background(), "kibris")
	require.NoError(t, err)
	assert.Equal(t, []string{"Gazimağusa", "Girne", "Lefkoşa"}, result)
	mockRepo.AssertExpectations(t)
}

func TestDirectoryService_ListDistricts_CompositePartialFailure(t *testing.T) {
	mockRepo := new(MockDirectoryRepository)
	svc := newTestDirectoryService(mockRepo)

	mockRepo.On("ListDistricts", mock.Anything, "Kıbrıs", testDate).
		Return([]string{"Girne"}, nil)
	mockRepo.On("ListDistricts", mock.Anything, "Kibris", testDate).
		Return(nil, errors.New("timeout"))
	mockRepo.On("ListDistricts", mock.Anything, "KIBRIS", testDate).
		Return(nil, errors.New("timeout"))
	mockRepo.On("ListDistricts", mock.Anything, "Kıbrıs (KKTC)", testDate).
		Return(nil, errors.New("timeout"))

	result, err := svc.ListDistricts(context.Background(), "Kıbrıs")
	require.NoError(t, err)
	assert.Equal(t, []string{"Girne"}, result)
}

func TestDirectoryService_ListDistricts_CompositeTotalFailure(t *testing.T) {
	mockRepo := new(MockDirectoryRepository)
	svc := newTestDirectoryService(mockRepo)

	for _, alias := range cyprusAliases {
		mockRepo.On("ListDistricts", mock.Anything, alias, testDate).
			Return(nil, errors.New("connection refused"))
	}

	_, err := svc.ListDistricts(context.Background(), "Kıbrıs")
	assertKind(t, err, apperr.KindRepository)
}

func TestDirectoryService_ListPharmacies(t *testing.T) {
	onDuty := []models.Pharmacy{
		{ID: 1, City: "İstanbul", District: "Kadıköy", Name: "Moda Eczanesi", DutyDate: testDate, Latitude: 40.9833, Longitude: 29.0167},
	}

	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockDirectoryRepository)
		svc := newTestDirectoryService(mockRepo)

		mockRepo.On("ListPharmacies", mock.Anything, "İstanbul", "Kadıköy", testDate).
			Return(onDuty, nil)

		result, err := svc.ListPharmacies(context.Background(), "İstanbul", "Kadıköy")
		require.NoError(t, err)
		assert.Equal(t, onDuty, result)
		mockRepo.AssertExpectations(t)
	})

	t.Run("blank city", func(t *testing.T) {
		svc := newTestDirectoryService(new(MockDirectoryRepository))
		_, err := svc.ListPharmacies(context.Background(), "  ", "Kadıköy")
		assertKind(t, err, apperr.KindInvalidInput)
	})

	t.Run("blank district", func(t *testing.T) {
		svc := newTestDirectoryService(new(MockDirectoryRepository))
		_, err := svc.ListPharmacies(context.Background(), "İstanbul", "\t")
		assertKind(t, err, apperr.KindInvalidInput)
	})

	t.Run("repository failure", func(t *testing.T) {
		mockRepo := new(MockDirectoryRepository)
		svc := newTestDirectoryService(mockRepo)

		mockRepo.On("ListPharmacies", mock.Anything, "İstanbul", "Kadıköy", testDate).
			Return(nil, errors.New("connection refused"))

		_, err := svc.ListPharmacies(context.Background(), "İstanbul", "Kadıköy")
		assertKind(t, err, apperr.KindRepository)
	})

	t.Run("empty result embeds sibling districts", func(t *testing.T) {
		mockRepo := new(MockDirectoryRepository)
		svc := newTestDirectoryService(mockRepo)

		mockRepo.On("ListPharmacies", mock.Anything, "İstanbul", "Adalar", testDate).
			Return([]models.Pharmacy{}, nil)
		mockRepo.On("ListDistricts", mock.Anything, "İstanbul", testDate).
			Return([]string{"Beşiktaş", "Kadıköy"}, nil)

		_, err := svc.ListPharmacies(context.Background(), "İstanbul", "Adalar")
		assertKind(t, err, apperr.KindNotFound)
		assert.EqualError(t, err, "No pharmacies on duty in Adalar, İstanbul. Districts with on-duty pharmacies: Beşiktaş, Kadıköy")
	})

	t.Run("empty result without siblings", func(t *testing.T) {
		mockRepo := new(MockDirectoryRepository)
		svc := newTestDirectoryService(mockRepo)

		mockRepo.On("ListPharmacies", mock.Anything, "İstanbul", "Adalar", testDate).
			Return([]models.Pharmacy{}, nil)
		mockRepo.On("ListDistricts", mock.Anything, "İstanbul", testDate).
			Return([]string{}, nil)

		_, err := svc.ListPharmacies(context.Background(), "İstanbul", "Adalar")
		assertKind(t, err, apperr.KindNotFound)
		assert.EqualError(t, err, "No pharmacies on duty in Adalar, İstanbul. No other districts available")
	})

	t.Run("failing sibling lookup degrades to no suggestions", func(t *testing.T) {
		mockRepo := new(MockDirectoryRepository)
		svc := newTestDirectoryService(mockRepo)

		mockRepo.On("ListPharmacies", mock.Anything, "İstanbul", "Adalar", testDate).
			Return([]models.Pharmacy{}, nil)
		mockRepo.On("ListDistricts", mock.Anything, "İstanbul", testDate).
			Return(nil, errors.New("timeout"))

		_, err := svc.ListPharmacies(context.Background(), "İstanbul", "Adalar")
		assertKind(t, err, apperr.KindNotFound)
		assert.EqualError(t, err, "No pharmacies on duty in Adalar, İstanbul. No other districts available")
	})

	t.Run("composite union dedups records by id", func(t *testing.T) {
		mockRepo := new(MockDirectoryRepository)
		svc := newTestDirectoryService(mockRepo)

		shared := models.Pharmacy{ID: 7, City: "Kıbrıs", District: "Lefkoşa", Name: "Merkez Eczanesi", DutyDate: testDate}
		other := models.Pharmacy{ID: 8, City: "Kibris", District: "Lefkoşa", Name: "Ada Eczanesi", DutyDate: testDate}

		mockRepo.On("ListPharmacies", mock.Anything, "Kıbrıs", "Lefkoşa", testDate).
			Return([]models.Pharmacy{shared}, nil)
		mockRepo.On("ListPharmacies", mock.Anything, "Kibris", "Lefkoşa", testDate).
			Return([]models.Pharmacy{shared, other}, nil)
		mockRepo.On("ListPharmacies", mock.Anything, "KIBRIS", "Lefkoşa", testDate).
			Return([]models.Pharmacy{}, nil)
		mockRepo.On("ListPharmacies", mock.Anything, "Kıbrıs (KKTC)", "Lefkoşa", testDate).
			Return([]models.Pharmacy{}, nil)

		result, err := svc.ListPharmacies(context.Background(), "Kıbrıs", "Lefkoşa")
		require.NoError(t, err)
		assert.Equal(t, []models.Pharmacy{other, shared}, result)
	})
}
