package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/ahernandez25/CS166-Phase3/internal/domain"
	"github.com/ahernandez25/CS166-Phase3/internal/mocks"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SeatsTestSuite struct {
	suite.Suite
	app         *Application
	catalogRepo *mocks.MockCatalogRepo
	seatRepo    *mocks.MockSeatRepo
	bookingRepo *mocks.MockBookingRepo
	redisClient *mocks.MockRedisClient
}

func (s *SeatsTestSuite) SetupTest() {
	s.catalogRepo = new(mocks.MockCatalogRepo)
	s.seatRepo = new(mocks.MockSeatRepo)
	s.bookingRepo = new(mocks.MockBookingRepo)
	s.redisClient = new(mocks.MockRedisClient)

	s.app = newTestApplication(func(a *Application) {
		a.catalogRepo = s.catalogRepo
		a.seatRepo = s.seatRepo
		a.bookingRepo = s.bookingRepo
		a.redis = s.redisClient
	})
}

func TestSeatsSuite(t *testing.T) {
	suite.Run(t, new(SeatsTestSuite))
}

func (s *SeatsTestSuite) TestGetFreeSeats() {
	show := &domain.Show{ID: 1, MovieID: 1}

	freeSeats := []domain.CinemaSeat{
		{ID: 10, TheaterID: 3, SeatNumber: 1, Type: domain.SeatTypeStandard},
		{ID: 11, TheaterID: 3, SeatNumber: 2, Type: domain.SeatTypePremium},
	}

	tests := []struct {
		name           string
		showID         string
		setupMocks     func()
		wantStatus     int
		wantSeats      int
		wantErrMessage string
	}{
		{
			name:           "should fail when show ID is not a positive integer",
			showID:         "0",
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "invalid showID parameter",
		},
		{
			name:   "should fail when show does not exist",
			showID: "999",
			setupMocks: func() {
				s.catalogRepo.On("GetShowById", mock.Anything, 999).Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
		{
			name:   "should fall through to the database when cache misses",
			showID: "1",
			setupMocks: func() {
				s.catalogRepo.On("GetShowById", mock.Anything, 1).Return(show, nil)
				s.redisClient.On("Get", mock.Anything, freeSeatCacheKey(1)).
					Return(redis.NewStringResult("", redis.Nil))
				s.seatRepo.On("GetFreeSeatsByShow", mock.Anything, 1).Return(freeSeats, nil)
				s.redisClient.On("Set", mock.Anything, freeSeatCacheKey(1), mock.Anything, freeSeatCacheTTL).
					Return(redis.NewStatusResult("OK", nil))
			},
			wantStatus: http.StatusOK,
			wantSeats:  2,
		},
		{
			name:   "should serve seats from cache when present",
			showID: "1",
			setupMocks: func() {
				payload, err := json.Marshal(freeSeats)
				s.Require().NoError(err)

				s.catalogRepo.On("GetShowById", mock.Anything, 1).Return(show, nil)
				s.redisClient.On("Get", mock.Anything, freeSeatCacheKey(1)).
					Return(redis.NewStringResult(string(payload), nil))
			},
			wantStatus: http.StatusOK,
			wantSeats:  2,
		},
		{
			name:   "should fail when database error occurs",
			showID: "1",
			setupMocks: func() {
				s.catalogRepo.On("GetShowById", mock.Anything, 1).Return(show, nil)
				s.redisClient.On("Get", mock.Anything, freeSeatCacheKey(1)).
					Return(redis.NewStringResult("", redis.Nil))
				s.seatRepo.On("GetFreeSeatsByShow", mock.Anything, 1).Return(nil, fmt.Errorf("database error"))
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.catalogRepo.AssertExpectations(s.T())
			defer s.seatRepo.AssertExpectations(s.T())
			defer s.redisClient.AssertExpectations(s.T())

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w := executeRequest(s.T(), s.app, http.MethodGet, fmt.Sprintf("/shows/%s/seats", tt.showID), nil)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				var resp FreeSeatsResponse
				err := json.NewDecoder(w.Body).Decode(&resp)
				s.Require().NoError(err)
				s.Equal(1, resp.ShowId)
				s.Len(resp.Seats, tt.wantSeats)
				s.True(decimal.NewFromInt(10).Equal(resp.Seats[0].Price))
				s.True(decimal.NewFromInt(15).Equal(resp.Seats[1].Price))
			}

			checkErrorResponse(s.T(), w, tt.wantStatus, tt.wantErrMessage)
		})
	}
}

func (s *SeatsTestSuite) TestAllocateSeat() {
	booking := &domain.Booking{ID: 7, ShowID: 1, Status: domain.BookingStatusPaid}

	tests := []struct {
		name           string
		input          AllocateSeatRequest
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:  "should fail when booking does not exist",
			input: AllocateSeatRequest{CinemaSeatID: 12},
			setupMocks: func() {
				s.bookingRepo.On("GetById", mock.Anything, 7).Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
		{
			name:  "should fail when seat is already booked",
			input: AllocateSeatRequest{CinemaSeatID: 12},
			setupMocks: func() {
				s.bookingRepo.On("GetById", mock.Anything, 7).Return(booking, nil)
				s.seatRepo.On("Allocate", mock.Anything, 1, 12, 7).
					Return(nil, &domain.SeatConflictError{ShowID: 1, SeatIDs: []int{12}})
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:  "should fail when seat belongs to another theater",
			input: AllocateSeatRequest{CinemaSeatID: 12},
			setupMocks: func() {
				s.bookingRepo.On("GetById", mock.Anything, 7).Return(booking, nil)
				s.seatRepo.On("Allocate", mock.Anything, 1, 12, 7).
					Return(nil, domain.ErrSeatWrongTheater)
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: domain.ErrSeatWrongTheater.Error(),
		},
		{
			name:  "should allocate seat with valid input",
			input: AllocateSeatRequest{CinemaSeatID: 12},
			setupMocks: func() {
				s.bookingRepo.On("GetById", mock.Anything, 7).Return(booking, nil)
				s.seatRepo.On("Allocate", mock.Anything, 1, 12, 7).
					Return(&domain.ShowSeat{
						ID:           102,
						ShowID:       1,
						CinemaSeatID: 12,
						BookingID:    7,
						Price:        decimal.NewFromInt(10),
					}, nil)
				s.redisClient.On("Del", mock.Anything, []string{freeSeatCacheKey(1)}).
					Return(redis.NewIntResult(1, nil))
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.bookingRepo.AssertExpectations(s.T())
			defer s.seatRepo.AssertExpectations(s.T())
			defer s.redisClient.AssertExpectations(s.T())

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w := executeRequest(s.T(), s.app, http.MethodPost, "/bookings/7/seats", tt.input)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusCreated {
				var resp ShowSeatResponse
				err := json.NewDecoder(w.Body).Decode(&resp)
				s.Require().NoError(err)
				s.Equal(102, resp.Id)
				s.Equal(12, resp.CinemaSeatId)
			}

			checkErrorResponse(s.T(), w, tt.wantStatus, tt.wantErrMessage)
		})
	}
}

func (s *SeatsTestSuite) TestSwapSeat() {
	booking := &domain.Booking{ID: 7, ShowID: 1, Status: domain.BookingStatusPaid}

	tests := []struct {
		name           string
		input          SwapSeatRequest
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:  "should fail when old seat is not part of the booking",
			input: SwapSeatRequest{OldCinemaSeatID: 10, NewCinemaSeatID: 12},
			setupMocks: func() {
				s.bookingRepo.On("GetById", mock.Anything, 7).Return(booking, nil)
				s.seatRepo.On("Swap", mock.Anything, 7, 10, 12).Return(domain.ErrRecordNotFound)
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
		{
			name:  "should fail when new seat is already booked",
			input: SwapSeatRequest{OldCinemaSeatID: 10, NewCinemaSeatID: 12},
			setupMocks: func() {
				s.bookingRepo.On("GetById", mock.Anything, 7).Return(booking, nil)
				s.seatRepo.On("Swap", mock.Anything, 7, 10, 12).
					Return(&domain.SeatConflictError{ShowID: 1, SeatIDs: []int{12}})
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:  "should fail when seat classes differ",
			input: SwapSeatRequest{OldCinemaSeatID: 10, NewCinemaSeatID: 12},
			setupMocks: func() {
				s.bookingRepo.On("GetById", mock.Anything, 7).Return(booking, nil)
				s.seatRepo.On("Swap", mock.Anything, 7, 10, 12).Return(domain.ErrSeatTypeMismatch)
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: domain.ErrSeatTypeMismatch.Error(),
		},
		{
			name:  "should swap seats with valid input",
			input: SwapSeatRequest{OldCinemaSeatID: 10, NewCinemaSeatID: 12},
			setupMocks: func() {
				s.bookingRepo.On("GetById", mock.Anything, 7).Return(booking, nil)
				s.seatRepo.On("Swap", mock.Anything, 7, 10, 12).Return(nil)
				s.redisClient.On("Del", mock.Anything, []string{freeSeatCacheKey(1)}).
					Return(redis.NewIntResult(1, nil))
			},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.bookingRepo.AssertExpectations(s.T())
			defer s.seatRepo.AssertExpectations(s.T())
			defer s.redisClient.AssertExpectations(s.T())

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w := executeRequest(s.T(), s.app, http.MethodPatch, "/bookings/7/seats", tt.input)

			s.Equal(tt.wantStatus, w.Code)

			checkErrorResponse(s.T(), w, tt.wantStatus, tt.wantErrMessage)
		})
	}
}
