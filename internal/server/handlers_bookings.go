package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/plumber-matcher/internal/db"
	"github.com/jonathan/plumber-matcher/internal/geo"
	"github.com/jonathan/plumber-matcher/internal/pricing"
	"github.com/jonathan/plumber-matcher/internal/server/middleware"
	"github.com/jonathan/plumber-matcher/internal/types"
)

// bookingDateLayout is the wire format for booking service dates.
const bookingDateLayout = "2006-01-02"

// unknownETA sorts plumbers without coordinates after every routed one.
const unknownETA = 1 << 20

// handleCreateBooking books a plumber for a date and time slot. The slot
// must be free: a plumber keeps at most one non-cancelled booking per slot.
func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	date, err := time.Parse(bookingDateLayout, req.Date)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid date: "+req.Date)
		return
	}

	ctx := r.Context()
	profile, err := s.db.GetPlumberProfile(ctx, req.PlumberID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if profile == nil {
		notFound := &ErrNotFound{Resource: "plumber", ID: req.PlumberID.String()}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	taken, err := s.db.SlotTaken(ctx, req.PlumberID, date, req.TimeSlot)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if taken {
		conflict := &ErrConflict{Message: "time slot already booked"}
		s.errorResponse(w, HTTPStatus(conflict), conflict.Error())
		return
	}

	booking := &db.Booking{
		CustomerID:  userID,
		PlumberID:   req.PlumberID,
		Date:        date,
		TimeSlot:    req.TimeSlot,
		ServiceType: req.ServiceType,
		ClientLat:   req.ClientLat,
		ClientLon:   req.ClientLon,
	}
	bookingID, err := s.db.CreateBooking(ctx, booking)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	distance := clientDistanceKm(req.ClientLat, req.ClientLon, profile)
	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"booking_id":    bookingID,
		"status":        db.BookingPending,
		"cost_estimate": pricing.Estimate(req.ServiceType, distance),
	})
}

// handleListBookings lists the caller's bookings: their own bookings for a
// customer, incoming jobs for a plumber.
func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	role, err := middleware.GetRole(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx := r.Context()
	var bookings []db.Booking
	switch role {
	case types.RoleCustomer:
		bookings, err = s.db.ListBookingsByCustomer(ctx, userID)
	case types.RolePlumber:
		profile, perr := s.db.GetPlumberProfileByUser(ctx, userID)
		if perr != nil {
			s.errorResponse(w, HTTPStatus(perr), perr.Error())
			return
		}
		if profile == nil {
			notFound := &ErrNotFound{Resource: "plumber profile", ID: userID.String()}
			s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
			return
		}
		bookings, err = s.db.ListBookingsByPlumber(ctx, profile.ID)
	default:
		forbidden := &ErrForbidden{Action: "list bookings"}
		s.errorResponse(w, HTTPStatus(forbidden), forbidden.Error())
		return
	}
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	summaries, err := s.bookingSummaries(r, bookings)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"bookings": summaries,
		"total":    len(summaries),
	})
}

// bookingSummaries enriches bookings with names, review state and cost
// estimates. Names are cached per request to keep lookups bounded.
func (s *Server) bookingSummaries(r *http.Request, bookings []db.Booking) ([]types.BookingSummary, error) {
	ctx := r.Context()
	userNames := make(map[uuid.UUID]string)
	profiles := make(map[uuid.UUID]*db.PlumberProfile)

	userName := func(id uuid.UUID) (string, error) {
		if name, ok := userNames[id]; ok {
			return name, nil
		}
		user, err := s.db.GetUser(ctx, id)
		if err != nil {
			return "", err
		}
		name := ""
		if user != nil {
			name = user.Name
		}
		userNames[id] = name
		return name, nil
	}
	plumberProfile := func(id uuid.UUID) (*db.PlumberProfile, error) {
		if p, ok := profiles[id]; ok {
			return p, nil
		}
		p, err := s.db.GetPlumberProfile(ctx, id)
		if err != nil {
			return nil, err
		}
		profiles[id] = p
		return p, nil
	}

	summaries := make([]types.BookingSummary, 0, len(bookings))
	for _, b := range bookings {
		customerName, err := userName(b.CustomerID)
		if err != nil {
			return nil, err
		}

		plumberName := ""
		var distance *float64
		profile, err := plumberProfile(b.PlumberID)
		if err != nil {
			return nil, err
		}
		if profile != nil {
			plumberName, err = userName(profile.UserID)
			if err != nil {
				return nil, err
			}
			distance = clientDistanceKm(b.ClientLat, b.ClientLon, profile)
		}

		review, err := s.db.GetReviewByBooking(ctx, b.ID)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, types.BookingSummary{
			ID:           b.ID,
			PlumberName:  plumberName,
			CustomerName: customerName,
			Date:         b.Date.Format(bookingDateLayout),
			TimeSlot:     b.TimeSlot,
			Status:       b.Status,
			ServiceType:  b.ServiceType,
			CostEstimate: pricing.Estimate(b.ServiceType, distance),
			Reviewed:     review != nil,
			DistanceKm:   distance,
			CreatedAt:    b.CreatedAt,
		})
	}
	return summaries, nil
}

// handleUpdateBookingStatus moves a booking through its lifecycle. A
// customer may cancel their own booking; the owning plumber may confirm,
// cancel or complete; admins may do anything. Terminal states stay put.
func (s *Server) handleUpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid booking id")
		return
	}
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	role, err := middleware.GetRole(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	ctx := r.Context()
	booking, err := s.db.GetBooking(ctx, bookingID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if booking == nil {
		notFound := &ErrNotFound{Resource: "booking", ID: bookingID.String()}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	if err := s.authorizeTransition(ctx, booking, userID, role, req.Status); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if !db.ValidTransition(booking.Status, req.Status) {
		conflict := &ErrConflict{Message: "cannot move booking from " + booking.Status + " to " + req.Status}
		s.errorResponse(w, HTTPStatus(conflict), conflict.Error())
		return
	}

	if err := s.db.UpdateBookingStatus(ctx, bookingID, req.Status); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{
		"booking_id": bookingID.String(),
		"status":     req.Status,
	})
}

// authorizeTransition checks who may apply a status change to a booking.
func (s *Server) authorizeTransition(ctx context.Context, booking *db.Booking, userID uuid.UUID, role, newStatus string) error {
	switch role {
	case types.RoleAdmin:
		return nil
	case types.RoleCustomer:
		if booking.CustomerID != userID {
			return &ErrForbidden{Action: "modify this booking"}
		}
		if newStatus != db.BookingCancelled {
			return &ErrForbidden{Action: "set booking status to " + newStatus}
		}
		return nil
	case types.RolePlumber:
		profile, err := s.db.GetPlumberProfileByUser(ctx, userID)
		if err != nil {
			return err
		}
		if profile == nil || booking.PlumberID != profile.ID {
			return &ErrForbidden{Action: "modify this booking"}
		}
		switch newStatus {
		case db.BookingConfirmed, db.BookingCancelled, db.BookingCompleted:
			return nil
		}
		return &ErrForbidden{Action: "set booking status to " + newStatus}
	}
	return &ErrForbidden{Action: "modify bookings"}
}

// handleCreateReview records a customer's review of a completed booking.
// Each booking takes one review.
func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	ctx := r.Context()
	booking, err := s.db.GetBooking(ctx, req.BookingID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if booking == nil {
		notFound := &ErrNotFound{Resource: "booking", ID: req.BookingID.String()}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}
	if booking.CustomerID != userID {
		forbidden := &ErrForbidden{Action: "review this booking"}
		s.errorResponse(w, HTTPStatus(forbidden), forbidden.Error())
		return
	}
	if booking.Status != db.BookingCompleted {
		conflict := &ErrConflict{Message: "only completed bookings can be reviewed"}
		s.errorResponse(w, HTTPStatus(conflict), conflict.Error())
		return
	}

	existing, err := s.db.GetReviewByBooking(ctx, req.BookingID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if existing != nil {
		conflict := &ErrConflict{Message: "booking already reviewed"}
		s.errorResponse(w, HTTPStatus(conflict), conflict.Error())
		return
	}

	reviewID, err := s.db.CreateReview(ctx, &db.Review{
		BookingID:  req.BookingID,
		CustomerID: userID,
		PlumberID:  booking.PlumberID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{"review_id": reviewID})
}

// handleListReviews lists a plumber's reviews with their average rating.
func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	plumberID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid plumber id")
		return
	}

	ctx := r.Context()
	reviews, err := s.db.ListReviewsByPlumber(ctx, plumberID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	average, err := s.db.AverageRating(ctx, plumberID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	names := make(map[uuid.UUID]string)
	summaries := make([]types.ReviewSummary, 0, len(reviews))
	for _, review := range reviews {
		name, ok := names[review.CustomerID]
		if !ok {
			user, err := s.db.GetUser(ctx, review.CustomerID)
			if err != nil {
				s.errorResponse(w, HTTPStatus(err), err.Error())
				return
			}
			if user != nil {
				name = user.Name
			}
			names[review.CustomerID] = name
		}
		summaries = append(summaries, types.ReviewSummary{
			ID:           review.ID,
			BookingID:    review.BookingID,
			CustomerName: name,
			Rating:       review.Rating,
			Comment:      review.Comment,
			CreatedAt:    review.CreatedAt,
		})
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"reviews":        summaries,
		"average_rating": average,
		"total":          len(summaries),
	})
}

// handleAvailability finds registered plumbers free for a date, slot and
// work type, sorted by estimated travel time.
func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	var req types.AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	date, err := time.Parse(bookingDateLayout, req.Date)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid date: "+req.Date)
		return
	}

	ctx := r.Context()
	profiles, err := s.db.ListPlumberProfiles(ctx)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	available := make([]types.AvailablePlumber, 0)
	for i := range profiles {
		profile := &profiles[i]
		if !matchesWorkType(profile.Specialization, req.WorkType) {
			continue
		}
		if !listContains(profile.FreeTimeSlots, req.TimeSlot) {
			continue
		}
		if req.Language != "" && !listContains(profile.Languages, req.Language) {
			continue
		}

		taken, err := s.db.SlotTaken(ctx, profile.ID, date, req.TimeSlot)
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		if taken {
			continue
		}

		user, err := s.db.GetUser(ctx, profile.UserID)
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		name := ""
		if user != nil {
			name = user.Name
		}

		rating, err := s.db.AverageRating(ctx, profile.ID)
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}

		entry := types.AvailablePlumber{
			ID:             profile.ID,
			Name:           name,
			Specialization: profile.Specialization,
			Languages:      profile.Languages,
			Rating:         rating,
		}
		if profile.Lat != nil && profile.Lon != nil {
			d := geo.HaversineKm(req.ClientLat, req.ClientLon, *profile.Lat, *profile.Lon)
			eta := geo.ETAMinutes(d)
			entry.DistanceKm = &d
			entry.ETAMinutes = &eta
		}
		entry.CostEstimate = pricing.Estimate(req.WorkType, entry.DistanceKm)
		available = append(available, entry)
	}

	sort.SliceStable(available, func(i, j int) bool {
		return etaOrder(available[i]) < etaOrder(available[j])
	})

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"plumbers": available,
		"total":    len(available),
	})
}

// handleUpdateAvailability lets a plumber update their service profile.
// Empty fields keep their current value.
func (s *Server) handleUpdateAvailability(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.UpdateAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	ctx := r.Context()
	profile, err := s.db.GetPlumberProfileByUser(ctx, userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if profile == nil {
		notFound := &ErrNotFound{Resource: "plumber profile", ID: userID.String()}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	if req.District != "" {
		profile.District = req.District
	}
	if req.Specialization != "" {
		profile.Specialization = req.Specialization
	}
	if req.Languages != "" {
		profile.Languages = req.Languages
	}
	if req.FreeTimeSlots != "" {
		profile.FreeTimeSlots = req.FreeTimeSlots
	}
	if req.Lat != nil {
		profile.Lat = req.Lat
	}
	if req.Lon != nil {
		profile.Lon = req.Lon
	}

	if err := s.db.UpdatePlumberProfile(ctx, profile); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// clientDistanceKm computes the client-to-plumber distance when both ends
// have coordinates.
func clientDistanceKm(clientLat, clientLon *float64, profile *db.PlumberProfile) *float64 {
	if clientLat == nil || clientLon == nil || profile.Lat == nil || profile.Lon == nil {
		return nil
	}
	d := geo.HaversineKm(*clientLat, *clientLon, *profile.Lat, *profile.Lon)
	return &d
}

// matchesWorkType reports whether a plumber's specialization covers the
// requested work type, case-insensitively in either direction.
func matchesWorkType(specialization, workType string) bool {
	spec := strings.ToLower(strings.TrimSpace(specialization))
	want := strings.ToLower(strings.TrimSpace(workType))
	if spec == "" || want == "" {
		return false
	}
	return strings.Contains(spec, want) || strings.Contains(want, spec)
}

// listContains reports whether a comma-separated list contains the value,
// case-insensitively.
func listContains(list, value string) bool {
	want := strings.ToLower(strings.TrimSpace(value))
	for _, item := range strings.Split(list, ",") {
		if strings.ToLower(strings.TrimSpace(item)) == want {
			return true
		}
	}
	return false
}

// etaOrder ranks availability entries by travel time, unknown last.
func etaOrder(p types.AvailablePlumber) int {
	if p.ETAMinutes == nil {
		return unknownETA
	}
	return *p.ETAMinutes
}
