package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/angkut/internal/pkg/apperror"
	"github.com/piresc/angkut/internal/pkg/constants"
	"github.com/piresc/angkut/internal/pkg/logger"
	"github.com/piresc/angkut/internal/pkg/models"
	"github.com/piresc/angkut/internal/pkg/pricing"
	"github.com/piresc/angkut/internal/pkg/sequencer"
	"github.com/piresc/angkut/internal/utils"
	"github.com/piresc/angkut/services/booking"
)

const (
	defaultPaymentMethod = "ewallet"
	maxReasonLength      = 500
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

// BookingUC implements the booking lifecycle. Every mutation of a booking
// runs under that booking's lock and re-reads it before deciding anything.
type BookingUC struct {
	cfg       *models.Config
	bookings  booking.BookingRepo
	trucks    booking.TruckRepo
	activity  booking.ActivityRepo
	geocoder  booking.Geocoder
	estimator booking.Estimator
	events    booking.EventPublisher
	notifier  booking.Notifier
	locker    booking.Locker
	escrow    booking.Escrow
	sequencer *sequencer.Sequencer
	area      utils.OperatingArea
	now       func() time.Time
}

// NewBookingUC creates the booking lifecycle usecase
func NewBookingUC(
	cfg *models.Config,
	bookings booking.BookingRepo,
	trucks booking.TruckRepo,
	activity booking.ActivityRepo,
	geocoder booking.Geocoder,
	estimator booking.Estimator,
	events booking.EventPublisher,
	notifier booking.Notifier,
	locker booking.Locker,
	escrow booking.Escrow,
) *BookingUC {
	return &BookingUC{
		cfg:       cfg,
		bookings:  bookings,
		trucks:    trucks,
		activity:  activity,
		geocoder:  geocoder,
		estimator: estimator,
		events:    events,
		notifier:  notifier,
		locker:    locker,
		escrow:    escrow,
		sequencer: sequencer.New(cfg.Sequencer.MinutesPerKm),
		area:      utils.NewOperatingArea(cfg.Tracking),
		now:       models.Now,
	}
}

// CreateBooking prices and stores a new pending booking on a truck. A truck
// that already has active bookings is accepted and flagged as busy.
func (uc *BookingUC) CreateBooking(ctx context.Context, actor models.Actor, req models.CreateBookingRequest) (*models.CreateBookingResult, error) {
	if actor.Role != models.RoleCustomer {
		return nil, apperror.AuthorizationError{Action: "create booking", Msg: "only customers can create bookings"}
	}
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	truck, err := uc.trucks.GetByID(ctx, req.TruckID)
	if err != nil {
		return nil, err
	}
	if err := checkCapacity(req.Cargo, truck); err != nil {
		return nil, err
	}
	card, err := pricing.RateCardFor(truck)
	if err != nil {
		return nil, err
	}

	active, err := uc.bookings.CountActiveByTruck(ctx, truck.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count active bookings: %w", err)
	}
	if !truck.IsAvailable && active == 0 {
		return nil, apperror.ConflictError{Resource: "truck", Msg: fmt.Sprintf("truck %s is not available", truck.ID)}
	}

	origin, destination := req.Origin, req.Destination
	if err := uc.resolveEndpoint(ctx, &origin, "origin"); err != nil {
		return nil, err
	}
	if err := uc.resolveEndpoint(ctx, &destination, "destination"); err != nil {
		return nil, err
	}

	quote, err := uc.price(ctx, origin, destination, card)
	if err != nil {
		return nil, err
	}

	method := req.PaymentMethod
	if method == "" {
		method = defaultPaymentMethod
	}

	now := uc.now()
	b := &models.Booking{
		ID:          uuid.New(),
		CustomerID:  actor.UserID,
		TruckerID:   truck.OwnerID,
		TruckID:     truck.ID,
		Origin:      origin,
		Destination: destination,
		Cargo:       req.Cargo,
		Pricing:     quote,
		Payment:     models.BookingPayment{Method: method, Status: models.PaymentStatusPending},
		Status:      models.BookingStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	logger.InfoCtx(ctx, "Booking created",
		logger.BookingID(b.ID),
		logger.TruckID(b.TruckID),
		logger.Float64("estimated_amount", b.Pricing.EstimatedAmount),
		logger.Int("truck_active_bookings", active))

	uc.recomputeAvailability(ctx, b, nil)
	uc.appendActivity(ctx, b, "booking_created", actor, map[string]interface{}{
		"estimated_amount": b.Pricing.EstimatedAmount,
		"distance_km":      b.Pricing.DistanceKm,
	}, nil)
	uc.publishStatus(ctx, b, "", actor, nil)
	uc.notify(ctx, b, models.Notification{
		UserID:  b.TruckerID,
		Type:    models.NotificationBookingCreated,
		Title:   "New booking request",
		Message: fmt.Sprintf("New booking from %s to %s", b.Origin.Address, b.Destination.Address),
	}, nil)

	return &models.CreateBookingResult{Booking: b, TruckBusy: active > 0}, nil
}

// EditBooking changes route or cargo of a pending booking. A changed
// coordinate reprices the booking from scratch.
func (uc *BookingUC) EditBooking(ctx context.Context, bookingID uuid.UUID, actor models.Actor, req models.EditBookingRequest) (*models.Booking, error) {
	if req.Origin == nil && req.Destination == nil && req.Cargo == nil {
		return nil, apperror.ValidationError{Msg: "nothing to change"}
	}
	if req.Cargo != nil {
		if err := validateCargo(*req.Cargo); err != nil {
			return nil, err
		}
	}
	if req.Origin != nil {
		if err := validateEndpoint(*req.Origin, "origin"); err != nil {
			return nil, err
		}
	}
	if req.Destination != nil {
		if err := validateEndpoint(*req.Destination, "destination"); err != nil {
			return nil, err
		}
	}

	unlock, err := uc.lock(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	current, err := uc.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if actor.UserID != current.CustomerID {
		return nil, apperror.AuthorizationError{Action: "edit booking", Msg: "only the booking's customer can edit it"}
	}
	if current.Status != models.BookingStatusPending {
		return nil, apperror.ConflictError{Resource: "booking", Msg: fmt.Sprintf("booking is %s; only pending bookings can be edited", current.Status)}
	}

	next := *current
	if req.Cargo != nil {
		next.Cargo = *req.Cargo
	}
	if req.Origin != nil {
		next.Origin = *req.Origin
		if err := uc.resolveEndpoint(ctx, &next.Origin, "origin"); err != nil {
			return nil, err
		}
	}
	if req.Destination != nil {
		next.Destination = *req.Destination
		if err := uc.resolveEndpoint(ctx, &next.Destination, "destination"); err != nil {
			return nil, err
		}
	}
	if err := validateSchedule(next.Origin, next.Destination); err != nil {
		return nil, err
	}

	truck, err := uc.trucks.GetByID(ctx, current.TruckID)
	if err != nil {
		return nil, err
	}
	if err := checkCapacity(next.Cargo, truck); err != nil {
		return nil, err
	}

	repriced := !next.Origin.Coordinates.Equal(current.Origin.Coordinates) ||
		!next.Destination.Coordinates.Equal(current.Destination.Coordinates)
	if repriced {
		card, err := pricing.RateCardFor(truck)
		if err != nil {
			return nil, err
		}
		if next.Pricing, err = uc.price(ctx, next.Origin, next.Destination, card); err != nil {
			return nil, err
		}
	}

	next.UpdatedAt = uc.now()
	ok, err := uc.bookings.UpdateIfStatus(ctx, &next, models.BookingStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	if !ok {
		return nil, staleBooking(bookingID)
	}

	logger.InfoCtx(ctx, "Booking edited",
		logger.BookingID(next.ID),
		logger.Bool("repriced", repriced))

	uc.appendActivity(ctx, &next, "booking_edited", actor, map[string]interface{}{
		"repriced":         repriced,
		"estimated_amount": next.Pricing.EstimatedAmount,
	}, nil)

	return &next, nil
}

// TransitionStatus is the single entry point for status changes. The status
// change is persisted first; its side effects never roll it back and any
// that fail are reported as warnings on the result.
func (uc *BookingUC) TransitionStatus(ctx context.Context, bookingID uuid.UUID, actor models.Actor, req models.TransitionRequest) (*models.TransitionResult, error) {
	to := req.Status
	if !to.IsValid() {
		return nil, apperror.ValidationError{Field: "status", Msg: fmt.Sprintf("unknown status %q", to)}
	}
	reason := utils.Truncate(utils.SanitizeString(req.Reason), maxReasonLength)

	unlock, err := uc.lock(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	current, err := uc.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	from := current.Status

	if !actor.IsAdmin() {
		if _, ok := current.PartyRole(actor.UserID); !ok {
			return nil, apperror.AuthorizationError{Action: "change booking status", Msg: "not a party to this booking"}
		}
	}
	if err := validateTransition(from, to); err != nil {
		return nil, err
	}
	if err := authorizeTransition(current, actor, from, to); err != nil {
		return nil, err
	}

	next := *current
	applyTransition(&next, to, actor, reason, uc.now())

	ok, err := uc.bookings.UpdateIfStatus(ctx, &next, from)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	if !ok {
		return nil, staleBooking(bookingID)
	}

	logger.InfoCtx(ctx, "Booking status changed",
		logger.BookingID(next.ID),
		logger.String("from", string(from)),
		logger.String("to", string(to)),
		logger.String("actor_role", string(actor.Role)))

	result := &models.TransitionResult{Booking: &next}

	switch to {
	case models.BookingStatusConfirmed:
		uc.notify(ctx, &next, models.Notification{
			UserID:  next.CustomerID,
			Type:    models.NotificationBookingConfirmed,
			Title:   "Booking confirmed",
			Message: "Your booking has been confirmed by the trucker",
		}, result)
	case models.BookingStatusInTransit:
		uc.notify(ctx, &next, models.Notification{
			UserID:  next.CustomerID,
			Type:    models.NotificationBookingInTransit,
			Title:   "Shipment on the way",
			Message: fmt.Sprintf("Your cargo has been picked up and is heading to %s", next.Destination.Address),
		}, result)
	case models.BookingStatusCancelled:
		uc.refundOnCancel(ctx, &next, reason, result)
		uc.recomputeAvailability(ctx, &next, result)
		uc.notifyCancellation(ctx, &next, actor, reason, result)
	case models.BookingStatusCompleted:
		uc.recomputeAvailability(ctx, &next, result)
		uc.releaseEscrow(ctx, &next, result)
		uc.notify(ctx, &next, models.Notification{
			UserID:  next.CustomerID,
			Type:    models.NotificationReviewRequest,
			Title:   "How was your delivery?",
			Message: "Your booking is complete. Please rate your trucker.",
		}, result)
	}

	metadata := map[string]interface{}{"from": string(from), "to": string(to)}
	if reason != "" {
		metadata["reason"] = reason
	}
	uc.appendActivity(ctx, &next, "status_"+string(to), actor, metadata, result)
	uc.publishStatus(ctx, &next, from, actor, result)

	if result.Payment == nil {
		uc.project(ctx, &next)
	}
	return result, nil
}

// RecordTracking overwrites the location snapshot of an in-transit booking
func (uc *BookingUC) RecordTracking(ctx context.Context, bookingID uuid.UUID, actor models.Actor, update models.TrackingUpdate) (*models.Booking, error) {
	location := models.Coordinates{Latitude: update.Latitude, Longitude: update.Longitude}
	if !location.Valid() {
		return nil, apperror.ValidationError{Field: "location", Msg: "latitude and longitude must be a valid point"}
	}
	if !uc.area.Contains(location) {
		return nil, apperror.ValidationError{Field: "location", Msg: "outside the operating area", Err: apperror.ErrOutOfBounds}
	}

	unlock, err := uc.lock(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	current, err := uc.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if actor.UserID != current.TruckerID {
		return nil, apperror.AuthorizationError{Action: "record tracking", Msg: "only the assigned trucker can report location"}
	}
	if current.Status != models.BookingStatusInTransit {
		return nil, apperror.ConflictError{Resource: "booking", Msg: fmt.Sprintf("booking is %s; tracking is only accepted in transit", current.Status)}
	}

	now := uc.now()
	eta := update.EstimatedArrival
	if eta == nil && current.Destination.Coordinates.Valid() {
		km := utils.CalculateDistance(location, *current.Destination.Coordinates)
		eta = models.TimePtr(now.Add(time.Duration(km * uc.minutesPerKm() * float64(time.Minute))))
	}

	next := *current
	next.Tracking = &models.Tracking{CurrentLocation: location, UpdatedAt: now, EstimatedArrival: eta}
	next.UpdatedAt = now

	ok, err := uc.bookings.UpdateIfStatus(ctx, &next, models.BookingStatusInTransit)
	if err != nil {
		return nil, fmt.Errorf("failed to update tracking: %w", err)
	}
	if !ok {
		return nil, staleBooking(bookingID)
	}

	if err := uc.events.PublishTracking(ctx, models.TrackingEvent{
		BookingID:        next.ID.String(),
		TruckerID:        next.TruckerID.String(),
		Location:         location,
		EstimatedArrival: eta,
		Timestamp:        now,
	}); err != nil {
		uc.warn(ctx, &next, "event_publish", err, nil)
	}

	return &next, nil
}

// ListActiveBookingsSequenced returns the trucker's open bookings in an
// advisory visiting order
func (uc *BookingUC) ListActiveBookingsSequenced(ctx context.Context, truckerID uuid.UUID, actor models.Actor) ([]models.SequencedBooking, error) {
	if !actor.IsAdmin() && actor.UserID != truckerID {
		return nil, apperror.AuthorizationError{Action: "view delivery sequence", Msg: "only the trucker can view their sequence"}
	}

	list, err := uc.bookings.List(ctx, models.BookingFilter{
		TruckerID: &truckerID,
		Statuses:  models.SequenceableStatuses,
	})
	if err != nil {
		return nil, err
	}
	for _, b := range list {
		uc.project(ctx, b)
	}

	return uc.sequencer.Sequence(list, uc.now()), nil
}

// GetBooking returns a booking visible to the actor, with its payment status
// recomputed from the payment record
func (uc *BookingUC) GetBooking(ctx context.Context, bookingID uuid.UUID, actor models.Actor) (*models.Booking, error) {
	b, err := uc.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		if _, ok := b.PartyRole(actor.UserID); !ok {
			return nil, apperror.AuthorizationError{Action: "view booking", Msg: "not a party to this booking"}
		}
	}
	uc.project(ctx, b)
	return b, nil
}

// ListBookings lists the actor's bookings, optionally narrowed by status.
// Admins see every booking.
func (uc *BookingUC) ListBookings(ctx context.Context, actor models.Actor, statuses []models.BookingStatus) ([]*models.Booking, error) {
	for _, s := range statuses {
		if !s.IsValid() {
			return nil, apperror.ValidationError{Field: "status", Msg: fmt.Sprintf("unknown status %q", s)}
		}
	}

	filter := models.BookingFilter{Statuses: statuses}
	switch actor.Role {
	case models.RoleCustomer:
		filter.CustomerID = &actor.UserID
	case models.RoleTrucker:
		filter.TruckerID = &actor.UserID
	default:
		if !actor.IsAdmin() {
			return nil, apperror.AuthorizationError{Action: "list bookings"}
		}
	}

	list, err := uc.bookings.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, b := range list {
		uc.project(ctx, b)
	}
	return list, nil
}

// TruckActivity returns the newest entries of a truck's activity log
func (uc *BookingUC) TruckActivity(ctx context.Context, truckID uuid.UUID, actor models.Actor, limit int) ([]models.ActivityEntry, error) {
	truck, err := uc.trucks.GetByID(ctx, truckID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.UserID != truck.OwnerID {
		return nil, apperror.AuthorizationError{Action: "view truck activity", Msg: "only the truck owner can view its activity"}
	}

	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	return uc.activity.ListByTruck(ctx, truckID, limit)
}

func (uc *BookingUC) lock(ctx context.Context, bookingID uuid.UUID) (func(), error) {
	unlock, err := uc.locker.Lock(ctx, fmt.Sprintf(constants.KeyBookingLock, bookingID))
	if err != nil {
		return nil, err
	}
	return unlock, nil
}

// resolveEndpoint fills missing coordinates through the geocoder
func (uc *BookingUC) resolveEndpoint(ctx context.Context, e *models.Endpoint, field string) error {
	if e.Coordinates.Valid() {
		return nil
	}

	res, err := uc.geocoder.Geocode(ctx, e.Address)
	if err != nil {
		if apperror.IsNotFound(err) || apperror.IsValidation(err) {
			return apperror.ValidationError{Field: field + ".address", Msg: "address could not be resolved", Err: err}
		}
		if apperror.IsDependency(err) {
			return err
		}
		return apperror.DependencyError{Dependency: "geocoder", Err: err}
	}
	if !res.Coordinates.Valid() {
		return apperror.ValidationError{Field: field + ".address", Msg: "address resolved to an invalid point"}
	}

	coords := res.Coordinates
	e.Coordinates = &coords
	if res.NormalizedAddress != "" {
		e.Address = res.NormalizedAddress
	}
	return nil
}

func (uc *BookingUC) price(ctx context.Context, origin, destination models.Endpoint, card pricing.RateCard) (models.Pricing, error) {
	est, err := uc.estimator.Estimate(ctx, *origin.Coordinates, *destination.Coordinates)
	if err != nil {
		return models.Pricing{}, apperror.DependencyError{Dependency: "distance estimator", Err: err}
	}
	return pricing.Quote(est.DistanceKm, card)
}

func (uc *BookingUC) minutesPerKm() float64 {
	if uc.cfg.Sequencer.MinutesPerKm > 0 {
		return uc.cfg.Sequencer.MinutesPerKm
	}
	return sequencer.DefaultMinutesPerKm
}

// refundOnCancel refunds the booking's live payment, if any
func (uc *BookingUC) refundOnCancel(ctx context.Context, b *models.Booking, reason string, result *models.TransitionResult) {
	payment, err := uc.escrow.PaymentForBooking(ctx, b.ID)
	if err != nil {
		uc.warn(ctx, b, "refund", err, result)
		return
	}
	if payment == nil || !payment.BlocksNewPayment() {
		return
	}

	if reason == "" {
		reason = "booking cancelled"
	}
	outcome, err := uc.escrow.Refund(ctx, payment.ID, reason, models.SystemActor)
	if err != nil {
		uc.warn(ctx, b, "refund", err, result)
		return
	}

	result.Payment = outcome.Payment
	result.ManualInterventionRequired = outcome.ManualInterventionRequired
	setPaymentView(b, outcome.Payment)

	if outcome.ManualInterventionRequired {
		uc.warn(ctx, b, "refund", apperror.ManualInterventionRequired{
			PaymentID: payment.ID.String(),
			Reason:    "escrow already released",
		}, result)
	}
}

// releaseEscrow pays out the held escrow of a completed booking
func (uc *BookingUC) releaseEscrow(ctx context.Context, b *models.Booking, result *models.TransitionResult) {
	payment, err := uc.escrow.PaymentForBooking(ctx, b.ID)
	if err != nil {
		uc.warn(ctx, b, "escrow_release", err, result)
		return
	}
	if payment == nil {
		logger.InfoCtx(ctx, "Completed booking has no payment to release",
			logger.BookingID(b.ID))
		return
	}
	if payment.Status != models.PaymentStatusCompleted {
		uc.warn(ctx, b, "escrow_release",
			fmt.Errorf("payment %s is %s, escrow not released", payment.ID, payment.Status), result)
		setPaymentView(b, payment)
		return
	}

	released, err := uc.escrow.AutoRelease(ctx, payment.ID)
	if err != nil {
		uc.warn(ctx, b, "escrow_release", err, result)
		setPaymentView(b, payment)
		return
	}
	result.Payment = released
	setPaymentView(b, released)
}

// recomputeAvailability sets the truck free exactly when it has no active
// bookings left. It is a fresh read-then-write and safe to repeat.
func (uc *BookingUC) recomputeAvailability(ctx context.Context, b *models.Booking, result *models.TransitionResult) {
	active, err := uc.bookings.CountActiveByTruck(ctx, b.TruckID)
	if err != nil {
		uc.warn(ctx, b, "truck_availability", err, result)
		return
	}
	if err := uc.trucks.SetAvailability(ctx, b.TruckID, active == 0); err != nil {
		uc.warn(ctx, b, "truck_availability", err, result)
		return
	}
	logger.DebugCtx(ctx, "Truck availability recomputed",
		logger.TruckID(b.TruckID),
		logger.Int("active_bookings", active))
}

func (uc *BookingUC) notifyCancellation(ctx context.Context, b *models.Booking, actor models.Actor, reason string, result *models.TransitionResult) {
	message := "Your booking has been cancelled"
	if reason != "" {
		message = fmt.Sprintf("Your booking has been cancelled: %s", reason)
	}

	var recipients []uuid.UUID
	switch actor.UserID {
	case b.CustomerID:
		recipients = []uuid.UUID{b.TruckerID}
	case b.TruckerID:
		recipients = []uuid.UUID{b.CustomerID}
	default:
		recipients = []uuid.UUID{b.CustomerID, b.TruckerID}
	}

	for _, userID := range recipients {
		uc.notify(ctx, b, models.Notification{
			UserID:  userID,
			Type:    models.NotificationBookingCancelled,
			Title:   "Booking cancelled",
			Message: message,
		}, result)
	}
}

func (uc *BookingUC) notify(ctx context.Context, b *models.Booking, n models.Notification, result *models.TransitionResult) {
	id := b.ID
	n.RelatedBookingID = &id
	if err := uc.notifier.Notify(ctx, n); err != nil {
		uc.warn(ctx, b, "notification", err, result)
	}
}

func (uc *BookingUC) appendActivity(ctx context.Context, b *models.Booking, action string, actor models.Actor, metadata map[string]interface{}, result *models.TransitionResult) {
	entry := models.NewActivityEntry(b.TruckID, b.ID, action, actor, metadata, uc.now())
	if err := uc.activity.Append(ctx, entry); err != nil {
		uc.warn(ctx, b, "activity_log", err, result)
	}
}

func (uc *BookingUC) publishStatus(ctx context.Context, b *models.Booking, from models.BookingStatus, actor models.Actor, result *models.TransitionResult) {
	event := models.BookingEvent{
		BookingID:  b.ID.String(),
		CustomerID: b.CustomerID.String(),
		TruckerID:  b.TruckerID.String(),
		TruckID:    b.TruckID.String(),
		From:       from,
		Status:     b.Status,
		ActorRole:  actor.Role,
		Timestamp:  b.UpdatedAt,
	}
	if err := uc.events.PublishStatusChanged(ctx, event); err != nil {
		uc.warn(ctx, b, "event_publish", err, result)
	}
}

// project replaces the stored payment status with the one derived from the
// payment record
func (uc *BookingUC) project(ctx context.Context, b *models.Booking) {
	payment, err := uc.escrow.PaymentForBooking(ctx, b.ID)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to load payment for booking view",
			logger.BookingID(b.ID),
			logger.Err(err))
		return
	}
	if payment != nil {
		setPaymentView(b, payment)
	}
}

// warn logs a failed side effect and, for transitions, reports it on the result
func (uc *BookingUC) warn(ctx context.Context, b *models.Booking, effect string, err error, result *models.TransitionResult) {
	logger.WarnCtx(ctx, "Booking side effect failed",
		logger.BookingID(b.ID),
		logger.String("effect", effect),
		logger.Err(err))
	if result != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", effect, err))
	}
}

func setPaymentView(b *models.Booking, p *models.Payment) {
	id := p.ID
	b.Payment.PaymentID = &id
	b.Payment.Status = p.ProjectedStatus()
}

func staleBooking(id uuid.UUID) error {
	return apperror.ConflictError{
		Resource: "booking",
		Msg:      fmt.Sprintf("booking %s changed concurrently, retry", id),
		Err:      apperror.ErrStaleState,
	}
}

func validateCreateRequest(req models.CreateBookingRequest) error {
	if req.TruckID == uuid.Nil {
		return apperror.ValidationError{Field: "truck_id", Msg: "is required"}
	}
	if err := validateEndpoint(req.Origin, "origin"); err != nil {
		return err
	}
	if err := validateEndpoint(req.Destination, "destination"); err != nil {
		return err
	}
	if err := validateSchedule(req.Origin, req.Destination); err != nil {
		return err
	}
	return validateCargo(req.Cargo)
}

func validateEndpoint(e models.Endpoint, field string) error {
	if e.Coordinates != nil && !e.Coordinates.Valid() {
		return apperror.ValidationError{Field: field + ".coordinates", Msg: "must be a valid point"}
	}
	if !e.Coordinates.Valid() && utils.SanitizeString(e.Address) == "" {
		return apperror.ValidationError{Field: field + ".address", Msg: "address or coordinates are required"}
	}
	return nil
}

func validateSchedule(origin, destination models.Endpoint) error {
	if origin.Time != nil && destination.Time != nil && !destination.Time.After(*origin.Time) {
		return apperror.ValidationError{Field: "destination.time", Msg: "dropoff must be after pickup"}
	}
	return nil
}

func validateCargo(c models.Cargo) error {
	if utils.SanitizeString(c.Type) == "" {
		return apperror.ValidationError{Field: "cargo.type", Msg: "is required"}
	}
	if !(c.WeightKg > 0) || math.IsInf(c.WeightKg, 0) {
		return apperror.ValidationError{Field: "cargo.weight_kg", Msg: "must be a positive number"}
	}
	if c.VolumeM3 != nil && (!(*c.VolumeM3 >= 0) || math.IsInf(*c.VolumeM3, 0)) {
		return apperror.ValidationError{Field: "cargo.volume_m3", Msg: "must be a non-negative number"}
	}
	return nil
}

func checkCapacity(c models.Cargo, truck *models.Truck) error {
	if c.WeightKg > truck.CapacityKg {
		return apperror.ValidationError{
			Field: "cargo.weight_kg",
			Msg:   fmt.Sprintf("%.2f kg exceeds truck capacity of %.2f kg", c.WeightKg, truck.CapacityKg),
		}
	}
	return nil
}
