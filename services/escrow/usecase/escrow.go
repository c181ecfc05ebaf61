package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/angkut/internal/pkg/apperror"
	"github.com/piresc/angkut/internal/pkg/constants"
	"github.com/piresc/angkut/internal/pkg/logger"
	"github.com/piresc/angkut/internal/pkg/models"
	"github.com/piresc/angkut/internal/pkg/pricing"
	"github.com/piresc/angkut/internal/utils"
	"github.com/piresc/angkut/services/escrow"
)

// maxCASAttempts bounds the re-read/re-apply loop of a conditional update
const maxCASAttempts = 3

// EscrowUC implements the escrow ledger. Every state change is a
// compare-and-set on (status, escrowStatus), so the ledger needs no lock of
// its own and can be called while a booking lock is held.
type EscrowUC struct {
	cfg      *models.Config
	repo     escrow.PaymentRepo
	bookings escrow.BookingLink
	gateway  escrow.PaymentGW
	notifier escrow.Notifier
	locker   escrow.Locker
	now      func() time.Time
}

// NewEscrowUC creates the escrow ledger
func NewEscrowUC(
	cfg *models.Config,
	repo escrow.PaymentRepo,
	bookings escrow.BookingLink,
	gateway escrow.PaymentGW,
	notifier escrow.Notifier,
	locker escrow.Locker,
) *EscrowUC {
	return &EscrowUC{
		cfg:      cfg,
		repo:     repo,
		bookings: bookings,
		gateway:  gateway,
		notifier: notifier,
		locker:   locker,
		now:      models.Now,
	}
}

// Initiate creates a held, processing payment for the booking's estimated
// amount and hands it to the gateway.
func (uc *EscrowUC) Initiate(ctx context.Context, bookingID uuid.UUID, actor models.Actor, req models.InitiatePaymentRequest) (*models.Payment, error) {
	phone, err := utils.NormalizeMSISDN(req.PayerPhone)
	if err != nil {
		return nil, apperror.ValidationError{Field: "payer_phone", Msg: err.Error(), Err: err}
	}

	unlock, err := uc.locker.Lock(ctx, fmt.Sprintf(constants.KeyBookingLock, bookingID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	booking, err := uc.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.UserID != booking.CustomerID {
		return nil, apperror.AuthorizationError{Action: "initiate payment", Msg: "only the booking's customer can pay"}
	}
	if booking.Status.IsTerminal() {
		return nil, apperror.ConflictError{Resource: "booking", Msg: fmt.Sprintf("booking is %s", booking.Status)}
	}

	existing, err := uc.repo.LatestByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.BlocksNewPayment() {
		return nil, apperror.ConflictError{
			Resource: "payment",
			Msg:      fmt.Sprintf("booking already has payment %s in status %s", existing.ID, existing.Status),
		}
	}

	amount, err := pricing.RoundToMinorUnits(booking.Pricing.EstimatedAmount, uc.cfg.Pricing.MinorDigits)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	payment := &models.Payment{
		ID:           uuid.New(),
		BookingID:    booking.ID,
		CustomerID:   booking.CustomerID,
		TruckerID:    booking.TruckerID,
		Amount:       amount,
		Currency:     uc.cfg.Pricing.Currency,
		Method:       booking.Payment.Method,
		PayerPhone:   phone,
		Status:       models.PaymentStatusProcessing,
		EscrowStatus: models.EscrowStatusHeld,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	if err := uc.bookings.LinkPayment(ctx, booking.ID, payment.ID, payment.Status); err != nil {
		// the booking view is recomputed from the payment on read
		logger.WarnCtx(ctx, "Failed to link payment to booking",
			logger.BookingID(booking.ID),
			logger.PaymentID(payment.ID),
			logger.Err(err))
	}

	logger.InfoCtx(ctx, "Payment initiated",
		logger.BookingID(booking.ID),
		logger.PaymentID(payment.ID),
		logger.Int64("amount", payment.Amount))

	initiation, err := uc.gateway.Initiate(ctx, payment)
	if err != nil {
		// no outcome: the payment stays processing until the gateway reports back
		logger.WarnCtx(ctx, "Payment gateway gave no outcome",
			logger.PaymentID(payment.ID),
			logger.Err(err))
		return payment, nil
	}

	return uc.applyInitiation(ctx, payment, initiation)
}

func (uc *EscrowUC) applyInitiation(ctx context.Context, payment *models.Payment, initiation models.GatewayInitiation) (*models.Payment, error) {
	ref := strings.TrimSpace(initiation.ExternalRequestID)

	updated, changed, err := uc.mutate(ctx, payment.ID, func(p *models.Payment) (bool, error) {
		changed := false
		if ref != "" && p.ExternalRequestID == nil {
			p.ExternalRequestID = &ref
			changed = true
		}
		switch initiation.Outcome {
		case models.GatewayOutcomeSucceeded:
			changed = uc.applySuccess(ctx, p) || changed
		case models.GatewayOutcomeFailed:
			changed = applyFailure(p) || changed
		}
		return changed, nil
	})
	if err != nil {
		logger.WarnCtx(ctx, "Failed to record gateway initiation",
			logger.PaymentID(payment.ID),
			logger.Err(err))
		return payment, nil
	}
	if changed {
		uc.afterStatusChange(ctx, payment, updated)
	}
	return updated, nil
}

// ConfirmExternalResult applies an asynchronous gateway outcome. Unknown
// references are ignored and repeated results change nothing.
func (uc *EscrowUC) ConfirmExternalResult(ctx context.Context, result models.PaymentResult) error {
	payment, err := uc.findByReference(ctx, result.Reference)
	if err != nil {
		return err
	}
	if payment == nil {
		logger.InfoCtx(ctx, "Ignoring payment result for unknown reference",
			logger.String("reference", result.Reference))
		return nil
	}

	updated, changed, err := uc.mutate(ctx, payment.ID, func(p *models.Payment) (bool, error) {
		if result.Succeeded {
			return uc.applySuccess(ctx, p), nil
		}
		return applyFailure(p), nil
	})
	if err != nil {
		return err
	}
	if changed {
		uc.afterStatusChange(ctx, payment, updated)
	}
	return nil
}

// applySuccess marks p completed. A success after failure is accepted since
// the gateway is authoritative; a success after a refund or cancellation is
// not.
func (uc *EscrowUC) applySuccess(ctx context.Context, p *models.Payment) bool {
	switch p.Status {
	case models.PaymentStatusPending, models.PaymentStatusProcessing, models.PaymentStatusFailed:
		p.Status = models.PaymentStatusCompleted
		if p.PaidAt == nil {
			p.PaidAt = models.TimePtr(uc.now())
		}
		return true
	case models.PaymentStatusRefunded, models.PaymentStatusCancelled:
		logger.WarnCtx(ctx, "Ignoring successful payment result after refund",
			logger.PaymentID(p.ID),
			logger.String("status", string(p.Status)))
	}
	return false
}

func applyFailure(p *models.Payment) bool {
	switch p.Status {
	case models.PaymentStatusPending, models.PaymentStatusProcessing:
		p.Status = models.PaymentStatusFailed
		return true
	}
	return false
}

func (uc *EscrowUC) findByReference(ctx context.Context, reference string) (*models.Payment, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, nil
	}

	payment, err := uc.repo.GetByExternalRequestID(ctx, reference)
	if err == nil {
		return payment, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	// the gateway may answer before the external id was stored
	id, perr := uuid.Parse(reference)
	if perr != nil {
		return nil, nil
	}
	payment, err = uc.repo.GetByID(ctx, id)
	if apperror.IsNotFound(err) {
		return nil, nil
	}
	return payment, err
}

// AutoRelease moves a completed payment's escrow from held to released. It is
// the only path to released and is a no-op on an already released payment.
func (uc *EscrowUC) AutoRelease(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error) {
	updated, changed, err := uc.mutate(ctx, paymentID, func(p *models.Payment) (bool, error) {
		if p.EscrowStatus == models.EscrowStatusReleased {
			return false, nil
		}
		if p.EscrowStatus != models.EscrowStatusHeld || p.Status != models.PaymentStatusCompleted {
			return false, apperror.ConflictError{
				Resource: "escrow",
				Msg: fmt.Sprintf("payment %s is %s with escrow %s; release needs a completed payment held in escrow",
					p.ID, p.Status, p.EscrowStatus),
			}
		}
		p.EscrowStatus = models.EscrowStatusReleased
		p.ReleasedAt = models.TimePtr(uc.now())
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if !changed {
		return updated, nil
	}

	logger.InfoCtx(ctx, "Escrow released",
		logger.PaymentID(updated.ID),
		logger.BookingID(updated.BookingID))

	uc.notify(ctx, models.Notification{
		UserID:           updated.TruckerID,
		Type:             models.NotificationPayoutReleased,
		Title:            "Payout released",
		Message:          fmt.Sprintf("Payment of %d %s has been released to you", updated.Amount, updated.Currency),
		RelatedBookingID: &updated.BookingID,
	})
	return updated, nil
}

// Refund returns a payment's money to the customer. Once escrow has been
// released the refund is only recorded (status cancelled, escrow still
// released) and flagged for manual processing.
func (uc *EscrowUC) Refund(ctx context.Context, paymentID uuid.UUID, reason string, actor models.Actor) (*models.RefundOutcome, error) {
	payment, err := uc.repo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.UserID != payment.CustomerID {
		return nil, apperror.AuthorizationError{Action: "refund payment", Msg: "only the customer or an admin can request a refund"}
	}

	reason = utils.Truncate(utils.SanitizeString(reason), 500)
	var refundedBy *uuid.UUID
	if actor.UserID != uuid.Nil {
		id := actor.UserID
		refundedBy = &id
	}

	manual := false
	updated, _, err := uc.mutate(ctx, paymentID, func(p *models.Payment) (bool, error) {
		if p.Status == models.PaymentStatusRefunded || p.EscrowStatus == models.EscrowStatusRefunded ||
			(p.Status == models.PaymentStatusCancelled && p.ManualProcessingRequired) {
			return false, apperror.ConflictError{Resource: "payment", Msg: fmt.Sprintf("payment %s is already refunded", p.ID)}
		}
		if p.Status == models.PaymentStatusFailed {
			return false, apperror.ConflictError{Resource: "payment", Msg: fmt.Sprintf("payment %s failed; nothing to refund", p.ID)}
		}

		p.RefundReason = &reason
		p.RefundedBy = refundedBy
		if p.EscrowStatus == models.EscrowStatusReleased {
			manual = true
			p.Status = models.PaymentStatusCancelled
			p.ManualProcessingRequired = true
			return true, nil
		}

		manual = false
		p.Status = models.PaymentStatusRefunded
		p.EscrowStatus = models.EscrowStatusRefunded
		if p.RefundedAt == nil {
			p.RefundedAt = models.TimePtr(uc.now())
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	uc.syncBooking(ctx, updated)

	notification := models.Notification{
		UserID:           updated.CustomerID,
		Type:             models.NotificationRefundProcessed,
		Title:            "Refund processed",
		Message:          fmt.Sprintf("Your payment of %d %s has been refunded", updated.Amount, updated.Currency),
		RelatedBookingID: &updated.BookingID,
	}
	if manual {
		logger.WarnCtx(ctx, "Refund after escrow release needs manual processing",
			logger.PaymentID(updated.ID),
			logger.BookingID(updated.BookingID))
		notification.Type = models.NotificationRefundManualReview
		notification.Title = "Refund under review"
		notification.Message = fmt.Sprintf("Your refund of %d %s is being processed manually", updated.Amount, updated.Currency)
	} else {
		logger.InfoCtx(ctx, "Payment refunded",
			logger.PaymentID(updated.ID),
			logger.BookingID(updated.BookingID))
	}
	uc.notify(ctx, notification)

	return &models.RefundOutcome{Payment: updated, ManualInterventionRequired: manual}, nil
}

// GetPayment returns a payment visible to the actor
func (uc *EscrowUC) GetPayment(ctx context.Context, paymentID uuid.UUID, actor models.Actor) (*models.Payment, error) {
	payment, err := uc.repo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.UserID != payment.CustomerID && actor.UserID != payment.TruckerID {
		return nil, apperror.AuthorizationError{Action: "view payment"}
	}
	return payment, nil
}

// PaymentForBooking returns the booking's latest payment or nil
func (uc *EscrowUC) PaymentForBooking(ctx context.Context, bookingID uuid.UUID) (*models.Payment, error) {
	return uc.repo.LatestByBooking(ctx, bookingID)
}

// mutate re-reads the payment, applies fn and writes the result only if the
// stored state is still the one fn saw. fn returns false when there is
// nothing to write.
func (uc *EscrowUC) mutate(ctx context.Context, id uuid.UUID, fn func(p *models.Payment) (bool, error)) (*models.Payment, bool, error) {
	for attempt := 1; attempt <= maxCASAttempts; attempt++ {
		current, err := uc.repo.GetByID(ctx, id)
		if err != nil {
			return nil, false, err
		}

		next := *current
		changed, err := fn(&next)
		if err != nil {
			return nil, false, err
		}
		if !changed {
			return current, false, nil
		}

		next.UpdatedAt = uc.now()
		ok, err := uc.repo.UpdateIfState(ctx, &next, current.Status, current.EscrowStatus)
		if err != nil {
			return nil, false, fmt.Errorf("failed to update payment: %w", err)
		}
		if ok {
			return &next, true, nil
		}

		logger.DebugCtx(ctx, "Payment changed concurrently, retrying",
			logger.PaymentID(id),
			logger.Int("attempt", attempt))
	}
	return nil, false, apperror.ConflictError{Resource: "payment", Msg: "concurrent update", Err: apperror.ErrStaleState}
}

func (uc *EscrowUC) afterStatusChange(ctx context.Context, before, after *models.Payment) {
	if before.Status == after.Status {
		return
	}
	logger.InfoCtx(ctx, "Payment status changed",
		logger.PaymentID(after.ID),
		logger.String("from", string(before.Status)),
		logger.String("to", string(after.Status)))

	uc.syncBooking(ctx, after)

	if after.Status == models.PaymentStatusCompleted {
		uc.notify(ctx, models.Notification{
			UserID:           after.CustomerID,
			Type:             models.NotificationPaymentCompleted,
			Title:            "Payment received",
			Message:          fmt.Sprintf("Your payment of %d %s is held in escrow until delivery", after.Amount, after.Currency),
			RelatedBookingID: &after.BookingID,
		})
	}
}

// syncBooking refreshes the booking's stored copy of the payment status
func (uc *EscrowUC) syncBooking(ctx context.Context, p *models.Payment) {
	if err := uc.bookings.UpdatePaymentStatus(ctx, p.BookingID, p.ProjectedStatus()); err != nil {
		logger.WarnCtx(ctx, "Failed to update booking payment status",
			logger.BookingID(p.BookingID),
			logger.PaymentID(p.ID),
			logger.Err(err))
	}
}

func (uc *EscrowUC) notify(ctx context.Context, n models.Notification) {
	if err := uc.notifier.Notify(ctx, n); err != nil {
		logger.WarnCtx(ctx, "Failed to send notification",
			logger.String("user_id", n.UserID.String()),
			logger.String("type", string(n.Type)),
			logger.Err(err))
	}
}
