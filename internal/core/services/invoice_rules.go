package services

import (
	"fmt"
	"time"

	"github.com/finportal/invoice_finance_app/internal/apperrors"
	"github.com/finportal/invoice_finance_app/internal/core/domain"
)

// Pure validation rules for the invoice lifecycle. Each returns nil on
// success or an AppError carrying the classified kind and the exact
// caller-facing message. Lookups (supplier existence, number uniqueness) stay
// in the service since they need the repository.

const (
	actionUpdate = "update"
	actionDelete = "delete"
)

// checkDateNotInPast fails when the invoice date precedes today's date.
func checkDateNotInPast(date, today time.Time) error {
	if domain.DaysBetween(date, today) > 0 {
		return apperrors.NewAppError(apperrors.ErrInvalidDate, "The invoice date is an older date.")
	}
	return nil
}

// checkOwnedBy fails when the caller identity does not match the invoice
// owner. action is "update" or "delete" and only affects the message.
func checkOwnedBy(inv domain.Invoice, callerIdentity, action string) error {
	if inv.OwnerID != callerIdentity {
		return apperrors.NewAppError(apperrors.ErrForbidden,
			fmt.Sprintf("%s you do not have permission to %s this invoice.", callerIdentity, action))
	}
	return nil
}

// checkEditable fails unless the invoice is still PENDING, naming the
// current status.
func checkEditable(inv domain.Invoice, action string) error {
	if !inv.Status.Editable() {
		return apperrors.NewAppError(apperrors.ErrConflict,
			fmt.Sprintf("This invoice can not %s, because invoice is %s.", action, inv.Status))
	}
	return nil
}

// checkTransitionAllowed fails when the invoice is already in a terminal
// state, naming the current status.
func checkTransitionAllowed(inv domain.Invoice) error {
	if !inv.Status.CanTransition() {
		return apperrors.NewAppError(apperrors.ErrConflict,
			fmt.Sprintf("This invoice can not update, because invoice is %s.", inv.Status))
	}
	return nil
}

// checkNotExpired fails when the invoice age exceeds the expiry threshold.
// Blocks status updates only.
func checkNotExpired(inv domain.Invoice, today time.Time, expiryDays int) error {
	if inv.ExpiredAt(today, expiryDays) {
		return apperrors.NewAppError(apperrors.ErrExpired,
			"You can not update the invoice status, because invoice is expire.")
	}
	return nil
}

// checkRoleIsBank fails unless the caller role is BANK.
func checkRoleIsBank(role domain.Role) error {
	if role != domain.RoleBank {
		return apperrors.NewAppError(apperrors.ErrForbidden,
			"Only BANK users can update the invoice status.")
	}
	return nil
}
