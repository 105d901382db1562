package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/schoolpay/feeledger/internal/domain"
	"github.com/schoolpay/feeledger/internal/usecase"
)

// EnrollRequest represents a request to enroll a student.
type EnrollRequest struct {
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	ClassID     string `json:"class_id"`
}

// ToUseCaseInput converts to use case input.
func (r *EnrollRequest) ToUseCaseInput() usecase.EnrollInput {
	return usecase.EnrollInput{
		StudentID:   r.StudentID,
		StudentName: r.StudentName,
		ClassID:     r.ClassID,
	}
}

// RecordPaymentRequest represents a request to record a tuition payment.
type RecordPaymentRequest struct {
	StudentID    string          `json:"student_id"`
	Amount       decimal.Decimal `json:"amount"`
	PaidAt       *time.Time      `json:"paid_at,omitempty"`
	Description  string          `json:"description,omitempty"`
	PayerName    string          `json:"payer_name"`
	PayerContact string          `json:"payer_contact,omitempty"`
	Method       string          `json:"method"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordPaymentRequest) ToUseCaseInput() usecase.RecordPaymentInput {
	return usecase.RecordPaymentInput{
		StudentID:    r.StudentID,
		Amount:       r.Amount,
		PaidAt:       r.PaidAt,
		Description:  r.Description,
		PayerName:    r.PayerName,
		PayerContact: r.PayerContact,
		Method:       domain.PaymentMethod(r.Method),
	}
}

// UpsertFeeEntryRequest represents a request to create or replace a fee entry.
type UpsertFeeEntryRequest struct {
	Grade           string          `json:"grade"`
	AnnualAmount    decimal.Decimal `json:"annual_amount"`
	InstallmentPlan string          `json:"installment_plan,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpsertFeeEntryRequest) ToUseCaseInput() usecase.UpsertFeeEntryInput {
	return usecase.UpsertFeeEntryInput{
		Grade:           r.Grade,
		AnnualAmount:    r.AnnualAmount,
		InstallmentPlan: r.InstallmentPlan,
	}
}

// CreateRosterRequest represents a request to create a class roster.
type CreateRosterRequest struct {
	ClassID string `json:"class_id,omitempty"`
	Name    string `json:"name"`
	Grade   string `json:"grade"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateRosterRequest) ToUseCaseInput() usecase.CreateRosterInput {
	return usecase.CreateRosterInput{
		ClassID: r.ClassID,
		Name:    r.Name,
		Grade:   r.Grade,
	}
}

// PaginationRequest represents pagination parameters.
type PaginationRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
