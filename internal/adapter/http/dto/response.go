package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/schoolpay/feeledger/internal/domain"
	"github.com/schoolpay/feeledger/internal/usecase"
)

// AccountResponse represents a student account in API responses.
type AccountResponse struct {
	ID                string          `json:"id"`
	StudentID         string          `json:"student_id"`
	StudentName       string          `json:"student_name"`
	ClassID           string          `json:"class_id"`
	GradeAtEnrollment string          `json:"grade_at_enrollment"`
	TuitionFee        decimal.Decimal `json:"tuition_fee"`
	AmountDue         decimal.Decimal `json:"amount_due"`
	TuitionStatus     string          `json:"tuition_status"`
	Version           int64           `json:"version"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.StudentAccount) *AccountResponse {
	return &AccountResponse{
		ID:                a.ID,
		StudentID:         a.StudentID,
		StudentName:       a.StudentName,
		ClassID:           a.ClassID,
		GradeAtEnrollment: a.GradeAtEnrollment,
		TuitionFee:        a.TuitionFee,
		AmountDue:         a.AmountDue,
		TuitionStatus:     string(a.TuitionStatus),
		Version:           a.Version,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.StudentAccount) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// PaymentResponse represents a payment ledger entry in API responses.
type PaymentResponse struct {
	ID             string          `json:"id"`
	StudentID      string          `json:"student_id"`
	PaidAt         time.Time       `json:"paid_at"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	PayerName      string          `json:"payer_name"`
	PayerContact   string          `json:"payer_contact,omitempty"`
	Method         string          `json:"method"`
	JournalEntryID string          `json:"journal_entry_id"`
	CreatedAt      time.Time       `json:"created_at"`
}

// PaymentFromDomain converts a domain payment to a response.
func PaymentFromDomain(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:             p.ID,
		StudentID:      p.StudentID,
		PaidAt:         p.PaidAt,
		Amount:         p.Amount,
		Description:    p.Description,
		PayerName:      p.PayerName,
		PayerContact:   p.PayerContact,
		Method:         string(p.Method),
		JournalEntryID: p.JournalEntryID,
		CreatedAt:      p.CreatedAt,
	}
}

// PaymentsFromDomain converts domain payments to responses.
func PaymentsFromDomain(payments []*domain.Payment) []*PaymentResponse {
	result := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		result[i] = PaymentFromDomain(p)
	}
	return result
}

// PaymentResultResponse mirrors the committed state after recording a payment.
type PaymentResultResponse struct {
	PaymentID      string          `json:"payment_id"`
	JournalEntryID string          `json:"journal_entry_id"`
	ReceiptNo      string          `json:"receipt_no"`
	StudentID      string          `json:"student_id"`
	StudentName    string          `json:"student_name"`
	Amount         decimal.Decimal `json:"amount"`
	NewBalance     decimal.Decimal `json:"new_balance"`
	NewStatus      string          `json:"new_status"`
	PaidAt         time.Time       `json:"paid_at"`
	PayerName      string          `json:"payer_name"`
	Method         string          `json:"method"`
}

// PaymentResultFromUseCase converts a payment result to a response.
func PaymentResultFromUseCase(r *usecase.PaymentResult) *PaymentResultResponse {
	return &PaymentResultResponse{
		PaymentID:      r.PaymentID,
		JournalEntryID: r.JournalEntryID,
		ReceiptNo:      r.ReceiptNo,
		StudentID:      r.StudentID,
		StudentName:    r.StudentName,
		Amount:         r.Amount,
		NewBalance:     r.NewBalance,
		NewStatus:      string(r.NewStatus),
		PaidAt:         r.PaidAt,
		PayerName:      r.PayerName,
		Method:         string(r.Method),
	}
}

// JournalEntryResponse represents a journal entry in API responses.
type JournalEntryResponse struct {
	ID          string          `json:"id"`
	EntryDate   time.Time       `json:"entry_date"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Direction   string          `json:"direction"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

// JournalEntryFromDomain converts a domain journal entry to a response.
func JournalEntryFromDomain(e *domain.JournalEntry) *JournalEntryResponse {
	return &JournalEntryResponse{
		ID:          e.ID,
		EntryDate:   e.EntryDate,
		Description: e.Description,
		Category:    e.Category,
		Direction:   string(e.Direction),
		Amount:      e.Amount,
		CreatedAt:   e.CreatedAt,
	}
}

// JournalEntriesFromDomain converts domain journal entries to responses.
func JournalEntriesFromDomain(entries []*domain.JournalEntry) []*JournalEntryResponse {
	result := make([]*JournalEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = JournalEntryFromDomain(e)
	}
	return result
}

// FeeEntryResponse represents a fee schedule entry in API responses.
type FeeEntryResponse struct {
	Grade           string          `json:"grade"`
	AnnualAmount    decimal.Decimal `json:"annual_amount"`
	InstallmentPlan string          `json:"installment_plan,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// FeeEntryFromDomain converts a domain fee entry to a response.
func FeeEntryFromDomain(f *domain.FeeScheduleEntry) *FeeEntryResponse {
	return &FeeEntryResponse{
		Grade:           f.Grade,
		AnnualAmount:    f.AnnualAmount,
		InstallmentPlan: f.InstallmentPlan,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

// FeeEntriesFromDomain converts domain fee entries to responses.
func FeeEntriesFromDomain(entries []*domain.FeeScheduleEntry) []*FeeEntryResponse {
	result := make([]*FeeEntryResponse, len(entries))
	for i, f := range entries {
		result[i] = FeeEntryFromDomain(f)
	}
	return result
}

// RosterResponse represents a class roster in API responses.
type RosterResponse struct {
	ClassID       string    `json:"class_id"`
	Name          string    `json:"name"`
	Grade         string    `json:"grade"`
	EnrolledCount int64     `json:"enrolled_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RosterFromDomain converts a domain roster to a response.
func RosterFromDomain(r *domain.ClassRoster) *RosterResponse {
	return &RosterResponse{
		ClassID:       r.ClassID,
		Name:          r.Name,
		Grade:         r.Grade,
		EnrolledCount: r.EnrolledCount,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// RostersFromDomain converts domain rosters to responses.
func RostersFromDomain(rosters []*domain.ClassRoster) []*RosterResponse {
	result := make([]*RosterResponse, len(rosters))
	for i, r := range rosters {
		result[i] = RosterFromDomain(r)
	}
	return result
}

// ReceiptResponse joins a payment with its journal entry.
type ReceiptResponse struct {
	Payment      *PaymentResponse      `json:"payment"`
	JournalEntry *JournalEntryResponse `json:"journal_entry"`
}

// ReceiptFromUseCase converts a receipt to a response.
func ReceiptFromUseCase(r *usecase.Receipt) *ReceiptResponse {
	return &ReceiptResponse{
		Payment:      PaymentFromDomain(r.Payment),
		JournalEntry: JournalEntryFromDomain(r.JournalEntry),
	}
}

// ReconciliationResponse represents a per-student reconciliation result.
type ReconciliationResponse struct {
	StudentID         string          `json:"student_id"`
	TuitionFee        decimal.Decimal `json:"tuition_fee"`
	RecordedBalance   decimal.Decimal `json:"recorded_balance"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
	Difference        decimal.Decimal `json:"difference"`
	IsReconciled      bool            `json:"is_reconciled"`
	CheckedAt         time.Time       `json:"checked_at"`
}

// ReconciliationFromUseCase converts a reconciliation result to a response.
func ReconciliationFromUseCase(r *usecase.StudentReconciliation) *ReconciliationResponse {
	return &ReconciliationResponse{
		StudentID:         r.StudentID,
		TuitionFee:        r.TuitionFee,
		RecordedBalance:   r.RecordedBalance,
		CalculatedBalance: r.CalculatedBalance,
		Difference:        r.Difference,
		IsReconciled:      r.IsReconciled,
		CheckedAt:         r.CheckedAt,
	}
}

// ConsistencyResponse represents the ledger pairing check result.
type ConsistencyResponse struct {
	UnpairedPayments int64     `json:"unpaired_payments"`
	IsConsistent     bool      `json:"is_consistent"`
	CheckedAt        time.Time `json:"checked_at"`
}

// ConsistencyFromUseCase converts a consistency result to a response.
func ConsistencyFromUseCase(c *usecase.LedgerConsistency) *ConsistencyResponse {
	return &ConsistencyResponse{
		UnpairedPayments: c.UnpairedPayments,
		IsConsistent:     c.IsConsistent,
		CheckedAt:        c.CheckedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
