package tombola

import "errors"

var (
	// ErrValidation is returned when required input is missing or malformed.
	ErrValidation = errors.New("validation error")

	// ErrNotFound is returned when a referenced QR code, participant, prize or winner does not exist.
	// Store implementations return it (possibly wrapped) for missing rows.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an operation would break a uniqueness rule:
	// a QR code used twice or a participant winning twice.
	// Store implementations return it (possibly wrapped) for unique-constraint violations.
	ErrConflict = errors.New("conflict")

	// ErrNoEligibleParticipants is returned by Draw when every participant has already won.
	ErrNoEligibleParticipants = errors.New("no eligible participants")
)

// Error is a domain error carrying a stable machine-readable code and a
// human-readable message. Kind is one of the sentinel errors above.
type Error struct {
	Kind    error
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Error codes surfaced to API clients.
const (
	CodeValidation             = "VALIDATION_ERROR"
	CodeQRCodeNotFound         = "QR_CODE_NOT_FOUND"
	CodeQRCodeAlreadyUsed      = "QR_CODE_ALREADY_USED"
	CodeQRCodeExists           = "QR_CODE_EXISTS"
	CodeQRCodeInUse            = "QR_CODE_IN_USE"
	CodeParticipantNotFound    = "PARTICIPANT_NOT_FOUND"
	CodePrizeNotFound          = "PRIZE_NOT_FOUND"
	CodePrizeHasWinners        = "PRIZE_HAS_WINNERS"
	CodeWinnerNotFound         = "WINNER_NOT_FOUND"
	CodeAlreadyWon             = "ALREADY_WON"
	CodeNoEligibleParticipants = "NO_ELIGIBLE_PARTICIPANTS"
)
