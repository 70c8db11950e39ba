package error

// Objective error codes.
const (
	ErrCodeObjectiveNotFound           OKRErrorCode = "OBJ-010001"
	ErrCodeMissingObjectiveTitle       OKRErrorCode = "OBJ-010002"
	ErrCodeMissingObjectiveOwner       OKRErrorCode = "OBJ-010003"
	ErrCodeObjectiveTitleTooLong       OKRErrorCode = "OBJ-010004"
	ErrCodeObjectiveDescriptionTooLong OKRErrorCode = "OBJ-010005"
	ErrCodeInvalidObjectiveStatus      OKRErrorCode = "OBJ-010006"
	ErrCodeInvalidPriority             OKRErrorCode = "OBJ-010007"
	ErrCodeInvalidDueDate              OKRErrorCode = "OBJ-010008"
	ErrCodeNoValidObjectiveFields      OKRErrorCode = "OBJ-010009"
	ErrCodeInvalidObjectiveField       OKRErrorCode = "OBJ-010010"
	ErrCodeMissingAssignee             OKRErrorCode = "OBJ-010011"
	ErrCodeInvalidDays                 OKRErrorCode = "OBJ-010012"
)
