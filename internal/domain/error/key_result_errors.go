package error

// Key result error codes.
const (
	ErrCodeKeyResultNotFound           OKRErrorCode = "KRS-010001"
	ErrCodeMissingKeyResultTitle       OKRErrorCode = "KRS-010002"
	ErrCodeMissingKeyResultOwner       OKRErrorCode = "KRS-010003"
	ErrCodeKeyResultTitleTooLong       OKRErrorCode = "KRS-010004"
	ErrCodeKeyResultDescriptionTooLong OKRErrorCode = "KRS-010005"
	ErrCodeInvalidTarget               OKRErrorCode = "KRS-010006"
	ErrCodeInvalidCurrent              OKRErrorCode = "KRS-010007"
	ErrCodeInvalidKeyResultStatus      OKRErrorCode = "KRS-010008"
	ErrCodeInvalidTrackingType         OKRErrorCode = "KRS-010009"
	ErrCodeInvalidProgressMode         OKRErrorCode = "KRS-010010"
	ErrCodeInvalidProgressValue        OKRErrorCode = "KRS-010011"
	ErrCodeInvalidUnit                 OKRErrorCode = "KRS-010012"
	ErrCodeNoValidKeyResultFields      OKRErrorCode = "KRS-010013"
	ErrCodeInvalidKeyResultField       OKRErrorCode = "KRS-010014"
	ErrCodeInvalidMilestone            OKRErrorCode = "KRS-010015"
)
