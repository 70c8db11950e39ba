package error

// Report and search error codes.
const (
	ErrCodeMissingReportOwner OKRErrorCode = "RPT-010001"
	ErrCodeInvalidTimeframe   OKRErrorCode = "RPT-010002"
	ErrCodeMissingSearchQuery OKRErrorCode = "RPT-010003"
	ErrCodeInvalidSearchScope OKRErrorCode = "RPT-010004"
)
