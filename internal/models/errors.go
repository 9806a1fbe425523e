package models

// JobErrorType represents the category of error that failed a job
type JobErrorType string

const (
	ErrorTypeValidation  JobErrorType = "validation"  // Bad input, rejected before dispatch
	ErrorTypeAcquisition JobErrorType = "acquisition" // All remote fetch strategies exhausted
	ErrorTypeExtraction  JobErrorType = "extraction"  // Media has no usable audio
	ErrorTypeRecognition JobErrorType = "recognition" // Speech recognizer failed
	ErrorTypeSystem      JobErrorType = "system"      // Unexpected internal fault
)

// StructuredJobError carries a user-facing localized message alongside
// the technical diagnostic that ends up in the job's error field.
type StructuredJobError struct {
	Type     JobErrorType
	Code     string
	Message  string // localized, shown to the client
	Details  string // technical, for the error field and logs
	Original error
}

func (e *StructuredJobError) Error() string {
	return e.Details
}

func (e *StructuredJobError) Unwrap() error {
	return e.Original
}

// NewAcquisitionError creates an acquisition-related structured error
func NewAcquisitionError(code, message, details string, originalErr error) *StructuredJobError {
	return &StructuredJobError{
		Type:     ErrorTypeAcquisition,
		Code:     code,
		Message:  message,
		Details:  details,
		Original: originalErr,
	}
}

// NewExtractionError creates an extraction-related structured error
func NewExtractionError(code, message, details string, originalErr error) *StructuredJobError {
	return &StructuredJobError{
		Type:     ErrorTypeExtraction,
		Code:     code,
		Message:  message,
		Details:  details,
		Original: originalErr,
	}
}

// NewRecognitionError creates a recognition-related structured error
func NewRecognitionError(code, message, details string, originalErr error) *StructuredJobError {
	return &StructuredJobError{
		Type:     ErrorTypeRecognition,
		Code:     code,
		Message:  message,
		Details:  details,
		Original: originalErr,
	}
}

// NewSystemError creates a system-related structured error
func NewSystemError(code, message, details string, originalErr error) *StructuredJobError {
	return &StructuredJobError{
		Type:     ErrorTypeSystem,
		Code:     code,
		Message:  message,
		Details:  details,
		Original: originalErr,
	}
}
