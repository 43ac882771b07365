package detector

const (
	// AnalysisFailedMessage is shown to the user for any analysis failure
	AnalysisFailedMessage = "Failed to analyze text. Please try again."

	// HumanizeFailedMessage is shown to the user for any rewrite failure
	HumanizeFailedMessage = "Failed to humanize text. The model may be unavailable. Please try again later."
)

// AnalysisError is returned by Analyze. Error() is always the fixed
// user-facing message; the cause is kept for logging.
type AnalysisError struct {
	RequestID string
	Cause     error
}

func (e *AnalysisError) Error() string {
	return AnalysisFailedMessage
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// HumanizeError is returned by Humanize
type HumanizeError struct {
	RequestID string
	Cause     error
}

func (e *HumanizeError) Error() string {
	return HumanizeFailedMessage
}

func (e *HumanizeError) Unwrap() error {
	return e.Cause
}

// Detail renders the underlying cause, or the user message when there is none
func Detail(err error) string {
	switch e := err.(type) {
	case *AnalysisError:
		if e.Cause != nil {
			return e.Cause.Error()
		}
	case *HumanizeError:
		if e.Cause != nil {
			return e.Cause.Error()
		}
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
