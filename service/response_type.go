package service

// ResponseType enumerates the outcomes of a call to PayPal
type ResponseType int

const (
	// Success response with a JSON body
	Success ResponseType = iota

	// NoContent is a successful response with an empty body
	NoContent

	// NotFound response. Missing resources are a normal outcome, not a failure
	NotFound

	// Unauthorized means PayPal rejected the credentials or the bearer token
	Unauthorized

	// BadNetwork means PayPal could not be reached or the response was cut short
	BadNetwork

	// Error response carrying whatever PayPal reported
	Error
)

var vals = [...]string{
	"success",
	"no-content",
	"not-found",
	"unauthorized",
	"bad-network",
	"error",
}

// String representation of `ResponseType`
func (a ResponseType) String() string {
	if a < 0 || int(a) >= len(vals) {
		return "unknown"
	}
	return vals[a]
}

// IsSuccess reports whether the response type is one of the non-failure
// outcomes.
func (a ResponseType) IsSuccess() bool {
	return a == Success || a == NoContent || a == NotFound
}
