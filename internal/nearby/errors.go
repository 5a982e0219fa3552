package nearby

import "errors"

var (
	// ErrVenueNotResolved means the search venue could not be geocoded.
	// Distinct from an empty result: the input itself was bad or ambiguous.
	ErrVenueNotResolved = errors.New("venue could not be resolved to coordinates")

	// ErrFeedUnavailable means the event feed call failed or timed out.
	// Callers may retry; it is never conflated with "zero nearby events".
	ErrFeedUnavailable = errors.New("event feed unavailable")
)
