package episcan

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/episcan/internal/allele"
	"github.com/hupe1980/episcan/internal/mask"
	"github.com/hupe1980/episcan/internal/resource"
	"github.com/hupe1980/episcan/internal/role"
	"github.com/hupe1980/episcan/internal/store"
)

var (
	// ErrUnknownMarker is returned for a marker ID outside the study.
	ErrUnknownMarker = errors.New("unknown marker")

	// ErrUnknownIndividual is returned for an individual ID outside the study.
	ErrUnknownIndividual = errors.New("unknown individual")

	// ErrMalformedCall is returned for a call that is not an allele pair.
	ErrMalformedCall = errors.New("malformed call")

	// ErrTooManyGenotypes is returned when a marker has more than three
	// distinct calls or calls that cannot be biallelic.
	ErrTooManyGenotypes = errors.New("more than three genotypes")

	// ErrInconsistentAlleles is returned in strict mode when a heterozygote
	// shares no allele with a homozygote of the same marker.
	ErrInconsistentAlleles = errors.New("inconsistent alleles")

	// ErrAlreadyLoaded is returned when a marker is loaded twice.
	ErrAlreadyLoaded = errors.New("marker already loaded")

	// ErrCallCount is returned when a marker does not have one call per individual.
	ErrCallCount = errors.New("wrong number of calls")

	// ErrOverlap is returned when individuals are both cases and controls.
	ErrOverlap = errors.New("individuals in both case and control sets")

	// ErrMemoryLimitExceeded is returned when the configured memory limit
	// would be exceeded.
	ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

	// ErrInvalidOptions is returned for an invalid configuration.
	ErrInvalidOptions = errors.New("invalid options")
)

// LoadError describes why a marker could not be loaded. Individual and Call
// are empty when the error is not tied to a single call.
//
// The original underlying error can be accessed via errors.Unwrap.
type LoadError struct {
	Row        int
	Marker     string
	Column     int
	Individual string
	Call       string
	cause      error
}

func (e *LoadError) Error() string {
	if e.Individual == "" {
		return fmt.Sprintf("load marker %q: %v", e.Marker, e.cause)
	}
	return fmt.Sprintf("load marker %q individual %q (call %q): %v", e.Marker, e.Individual, e.Call, e.cause)
}

func (e *LoadError) Unwrap() error { return e.cause }

// SelectionError reports every individual that made a case/control selection
// ambiguous.
//
// The original underlying error can be accessed via errors.Unwrap.
type SelectionError struct {
	Overlapping []string
	Unknown     []string
	cause       error
}

func (e *SelectionError) Error() string {
	var b strings.Builder
	b.WriteString("select cases/controls")
	if len(e.Overlapping) > 0 {
		fmt.Fprintf(&b, ": %d individuals in both sets %v", len(e.Overlapping), e.Overlapping)
	}
	if len(e.Unknown) > 0 {
		fmt.Fprintf(&b, "; %d unknown %v", len(e.Unknown), e.Unknown)
	}
	return b.String()
}

func (e *SelectionError) Unwrap() error { return e.cause }

// translateError maps internal errors onto the public sentinels. Both the
// sentinel and the original error remain reachable through errors.Is.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, allele.ErrMalformedCall):
		return fmt.Errorf("%w: %w", ErrMalformedCall, err)
	case errors.Is(err, role.ErrTooManyCodes),
		errors.Is(err, role.ErrThirdHomozygote),
		errors.Is(err, role.ErrSecondHeterozygote):
		return fmt.Errorf("%w: %w", ErrTooManyGenotypes, err)
	case errors.Is(err, role.ErrInconsistentAlleles):
		return fmt.Errorf("%w: %w", ErrInconsistentAlleles, err)
	case errors.Is(err, store.ErrRowLoaded):
		return fmt.Errorf("%w: %w", ErrAlreadyLoaded, err)
	case errors.Is(err, store.ErrCallCount):
		return fmt.Errorf("%w: %w", ErrCallCount, err)
	case errors.Is(err, store.ErrRowOutOfRange):
		return fmt.Errorf("%w: %w", ErrUnknownMarker, err)
	case errors.Is(err, mask.ErrOverlap):
		return fmt.Errorf("%w: %w", ErrOverlap, err)
	case errors.Is(err, resource.ErrMemoryLimitExceeded):
		return fmt.Errorf("%w: %w", ErrMemoryLimitExceeded, err)
	}

	return err
}
