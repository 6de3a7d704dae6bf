package domain

import "errors"

// Error kinds surfaced by the rendering core. Callers match them with
// errors.Is; the concrete wrapping message carries the detail.
var (
	// ErrAssetMissing indicates a bitmap required by an active layer could
	// not be obtained. Renderers recover locally (previous bitmap or blank
	// placeholder); it never aborts a frame.
	ErrAssetMissing = errors.New("asset missing")

	// ErrTopologyConflict indicates the skin configuration declares an
	// unsupported element combination. Surfaced at load time, not retried.
	ErrTopologyConflict = errors.New("skin topology conflict")

	// ErrPresentationFailure indicates the display backend rejected a
	// blit/present. Fatal to the current tick only.
	ErrPresentationFailure = errors.New("presentation failure")
)
