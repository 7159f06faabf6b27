package vision

import "context"

// Image is an encoded still frame captured by the client.
type Image struct {
	Data     []byte // full file contents, header included
	MIMEType string // e.g. "image/jpeg"
}

// Coordinates is an optional device geolocation attached to a scan.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Result is the outcome of one description call.
type Result struct {
	Description   string // plain-language description of the scene
	LocationLabel string // resolved place label, empty when no coordinates were given
}

// Provider defines the interface for scene-description providers
type Provider interface {
	// Describe returns a spoken-style description of the image. When
	// coords is non-nil the provider is also asked to resolve the
	// coordinates to a human-readable place label.
	Describe(ctx context.Context, image Image, coords *Coordinates) (*Result, error)

	// Name returns the name of the provider (e.g., "openai")
	Name() string
}
