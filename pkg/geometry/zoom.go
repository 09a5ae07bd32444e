package geometry

// Zoom bounds and step factors for the display geometry.
const (
	ZoomMin     = 0.5
	ZoomMax     = 2.0
	ZoomDefault = 1.0

	zoomInFactor  = 1.1
	zoomOutFactor = 0.9
)

// ClampZoom limits z to [ZoomMin, ZoomMax].
func ClampZoom(z float64) float64 {
	return clamp(z, ZoomMin, ZoomMax)
}

// ZoomIn returns the next larger zoom level.
func ZoomIn(z float64) float64 { return ClampZoom(z * zoomInFactor) }

// ZoomOut returns the next smaller zoom level.
func ZoomOut(z float64) float64 { return ClampZoom(z * zoomOutFactor) }
