package geometry

// Seat size bounds for the canonical geometry, in points.
const (
	SeatMin = 60
	SeatMax = 130
)

// Spacing and padding, in points at scale 1.
const (
	CaptionGap     = 8
	InnerPadX      = 8
	InnerPadTop    = 8
	InnerPadBottom = 12
	SeatSpacing    = 8
	RowSpacing     = 28
	BankSpacing    = 24

	MarginLR     = 28
	MarginTop    = 56
	MarginBottom = 24

	// FontEstimate is the height reserved for a label under each seat.
	FontEstimate = 14
	// TitleY is the baseline of the on-screen title.
	TitleY = 24
)

// Label font bounds, in points.
const (
	FontMax = 12
	FontMin = 7
)

// minDisplaySeat keeps extremely zoomed-out seats visible.
const minDisplaySeat = 4

// captionAllowance is the vertical space in a bank outside the seat itself.
const captionAllowance = InnerPadTop + CaptionGap + FontEstimate + InnerPadBottom
