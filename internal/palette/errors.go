package palette

import "errors"

// ErrInvalidPalette reports a stop list that is empty or does not span
// exactly [0, 1].
var ErrInvalidPalette = errors.New("palette: stops must be non-empty and span [0, 1]")
