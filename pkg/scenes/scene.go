package scenes

import (
	"github.com/decker502/textwindow/pkg/game"
)

// Scene is a type alias for game.Scene so scene implementations can live in this package.
type Scene = game.Scene

var _ game.Saveable = (*RideListScene)(nil)
