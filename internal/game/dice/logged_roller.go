package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged rolling.
// Every draw is logged at debug level with its bound and result.
//
// Roller itself satisfies Source, so it can be handed to any battle component.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src must be non-nil. A nil logger disables logging.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, logger: logger}
}

// Intn draws from the wrapped Source and logs the result.
//
// Precondition: n > 0.
// Postcondition: result logged; returns a value in [0, n).
func (r *Roller) Intn(n int) int {
	v := r.src.Intn(n)
	r.logger.Debug("dice roll",
		zap.Int("bound", n),
		zap.Int("result", v),
	)
	return v
}
