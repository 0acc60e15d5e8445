package sweepstake

import "errors"

var (
	ErrOwnerNotFound    = errors.New("team owner not found")
	ErrAmbiguousResult  = errors.New("ambiguous result")
	ErrInsufficientData = errors.New("insufficient data")
	ErrUnknownPrizeKind = errors.New("unknown prize kind")
)
