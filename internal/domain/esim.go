package domain

import (
	"context"
	"fmt"
	"time"
)

type ESim struct {
	ICCID       string
	SMDPAddress string
	MatchingID  string
	OrderID     *string
	CreatedAt   time.Time
}

// LPAString returns the activation code encoded in eSIM QR codes.
func (e ESim) LPAString() string {
	return fmt.Sprintf("LPA:1$%s$%s", e.SMDPAddress, e.MatchingID)
}

func (e ESim) HasActivationCode() bool {
	return e.SMDPAddress != "" && e.MatchingID != ""
}

type ESimRepository interface {
	GetByICCID(ctx context.Context, iccid string) (*ESim, error)
}
