// Copyright (C) 2019-2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"time"
)

// RetryPolicy controls transient-failure retries: up to MaxAttempts tries
// with the delay between attempts growing by Multiplier, starting at
// InitialDelay. Retryable decides per error; a nil Retryable retries
// everything.
type RetryPolicy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Multiplier   float64
	Retryable    func(error) bool
}

// DefaultRetryPolicy suits interactive CLI use.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:  5,
		InitialDelay: 500 * time.Millisecond,
		Multiplier:   2,
	}
}

func (p *RetryPolicy) do(fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	delay := p.InitialDelay
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		time.Sleep(delay)
		if p.Multiplier > 0 {
			delay = time.Duration(float64(delay) * p.Multiplier)
		}
	}
	return err
}
