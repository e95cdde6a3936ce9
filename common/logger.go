// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

import (
	"github.com/ipfs/go-log"

	commonint "github.com/iofinnet/bsgs/common/int"
)

const (
	LoggerName = "bsgs"

	formatIntDigits = 8
)

var Logger = log.Logger(LoggerName)

// SetLogLevel sets the level of the package logger, e.g. "debug" or "warn".
func SetLogLevel(level string) error {
	return log.SetLogLevel(LoggerName, level)
}

// FormatInt renders x for log lines, eliding the middle digits of large values.
func FormatInt[T any](b commonint.Backend[T], x T) string {
	s := b.String(x)
	if len(s) <= 2*formatIntDigits+3 {
		return s
	}
	return s[:formatIntDigits] + "..." + s[len(s)-formatIntDigits:]
}
