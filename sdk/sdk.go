package sdk

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/untillpro/goutils/logger"
)

// -----------------------------------------------------------------------------
// Logging
// -----------------------------------------------------------------------------

// Log writes an info line, used for the short event lines the session emits.
// Example payload: sdk.Log("sa|s:1|k:proof-nft|b:3")
func Log(s string) {
	logger.Info(s)
}

// Logf is Log with formatting.
func Logf(format string, args ...interface{}) {
	logger.Info(fmt.Sprintf(format, args...))
}

// Verbose only formats the message when verbose logging is on.
func Verbose(format string, args ...interface{}) {
	if logger.IsVerbose() {
		logger.Verbose(fmt.Sprintf(format, args...))
	}
}

// Error logs at error level.
func Error(format string, args ...interface{}) {
	logger.Error(fmt.Sprintf(format, args...))
}

// SetVerbose flips the global log level between info and verbose.
func SetVerbose(on bool) {
	if on {
		logger.SetLogLevel(logger.LogLevelVerbose)
		return
	}
	logger.SetLogLevel(logger.LogLevelInfo)
}

// -----------------------------------------------------------------------------
// Transaction execution
// -----------------------------------------------------------------------------

// TxCall is everything a wallet needs to sign and send one batch.
type TxCall struct {
	Contract Address
	ChainID  uint64
	Method   string
	Selector [4]byte
	Args     []interface{}
	Data     []byte
	Account  Address
}

// TxStatus is the state reported back by the executor.
type TxStatus uint8

const (
	TxPending   TxStatus = 1
	TxConfirmed TxStatus = 2
	TxFailed    TxStatus = 3
)

// String prints the status as lower-case text for events and logs.
func (s TxStatus) String() string {
	switch s {
	case TxPending:
		return "pending"
	case TxConfirmed:
		return "confirmed"
	case TxFailed:
		return "failed"
	default:
		return "unspecified"
	}
}

type Receipt struct {
	TxHash      common.Hash
	BlockNumber uint64
	GasUsed     uint64
}

// TxOutcome is one update from the executor. Receipt is set for TxConfirmed, Err for TxFailed.
type TxOutcome struct {
	Status  TxStatus
	Receipt *Receipt
	Err     error
}

// Executor signs and sends calls. Execute returns an error when the call is refused
// up front (declined signature, failed simulation). Otherwise the channel yields an
// optional TxPending followed by exactly one TxConfirmed or TxFailed.
type Executor interface {
	Execute(ctx context.Context, call TxCall) (<-chan TxOutcome, error)
}

// -----------------------------------------------------------------------------
// Notifications
// -----------------------------------------------------------------------------

type NotifyLevel string

const (
	LevelInfo    NotifyLevel = "info"
	LevelSuccess NotifyLevel = "success"
	LevelError   NotifyLevel = "error"
)

type Notification struct {
	Level         NotifyLevel
	Message       string
	CorrelationID string
}

// Notifier receives progress and failure messages. Control flow never depends on it.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a plain func.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// LogNotifier routes notifications into the logger, used when no UI is attached.
type LogNotifier struct{}

func (LogNotifier) Notify(n Notification) {
	if n.Level == LevelError {
		Error("[%s] %s", n.CorrelationID, n.Message)
		return
	}
	Logf("[%s] %s: %s", n.CorrelationID, n.Level, n.Message)
}
