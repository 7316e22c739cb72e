package voting

import (
	"fmt"

	"okinoko_flowvote/sdk"
)

// emitSessionActivated writes a tiny "sa" line so log readers know which backend a session runs on.
func emitSessionActivated(sessionID string, kind BackendKind, totalBatches int, units int, recorded int) {
	sdk.Log(fmt.Sprintf(
		"sa|s:%s|k:%s|b:%d|u:%d|rv:%d",
		sessionID,
		kind.String(),
		totalBatches,
		units,
		recorded,
	))
}

// emitSessionCancelled mirrors the activate ping when the user backs out.
func emitSessionCancelled(sessionID string) {
	sdk.Log(fmt.Sprintf("sx|s:%s", sessionID))
}

// emitSessionCompleted is logged once the final batch is confirmed.
func emitSessionCompleted(sessionID string, totalBatches int) {
	sdk.Log(fmt.Sprintf(
		"sd|s:%s|b:%d",
		sessionID,
		totalBatches,
	))
}

// emitBatchSubmitted includes unit and recipient counts so gas per batch can be compared from logs only.
func emitBatchSubmitted(sessionID string, index int, total int, units int, recipients int) {
	sdk.Log(fmt.Sprintf(
		"bs|s:%s|b:%d/%d|u:%d|r:%d",
		sessionID,
		index+1,
		total,
		units,
		recipients,
	))
}

// emitBatchConfirmed carries the tx hash when the executor handed one back.
func emitBatchConfirmed(sessionID string, index int, total int, receipt *sdk.Receipt) {
	tx := "-"
	if receipt != nil {
		tx = receipt.TxHash.Hex()
	}
	sdk.Log(fmt.Sprintf(
		"bc|s:%s|b:%d/%d|tx:%s",
		sessionID,
		index+1,
		total,
		tx,
	))
}

// emitBatchFailed keeps the error text, the cursor did not move.
func emitBatchFailed(sessionID string, index int, total int, err error) {
	sdk.Log(fmt.Sprintf(
		"bf|s:%s|b:%d/%d|e:%v",
		sessionID,
		index+1,
		total,
		err,
	))
}
