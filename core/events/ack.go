package events

const (
	// KindAckSent identifies a waker echoed back to the backend.
	KindAckSent Kind = "ack.sent"
	// KindAckForfeited identifies a pending waker dropped without sending.
	KindAckForfeited Kind = "ack.forfeited"
)

type AckSent struct {
	Base
	Waker string
}

func NewAckSent(waker string) AckSent {
	return AckSent{Base: NewBase(KindAckSent), Waker: waker}
}

// AckForfeited records why a pending waker was never sent.
type AckForfeited struct {
	Base
	Waker  string
	Reason string
}

func NewAckForfeited(waker, reason string) AckForfeited {
	return AckForfeited{Base: NewBase(KindAckForfeited), Waker: waker, Reason: reason}
}
