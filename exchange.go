package cups

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/enthus-golang/cups/ipp"
)

// Exchange states. Every operation walks build, send, parse, interpret and
// ends in map or fail.
const (
	stateBuild     = "build"
	stateSend      = "send"
	stateParse     = "parse"
	stateInterpret = "interpret"
	stateMap       = "map"
	stateFail      = "fail"
)

const (
	eventBuilt    = "built"
	eventReceived = "received"
	eventParsed   = "parsed"
	eventAccepted = "accepted"
	eventFailed   = "failed"
)

type exchange struct {
	op  ipp.Op
	fsm *fsm.FSM
}

func (m *Manager) newExchange(op ipp.Op) *exchange {
	x := &exchange{op: op}
	x.fsm = fsm.NewFSM(
		stateBuild,
		fsm.Events{
			{Name: eventBuilt, Src: []string{stateBuild}, Dst: stateSend},
			{Name: eventReceived, Src: []string{stateSend}, Dst: stateParse},
			{Name: eventParsed, Src: []string{stateParse}, Dst: stateInterpret},
			{Name: eventAccepted, Src: []string{stateInterpret}, Dst: stateMap},
			{Name: eventFailed, Src: []string{stateBuild, stateSend, stateParse, stateInterpret}, Dst: stateFail},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				m.logger.Debug("ipp exchange", "op", op.String(), "from", e.Src, "to", e.Dst)
			},
		},
	)
	return x
}

// advance fires event. Transitions are driven by the exchange itself, so an
// error here means the exchange was misused.
func (x *exchange) advance(ctx context.Context, event string) error {
	if err := x.fsm.Event(context.WithoutCancel(ctx), event); err != nil {
		return fmt.Errorf("%s: exchange in state %s: %w", x.op, x.fsm.Current(), err)
	}
	return nil
}

// fail moves the exchange to the fail state and hands err back.
func (x *exchange) fail(ctx context.Context, err error) error {
	_ = x.fsm.Event(context.WithoutCancel(ctx), eventFailed)
	return err
}

func (x *exchange) state() string {
	return x.fsm.Current()
}
