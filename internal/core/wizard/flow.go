// Package wizard is the transaction creation state machine. It is pure: rate lookups,
// ID generation and the clock are passed in, timers and persistence belong to the caller.
package wizard

// Flow selects one of the two wizard shapes.
type Flow string

const (
	FlowTransfer Flow = "transfer"
	FlowInvoice  Flow = "invoice"
)

// IsValid reports whether f is a known flow.
func (f Flow) IsValid() bool {
	_, ok := transitions[f]
	return ok
}

// Step is a named state of a wizard.
type Step string

const (
	// transfer
	StepChooseType      Step = "choose_type"
	StepChooseCountry   Step = "choose_country"
	StepSenderDetails   Step = "sender_details"
	StepReview          Step = "review"
	StepProcessing      Step = "processing"
	StepReceiverDetails Step = "receiver_details"

	// invoice
	StepSenderInfo       Step = "sender_info"
	StepReceiverInfo     Step = "receiver_info"
	StepFeeConfig        Step = "fee_config"
	StepPrintAndComplete Step = "print_and_complete"

	StepComplete Step = "complete"
)

type action int

const (
	actionNone action = iota
	// actionResolveRate must find a rate or the transition aborts.
	actionResolveRate
	// actionPrefillRate looks the rate up but leaves it unset when missing.
	actionPrefillRate
	actionFinalize
)

type transition struct {
	to     Step
	action action
	// automatic transitions are taken by the caller's timer, never by Forward.
	automatic bool
}

var transitions = map[Flow]map[Step]transition{
	FlowTransfer: {
		StepChooseType:      {to: StepChooseCountry},
		StepChooseCountry:   {to: StepSenderDetails},
		StepSenderDetails:   {to: StepReview},
		StepReview:          {to: StepProcessing, action: actionResolveRate},
		StepProcessing:      {to: StepReceiverDetails, automatic: true},
		StepReceiverDetails: {to: StepComplete, action: actionFinalize},
	},
	FlowInvoice: {
		StepSenderInfo:       {to: StepReceiverInfo},
		StepReceiverInfo:     {to: StepFeeConfig, action: actionPrefillRate},
		StepFeeConfig:        {to: StepPrintAndComplete},
		StepPrintAndComplete: {to: StepComplete, action: actionFinalize},
	},
}

var firstSteps = map[Flow]Step{
	FlowTransfer: StepChooseType,
	FlowInvoice:  StepSenderInfo,
}

// previous is the inverse of transitions: the step Back returns to. Back never lands
// on an automatic step; it skips to the step before it.
var previous = func() map[Flow]map[Step]Step {
	out := make(map[Flow]map[Step]Step, len(transitions))
	for flow, steps := range transitions {
		raw := make(map[Step]Step, len(steps))
		for from, t := range steps {
			if t.to != StepComplete {
				raw[t.to] = from
			}
		}
		out[flow] = make(map[Step]Step, len(raw))
		for to, from := range raw {
			if steps[from].automatic {
				from = raw[from]
			}
			out[flow][to] = from
		}
	}
	return out
}()

// Steps returns the ordered steps of a flow, ending with StepComplete.
func Steps(flow Flow) []Step {
	step, ok := firstSteps[flow]
	if !ok {
		return nil
	}
	out := []Step{step}
	for step != StepComplete {
		step = transitions[flow][step].to
		out = append(out, step)
	}
	return out
}
