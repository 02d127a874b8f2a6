package flow

// Step is one screen of the cancellation wizard.
type Step string

const (
	Entry Step = "entry"

	// found a job
	JobCongrats Step = "job_congrats"
	JobFeedback Step = "job_feedback"
	JobDone     Step = "job_done"

	// still looking
	Downsell         Step = "downsell"
	Improve          Step = "improve"
	MainReason       Step = "main_reason"
	StillLookingDone Step = "still_looking_done"

	// terminals
	Completed     Step = "completed"
	OfferAccepted Step = "offer_accepted"
)

// transitions is the single source of truth for the wizard's shape.
var transitions = map[Step][]Step{
	Entry:            {JobCongrats, Downsell, Improve},
	JobCongrats:      {JobFeedback},
	JobFeedback:      {JobDone},
	JobDone:          {Completed},
	Downsell:         {OfferAccepted, Improve},
	Improve:          {MainReason},
	MainReason:       {StillLookingDone},
	StillLookingDone: {Completed},
}

// CanTransition reports whether the wizard may move from one step to another.
func CanTransition(from, to Step) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no step follows s.
func (s Step) Terminal() bool {
	return s == Completed || s == OfferAccepted
}
