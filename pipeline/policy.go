package pipeline

// FailurePolicy declares what a step failure does to the invocation.
type FailurePolicy int

const (
	// Abort ends the invocation; nothing is persisted.
	Abort FailurePolicy = iota
	// Degrade substitutes an empty value and lets the invocation continue.
	Degrade
)

func (p FailurePolicy) String() string {
	if p == Degrade {
		return "degrade"
	}
	return "abort"
}

// Step names the side-effecting stages of one invocation.
type Step string

const (
	StepGenerate Step = "generate"
	StepImage    Step = "image"
	StepPersist  Step = "persist"
)

// Policies is the pipeline's declared failure contract. Snippet generation
// and persistence abort the run; image acquisition degrades to a post
// without a cover image.
var Policies = map[Step]FailurePolicy{
	StepGenerate: Abort,
	StepImage:    Degrade,
	StepPersist:  Abort,
}
