package configurator

import "fmt"

// Step is one stage of the configurator flow.
type Step string

const (
	StepCategory  Step = "category"
	StepType      Step = "type"
	StepOperation Step = "operation"
	StepSize      Step = "size"
	StepBrand     Step = "brand"
	StepColor     Step = "color"
	StepGlass     Step = "glass"
	StepGrids     Step = "grids"
	StepReview    Step = "review"
)

var stepOrder = []Step{
	StepCategory,
	StepType,
	StepOperation,
	StepSize,
	StepBrand,
	StepColor,
	StepGlass,
	StepGrids,
	StepReview,
}

// Steps returns the fixed flow order.
func Steps() []Step {
	return append([]Step(nil), stepOrder...)
}

// Index returns the position of the step in the flow, or -1 when unknown.
func (s Step) Index() int {
	for i, candidate := range stepOrder {
		if candidate == s {
			return i
		}
	}
	return -1
}

func (s Step) String() string {
	return string(s)
}

func (s Step) IsValid() bool {
	return s.Index() >= 0
}

// ParseStep converts raw input into a Step.
func ParseStep(value string) (Step, error) {
	step := Step(value)
	if !step.IsValid() {
		return "", fmt.Errorf("invalid step %q", value)
	}
	return step, nil
}

func (s Step) next() Step {
	idx := s.Index()
	if idx < 0 || idx >= len(stepOrder)-1 {
		return s
	}
	return stepOrder[idx+1]
}

func (s Step) prev() Step {
	idx := s.Index()
	if idx <= 0 {
		return s
	}
	return stepOrder[idx-1]
}
