package operation

import (
	"encoding/json"
	"strings"
)

// Operation is an ordered, non-empty list of steps that can be applied to a text.
//
// Apply only reads the operation and may be called from several goroutines.
// Combine appends to the receiver, so an operation must not be combined
// concurrently without external synchronization.
type Operation struct {
	steps []Step
}

// New returns an operation made of the given steps.
// The steps are copied; at least one step is required.
func New(steps ...Step) (*Operation, error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}

	op := &Operation{steps: make([]Step, 0, len(steps))}
	for _, step := range steps {
		op.steps = append(op.steps, step.Clone())
	}

	return op, nil
}

// Len returns the number of steps in the operation.
func (op *Operation) Len() int {
	return len(op.steps)
}

// Steps returns a copy of the operation's steps.
func (op *Operation) Steps() []Step {
	steps := make([]Step, len(op.steps))
	for i, step := range op.steps {
		steps[i] = step.Clone()
	}
	return steps
}

// Clone returns a deep copy of the operation.
func (op *Operation) Clone() *Operation {
	return &Operation{steps: op.Steps()}
}

// TotalMove returns the sum of the move fields of every step.
// Insert and delete lengths do not contribute.
func (op *Operation) TotalMove() int {
	total := 0
	for _, step := range op.steps {
		total += step.MoveBy()
	}
	return total
}

// Combine combines two operations, a first and b second.
// If exactly one of them is nil the other is returned as is.
// Otherwise b is combined into a, and a is returned.
func Combine(a, b *Operation) (*Operation, error) {
	if a == nil && b == nil {
		return nil, ErrBothNil
	}

	if a == nil {
		return b, nil
	}

	if b == nil {
		return a, nil
	}

	if err := a.Combine(b); err != nil {
		return nil, err
	}
	return a, nil
}

// Combine appends copies of other's steps to op.
//
// other was written against a caret starting at 0 of the original text,
// so every appended step has op's total move subtracted from its move.
// Only move fields are accounted for; lengths inserted or deleted by op are not.
func (op *Operation) Combine(other *Operation) error {
	if other == nil {
		return ErrNilOperation
	}

	if len(other.steps) == 0 {
		return nil
	}

	totalMove := op.TotalMove()

	// other may be op itself; range only sees the steps present before appending.
	for _, step := range other.steps {
		newStep := step.Clone()
		newStep.Move = Int(step.MoveBy() - totalMove)
		op.steps = append(op.steps, newStep)
	}

	return nil
}

// Apply applies the operation to text and returns the result.
//
// The caret starts at 0 and each step moves it relative to where the previous
// step's move left it. Inserting or deleting never advances the caret.
// The caret itself is not bounded, but the ranges it selects are clamped to
// the text, so moving before the start or past the end edits at that end.
func (op *Operation) Apply(text string) string {
	if op == nil {
		return text
	}

	runes := []rune(text)
	caret := 0

	for _, step := range op.steps {
		// Perform the move.
		caret += step.MoveBy()

		start := clamp(caret, len(runes))
		end := deleteEnd(caret, step.DeleteCount(), len(runes))
		insert := []rune(step.InsertText())

		// Perform the delete and the insert.
		runes = splice(runes, start, end, insert)
	}

	return string(runes)
}

// splice replaces runes[start:end] with insert, returning a new slice.
func splice(runes []rune, start, end int, insert []rune) []rune {
	if end < start {
		end = start
	}
	if start == end && len(insert) == 0 {
		return runes
	}

	result := make([]rune, 0, len(runes)-(end-start)+len(insert))
	result = append(result, runes[:start]...)
	result = append(result, insert...)
	result = append(result, runes[end:]...)

	return result
}

// deleteEnd returns caret+count clamped to [0, length].
// The sum is computed without overflowing, whatever the count.
func deleteEnd(caret int, count uint, length int) int {
	if caret >= length {
		return length
	}

	if caret < 0 {
		// Distance from caret up to 0, computed so that math.MinInt does not overflow.
		toStart := uint(-(caret + 1)) + 1
		if count <= toStart {
			return 0
		}
		count -= toStart
		caret = 0
	}

	if count >= uint(length-caret) {
		return length
	}
	return caret + int(count)
}

// clamp bounds position to [0, length].
func clamp(position, length int) int {
	if position < 0 {
		return 0
	}
	if position > length {
		return length
	}
	return position
}

func (op *Operation) String() string {
	parts := make([]string, len(op.steps))
	for i, step := range op.steps {
		parts[i] = step.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// MarshalJSON encodes the operation as an array of steps.
func (op *Operation) MarshalJSON() ([]byte, error) {
	return json.Marshal(op.steps)
}

// UnmarshalJSON decodes an array of steps, rejecting an empty or null array.
func (op *Operation) UnmarshalJSON(data []byte) error {
	var steps []Step
	if err := json.Unmarshal(data, &steps); err != nil {
		return err
	}

	if len(steps) == 0 {
		return ErrNoSteps
	}

	op.steps = steps
	return nil
}
