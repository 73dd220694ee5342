package operation

import "fmt"

// Step represents a single positional edit: move the caret, delete, then insert.
// Every field is optional; an absent field behaves like its zero value.
type Step struct {
	// Move is the relative caret displacement, applied before Delete and Insert.
	Move *int `json:"move,omitempty"`

	// Delete is the number of characters removed starting at the caret.
	Delete *uint `json:"delete,omitempty"`

	// Insert is the text inserted at the caret after the delete.
	Insert *string `json:"insert,omitempty"`
}

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Uint returns a pointer to v.
func Uint(v uint) *uint { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// MoveStep returns a step that only moves the caret.
func MoveStep(n int) Step {
	return Step{Move: Int(n)}
}

// InsertStep returns a step that only inserts text.
func InsertStep(text string) Step {
	return Step{Insert: String(text)}
}

// DeleteStep returns a step that only deletes n characters.
func DeleteStep(n uint) Step {
	return Step{Delete: Uint(n)}
}

// MoveBy returns the caret displacement, 0 when absent.
func (s Step) MoveBy() int {
	if s.Move == nil {
		return 0
	}
	return *s.Move
}

// DeleteCount returns the number of characters to delete, 0 when absent.
func (s Step) DeleteCount() uint {
	if s.Delete == nil {
		return 0
	}
	return *s.Delete
}

// InsertText returns the text to insert, "" when absent.
func (s Step) InsertText() string {
	if s.Insert == nil {
		return ""
	}
	return *s.Insert
}

// Clone returns a copy of the step that shares no pointers with s.
func (s Step) Clone() Step {
	var c Step
	if s.Move != nil {
		c.Move = Int(*s.Move)
	}
	if s.Delete != nil {
		c.Delete = Uint(*s.Delete)
	}
	if s.Insert != nil {
		c.Insert = String(*s.Insert)
	}
	return c
}

func (s Step) String() string {
	str := "{"
	sep := ""
	if s.Move != nil {
		str += fmt.Sprintf("move:%d", *s.Move)
		sep = " "
	}
	if s.Delete != nil {
		str += fmt.Sprintf("%sdelete:%d", sep, *s.Delete)
		sep = " "
	}
	if s.Insert != nil {
		str += fmt.Sprintf("%sinsert:%q", sep, *s.Insert)
	}
	return str + "}"
}
