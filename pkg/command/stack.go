package command

// Stack sequences commands with classic undo-stack semantics: Push applies
// the command's Redo immediately and synchronously, Undo/Redo walk the
// current position, and pushing after an undo discards the redoable tail.
//
// The stack is single-threaded by design; every Redo/Undo runs to
// completion on the calling goroutine before control returns.
type Stack struct {
	commands []Command
	index    int // number of currently applied commands
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Push discards any redoable commands above the current position, appends
// cmd, and applies it.
func (s *Stack) Push(cmd Command) {
	s.commands = append(s.commands[:s.index], cmd)
	s.index++
	cmd.Redo()
}

// Undo reverts the most recently applied command. It reports false when
// there is nothing to undo.
func (s *Stack) Undo() bool {
	if s.index == 0 {
		return false
	}
	s.index--
	s.commands[s.index].Undo()
	return true
}

// Redo re-applies the most recently undone command. It reports false when
// there is nothing to redo.
func (s *Stack) Redo() bool {
	if s.index == len(s.commands) {
		return false
	}
	s.commands[s.index].Redo()
	s.index++
	return true
}

// CanUndo reports whether an applied command is available.
func (s *Stack) CanUndo() bool { return s.index > 0 }

// CanRedo reports whether an undone command is available.
func (s *Stack) CanRedo() bool { return s.index < len(s.commands) }

// Len returns the total number of commands held, applied or not.
func (s *Stack) Len() int { return len(s.commands) }

// Clear drops every command.
func (s *Stack) Clear() {
	s.commands = nil
	s.index = 0
}
