package ui

import (
	"fmt"
	"time"

	"dailytodo/internal/models/task"
)

// State хранит поля ввода, отображаемые строки и текущий выбор.
// Принадлежит слою представления и передаётся явно.
type State struct {
	Description string
	Priority    task.Priority
	DueDate     time.Time

	rows     []Row
	selected int
}

func NewState(today time.Time) *State {
	return &State{
		Priority: task.DefaultPriority,
		DueDate:  task.DateOf(today),
		selected: -1,
	}
}

// Refresh перестраивает строки и сбрасывает выбор.
func (s *State) Refresh(tasks []*task.Task, today time.Time) {
	s.rows = FromTaskList(tasks, today)
	s.selected = -1
}

func (s *State) Rows() []Row {
	out := make([]Row, len(s.rows))
	copy(out, s.rows)
	return out
}

func (s *State) Select(index int) error {
	if index < 0 || index >= len(s.rows) {
		return fmt.Errorf("no row at index %d", index)
	}
	s.selected = index
	return nil
}

func (s *State) ClearSelection() {
	s.selected = -1
}

// SelectedIndex возвращает -1, если ничего не выбрано.
func (s *State) SelectedIndex() int {
	return s.selected
}

func (s *State) SelectedID() *task.ID {
	if s.selected < 0 || s.selected >= len(s.rows) {
		return nil
	}
	id := s.rows[s.selected].TaskID
	return &id
}
