package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"dailytodo/internal/middleware"
	"dailytodo/internal/models/task"
	"dailytodo/internal/ui"
)

var errQuit = errors.New("quit")

type command struct {
	name    string
	aliases []string
	usage   string
	summary string
	run     func(ctx context.Context, args []string, raw string) error
}

// Shell выполняет по одной строке команд поверх ui.Controller.
type Shell struct {
	ctrl     *ui.Controller
	out      io.Writer
	now      func() time.Time
	registry map[string]*command
	ordered  []*command
}

func NewShell(ctrl *ui.Controller, out io.Writer) *Shell {
	s := &Shell{
		ctrl:     ctrl,
		out:      out,
		now:      time.Now,
		registry: make(map[string]*command),
	}
	s.register()
	return s
}

// WithClock подменяет текущее время для команды due.
func (s *Shell) WithClock(now func() time.Time) *Shell {
	s.now = now
	return s
}

func (s *Shell) add(cmd *command) {
	s.ordered = append(s.ordered, cmd)
	s.registry[cmd.name] = cmd
	for _, alias := range cmd.aliases {
		s.registry[alias] = cmd
	}
}

// Names возвращает все имена команд, включая синонимы, для автодополнения.
func (s *Shell) Names() []string {
	names := make([]string, 0, len(s.registry))
	for name := range s.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute выполняет строку и сообщает, нужно ли завершить работу.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}

	name := strings.ToLower(parts[0])
	cmd, ok := s.registry[name]
	if !ok {
		fmt.Fprintf(s.out, "error: unknown command: %s (type help)\n", name)
		return false
	}

	raw := restOfLine(line, parts[0])
	h := middleware.Chain(func(ctx context.Context, action middleware.Action) error {
		return cmd.run(ctx, action.Args, raw)
	}, middleware.ActionID, middleware.Logging, middleware.Recover)

	err := h(ctx, middleware.Action{Name: cmd.name, Args: parts[1:]})
	if errors.Is(err, errQuit) {
		return true
	}
	if err != nil {
		s.report(err)
	}
	return false
}

// restOfLine возвращает текст после имени команды без разбиения на слова.
func restOfLine(line, name string) string {
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	rest := strings.TrimPrefix(line, name)
	rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
	return strings.TrimRight(rest, "\r\n")
}

func (s *Shell) report(err error) {
	var notice *ui.Notice
	if errors.As(err, &notice) {
		fmt.Fprintf(s.out, "%s: %s\n", notice.Severity, notice.String())
		return
	}
	fmt.Fprintf(s.out, "error: %s\n", err)
}

// noticeErr не даёт nil *ui.Notice превратиться в ненулевой error.
func noticeErr(n *ui.Notice) error {
	if n == nil {
		return nil
	}
	return n
}

func (s *Shell) register() {
	s.add(&command{
		name:    "list",
		aliases: []string{"ls"},
		usage:   "list",
		summary: "reload and show all tasks",
		run: func(ctx context.Context, args []string, raw string) error {
			if err := noticeErr(s.ctrl.Reload(ctx)); err != nil {
				return err
			}
			s.printRows()
			return nil
		},
	})

	s.add(&command{
		name:    "form",
		usage:   "form",
		summary: "show the values the next add will use",
		run: func(ctx context.Context, args []string, raw string) error {
			st := s.ctrl.State()
			fmt.Fprintf(s.out, "Priority: %s, Due: %s\n", st.Priority, task.FormatDate(st.DueDate))
			if st.Description != "" {
				fmt.Fprintf(s.out, "Task: %s\n", st.Description)
			}
			return nil
		},
	})

	s.add(&command{
		name:    "priority",
		aliases: []string{"p"},
		usage:   "priority <low|medium|high>",
		summary: "set priority for the next task",
		run: func(ctx context.Context, args []string, raw string) error {
			if len(args) != 1 {
				return errors.New("usage: priority <low|medium|high>")
			}
			p, err := task.ParsePriority(args[0])
			if err != nil {
				return err
			}
			s.ctrl.State().Priority = p
			fmt.Fprintf(s.out, "Priority: %s\n", p)
			return nil
		},
	})

	s.add(&command{
		name:    "due",
		usage:   "due <YYYY-MM-DD|today|tomorrow|+N>",
		summary: "set due date for the next task",
		run: func(ctx context.Context, args []string, raw string) error {
			if len(args) != 1 {
				return errors.New("usage: due <YYYY-MM-DD|today|tomorrow|+N>")
			}
			d, err := s.parseDue(args[0])
			if err != nil {
				return err
			}
			s.ctrl.State().DueDate = d
			fmt.Fprintf(s.out, "Due: %s\n", task.FormatDate(d))
			return nil
		},
	})

	s.add(&command{
		name:    "add",
		aliases: []string{"a"},
		usage:   "add [description...]",
		summary: "add a task with the current priority and due date",
		run: func(ctx context.Context, args []string, raw string) error {
			st := s.ctrl.State()
			if len(args) > 0 {
				st.Description = raw
			}
			if err := noticeErr(s.ctrl.Add(ctx)); err != nil {
				return err
			}
			s.printRows()
			return nil
		},
	})

	s.add(&command{
		name:    "select",
		aliases: []string{"sel"},
		usage:   "select <n>",
		summary: "select the task shown at position n",
		run: func(ctx context.Context, args []string, raw string) error {
			if len(args) != 1 {
				return errors.New("usage: select <n>")
			}
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("not a number: %s", args[0])
			}
			if err := s.ctrl.State().Select(n - 1); err != nil {
				return fmt.Errorf("no task number %d", n)
			}
			s.printRows()
			return nil
		},
	})

	s.add(&command{
		name:    "unselect",
		usage:   "unselect",
		summary: "clear the selection",
		run: func(ctx context.Context, args []string, raw string) error {
			s.ctrl.State().ClearSelection()
			return nil
		},
	})

	s.add(&command{
		name:    "done",
		aliases: []string{"complete"},
		usage:   "done",
		summary: "mark the selected task as complete",
		run: func(ctx context.Context, args []string, raw string) error {
			if err := noticeErr(s.ctrl.CompleteSelected(ctx)); err != nil {
				return err
			}
			s.printRows()
			return nil
		},
	})

	s.add(&command{
		name:    "rm",
		aliases: []string{"delete"},
		usage:   "rm",
		summary: "delete the selected task",
		run: func(ctx context.Context, args []string, raw string) error {
			if err := noticeErr(s.ctrl.DeleteSelected(ctx)); err != nil {
				return err
			}
			s.printRows()
			return nil
		},
	})

	s.add(&command{
		name:    "help",
		aliases: []string{"?"},
		usage:   "help",
		summary: "show this help",
		run: func(ctx context.Context, args []string, raw string) error {
			fmt.Fprintln(s.out, "Commands:")
			for _, cmd := range s.ordered {
				fmt.Fprintf(s.out, "  %-36s %s\n", cmd.usage, cmd.summary)
			}
			return nil
		},
	})

	s.add(&command{
		name:    "quit",
		aliases: []string{"exit", "q"},
		usage:   "quit",
		summary: "exit",
		run: func(ctx context.Context, args []string, raw string) error {
			return errQuit
		},
	})
}

func (s *Shell) parseDue(arg string) (time.Time, error) {
	today := task.DateOf(s.now())
	switch strings.ToLower(arg) {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}
	if strings.HasPrefix(arg, "+") {
		days, err := strconv.Atoi(arg[1:])
		if err != nil || days < 0 {
			return time.Time{}, fmt.Errorf("invalid day offset %q", arg)
		}
		return today.AddDate(0, 0, days), nil
	}
	return task.ParseDate(arg)
}

func (s *Shell) printRows() {
	st := s.ctrl.State()
	rows := st.Rows()
	if len(rows) == 0 {
		fmt.Fprintln(s.out, "No tasks yet. Add one with: add <description>")
		return
	}

	selected := st.SelectedIndex()
	for _, row := range rows {
		cursor := " "
		if row.Index == selected {
			cursor = ">"
		}
		flag := " "
		if row.Highlight {
			flag = "!"
		}
		line := fmt.Sprintf("%s%s%3d. %s", cursor, flag, row.Index+1, row.Text)
		if row.Overdue {
			line += " (overdue)"
		}
		fmt.Fprintln(s.out, line)
	}
}
