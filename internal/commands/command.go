package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeDone   Type = "done"
	TypeShow   Type = "show"
	TypeWindow Type = "window"
	TypeRemove Type = "remove"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title string
	Due   string
}

type DoneArgs struct {
	Target string
	On     string
}

type ShowArgs struct {
	Subject string
	Target  string
}

type WindowArgs struct {
	Months int
}

type RemoveArgs struct {
	Target string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Done   *DoneArgs
	Show   *ShowArgs
	Window *WindowArgs
	Remove *RemoveArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone:
		return parseDone(input, args)
	case TypeShow:
		return parseShow(input, args)
	case TypeWindow:
		return parseWindow(input, args)
	case TypeRemove:
		return parseRemove(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd accepts `add <title> due:<recurrence...>`; everything after
// the due: marker belongs to the due string.
func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	titleWords := make([]string, 0, len(args))
	dueWords := make([]string, 0)
	inDue := false
	for _, arg := range args {
		if !inDue {
			if rest, ok := strings.CutPrefix(strings.ToLower(arg), "due:"); ok {
				inDue = true
				if rest != "" {
					dueWords = append(dueWords, rest)
				}
				continue
			}
			titleWords = append(titleWords, arg)
			continue
		}
		dueWords = append(dueWords, arg)
	}
	title := strings.TrimSpace(strings.Join(titleWords, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	due := strings.TrimSpace(strings.Join(dueWords, " "))
	if inDue && due == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "due: marker without a recurrence"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title, Due: due}}, nil
}

// parseDone accepts `done <task> [on 2026-01-02]`.
func parseDone(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "done requires a task"}
	}
	on := ""
	targetWords := args
	for i, arg := range args {
		if strings.EqualFold(arg, "on") && i+1 < len(args) {
			on = args[i+1]
			targetWords = args[:i]
			break
		}
	}
	target := strings.TrimSpace(strings.Join(targetWords, " "))
	if target == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "done requires a task"}
	}
	return Command{Type: TypeDone, Raw: raw, Done: &DoneArgs{Target: target, On: on}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a subject"}
	}
	subject := strings.ToLower(args[0])
	switch subject {
	case "stats", "targets", "trend":
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown show subject: %s", subject)}
	}
	target := strings.TrimSpace(strings.Join(args[1:], " "))
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: subject, Target: target}}, nil
}

func parseWindow(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "window requires a month count"}
	}
	months, err := strconv.Atoi(args[0])
	if err != nil || months <= 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid month count: %s", args[0])}
	}
	return Command{Type: TypeWindow, Raw: raw, Window: &WindowArgs{Months: months}}, nil
}

func parseRemove(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "remove requires a task"}
	}
	return Command{Type: TypeRemove, Raw: raw, Remove: &RemoveArgs{Target: strings.TrimSpace(strings.Join(args, " "))}}, nil
}
