package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeRemove Type = "remove"
	TypePick   Type = "pick"
	TypeSelect Type = "select"
	TypeStart  Type = "start"
	TypeStop   Type = "stop"
	TypeClear  Type = "clear"
	TypeSleep  Type = "sleep"
	TypeWake   Type = "wake"
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
	Name string
}

// IndexArgs addresses a task by its zero-based position. The palette accepts
// one-based numbers as shown in the task list.
type IndexArgs struct {
	Index int
}

type StartArgs struct {
	Task string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Remove *IndexArgs
	Select *IndexArgs
	Start  *StartArgs
}

var aliases = map[string]Type{
	"rm":    TypeRemove,
	"del":   TypeRemove,
	"focus": TypeSelect,
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]
	typ := Type(head)
	if alias, ok := aliases[head]; ok {
		typ = alias
	}

	switch typ {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeRemove, TypeSelect:
		return parseIndex(input, typ, args)
	case TypeStart:
		return Command{Type: TypeStart, Raw: input, Start: &StartArgs{Task: strings.Join(args, " ")}}, nil
	case TypePick, TypeStop, TypeClear, TypeSleep, TypeWake:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", typ)}
		}
		return Command{Type: typ, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a task name"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Name: name}}, nil
}

func parseIndex(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a task number", typ)}
	}
	n, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
	if err != nil || n < 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid task number: %s", args[0])}
	}
	cmd := Command{Type: typ, Raw: raw}
	idx := &IndexArgs{Index: n - 1}
	if typ == TypeRemove {
		cmd.Remove = idx
	} else {
		cmd.Select = idx
	}
	return cmd, nil
}

// Usage lists the palette grammar.
func Usage() []string {
	return []string{
		"add <name>",
		"remove <n>",
		"pick",
		"select <n>",
		"start [task]",
		"stop",
		"clear",
		"sleep",
		"wake",
	}
}
