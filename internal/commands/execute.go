package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Remove func(IndexArgs) (Result, error)
	Pick   func() (Result, error)
	Select func(IndexArgs) (Result, error)
	Start  func(StartArgs) (Result, error)
	Stop   func() (Result, error)
	Clear  func() (Result, error)
	Sleep  func() (Result, error)
	Wake   func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeRemove:
		if handlers.Remove == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Remove(*cmd.Remove)
	case TypeSelect:
		if handlers.Select == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Select(*cmd.Select)
	case TypeStart:
		if handlers.Start == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Start(*cmd.Start)
	case TypePick:
		return call(cmd.Type, handlers.Pick)
	case TypeStop:
		return call(cmd.Type, handlers.Stop)
	case TypeClear:
		return call(cmd.Type, handlers.Clear)
	case TypeSleep:
		return call(cmd.Type, handlers.Sleep)
	case TypeWake:
		return call(cmd.Type, handlers.Wake)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func call(t Type, fn func() (Result, error)) (Result, error) {
	if fn == nil {
		return Result{}, missing(t)
	}
	return fn()
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}

// Run parses input and dispatches it.
func Run(input string, handlers Handlers) (Result, error) {
	cmd, err := Parse(input)
	if err != nil {
		return Result{}, err
	}
	return Execute(cmd, handlers)
}
