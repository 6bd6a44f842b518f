package argparse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/NF-coder/tap-modified/lib/callable"
)

var (
	// ErrHelp is returned when -h or --help was given. Usage has been written.
	ErrHelp = pflag.ErrHelp

	// ErrMissingRequired indicates that required arguments were not given.
	ErrMissingRequired = errors.New("the following arguments are required")

	// ErrConversion indicates a value that cannot be converted to its type.
	ErrConversion = errors.New("invalid argument value")

	// ErrUnrecognizedArguments indicates arguments that match no parameter
	// while unknown arguments are not tolerated.
	ErrUnrecognizedArguments = errors.New("unrecognized arguments")

	// ErrInvalidArgument is returned for other malformed command lines, for
	// example a flag without its value.
	ErrInvalidArgument = errors.New("invalid argument")
)

// MissingRequiredError lists the flags of missing required arguments.
type MissingRequiredError struct {
	Flags []string
}

func (e *MissingRequiredError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingRequired, strings.Join(e.Flags, ", "))
}

func (e *MissingRequiredError) Is(target error) bool {
	return target == ErrMissingRequired //nolint:errorlint,err113 // Sentinel comparison.
}

// ConversionError reports a command-line value that does not convert to the
// argument type.
type ConversionError struct {
	Flag  string
	Value string
	Type  callable.TypeRef
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("argument %s: %v %q for type %s: %v", e.Flag, ErrConversion, e.Value, e.Type, e.Err)
}

func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion //nolint:errorlint,err113 // Sentinel comparison.
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// UnrecognizedArgumentsError lists the arguments that matched no parameter.
type UnrecognizedArgumentsError struct {
	Args []string
}

func (e *UnrecognizedArgumentsError) Error() string {
	return fmt.Sprintf("%v: %s", ErrUnrecognizedArguments, strings.Join(e.Args, " "))
}

func (e *UnrecognizedArgumentsError) Is(target error) bool {
	return target == ErrUnrecognizedArguments //nolint:errorlint,err113 // Sentinel comparison.
}
