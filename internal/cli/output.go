package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Códigos de salida de ventasctl.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // la operación falló (validación, stock, permisos)
	ExitCommandError = 2 // configuración o conexión
)

// ExitError error con código de salida propio.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError envuelve err con un código de salida.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extrae el código de salida; ExitFailure si err no es un ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// printResult escribe result como JSON o, en formato text, las líneas recibidas.
func printResult(w io.Writer, format string, result any, lines ...string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
