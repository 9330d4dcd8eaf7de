package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
)

// JSON writes data as indented JSON to the given writer.
func JSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorResponse is the JSON envelope for structured error output.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// JSONError writes err as an ErrorResponse and returns the process exit
// code for it. Errors that are not *clierr.Error are reported as
// INTERNAL_ERROR.
func JSONError(w io.Writer, err error) int {
	resp := ErrorResponse{Error: err.Error(), Code: clierr.InternalError}
	code := 2
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		resp.Code, resp.Details = cliErr.Code, cliErr.Details
		code = cliErr.ExitCode()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp) // nowhere left to report a write failure
	return code
}
