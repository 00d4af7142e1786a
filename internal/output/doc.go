// Package output renders easywork command results for people and for scripts.
//
// Every command builds one Printer from its cobra output stream:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, output.IsTTY(cmd.OutOrStdout()))
//
// In JSON mode (--json) results are written as indented JSON documents and
// errors as {"error": "...", "code": N}. In human mode results are styled
// with lipgloss when the stream is a terminal and left plain when piped.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: bad date or month, nothing to export
//	output.ExitSystemError // 2: storage or clipboard failure
//	output.ExitConflict    // 3: the day already has a log and --force was not given
//
// Commands return *ExitError values built with NewUserError, NewSystemError,
// NewSystemErrorWithCause or NewConflictError; main turns them into the
// process exit code with GetExitCode.
package output
