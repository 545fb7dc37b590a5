package errors

// Error message constants for the importwrap application
const (
	// File processing errors
	ErrMsgFailedToReadFile  = "failed to read file"
	ErrMsgFailedToWriteFile = "failed to write file"

	// Directory processing errors
	ErrMsgFailedToCheckPath      = "failed to check path"
	ErrMsgFailedToFindPyFiles    = "failed to find Python files in directory"
	ErrMsgFilesFailedToProcess   = "%d files failed to process"
	ErrMsgFilesWouldBeReformated = "%d files would be reformatted"

	// Settings errors
	ErrMsgFailedToReadSettings   = "failed to read settings file"
	ErrMsgFailedToParseSettings  = "failed to parse settings file"
	ErrMsgUnsupportedSettings    = "unsupported settings file format %q"
	ErrMsgInvalidLineLength      = "line_length must be positive, got %d"
	ErrMsgInvalidWrapLength      = "wrap_length must be between 0 and line_length (%d), got %d"
	ErrMsgInvalidMultiLineOutput = "invalid multi_line_output"
	ErrMsgInvalidColorMode       = "invalid --color value %q (expected auto|on|off)"
	ErrMsgFailedToFindSettings   = "failed to look up settings file"

	// Info/warning messages
	WarnMsgProcessingDirWithoutInPlace = "Warning: Processing directory without --in-place flag. No files will be modified."
	InfoMsgUseInPlaceFlag              = "Use --in-place flag to modify files or specify a single file for stdout output."
	InfoMsgNoPyFilesFound              = "No Python files found in directory: %s"
	InfoMsgFoundPyFiles                = "Found %d Python files in directory: %s"
	InfoMsgSettingsFile                = "Settings: %s"
	InfoMsgProcessedFiles              = "Processed: %s"
	InfoMsgWouldReformat               = "Would reformat: %s"
	InfoMsgUnchanged                   = "Unchanged: %s"
	InfoMsgErrorProcessing             = "Error processing %s: %v"
	InfoMsgLineTooLong                 = "%s:%d: line still exceeds %d columns (width %d): %s"
	InfoMsgProcessedCount              = "\nProcessed %d files successfully"
	InfoMsgErrorCount                  = ", %d files had errors"
)
