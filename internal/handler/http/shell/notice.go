package shell

// Notice codes carried in the redirect URL after a form post.
const (
	noticeReadFailed      = "read_failed"
	noticeUnsupported     = "unsupported"
	noticeTooLarge        = "too_large"
	noticeNoFile          = "no_file"
	noticeWrongMode       = "wrong_mode"
	noticeInvalidMode     = "invalid_mode"
	noticeInvalidPreset   = "invalid_preset"
	noticeNoText          = "no_text"
	noticeNoSummary       = "no_summary"
	noticeSummarizeFailed = "summarize_failed"
	noticeRateLimited     = "rate_limited"
)

// notices maps a notice code to the message shown on the next page view.
// Messages are generic; details stay in the logs.
var notices = map[string]string{
	noticeReadFailed:      "Failed to read the file",
	noticeUnsupported:     "Unsupported file type. Please upload a PDF, DOCX or TXT file.",
	noticeTooLarge:        "The file is too large.",
	noticeNoFile:          "Please choose a file to upload.",
	noticeWrongMode:       "Please select the matching input mode first.",
	noticeInvalidMode:     "Unknown input mode.",
	noticeInvalidPreset:   "Unknown summary length.",
	noticeNoText:          "Please provide some text to summarize.",
	noticeNoSummary:       "Generate a summary before downloading it.",
	noticeSummarizeFailed: "The summary could not be generated. Please try again.",
	noticeRateLimited:     "Too many summary requests. Please wait a moment and try again.",
}

// noticeMessage returns the message for code, or "" for unknown codes.
func noticeMessage(code string) string {
	return notices[code]
}
