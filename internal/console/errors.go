package console

import "errors"

var (
	ErrMissingRequiredFields = errors.New("please fill all required fields (Phone Number ID, Business Account ID, and API Token)")
	ErrNoSavedConfig         = errors.New("no saved configuration found")
	ErrConfigNotSaved        = errors.New("please save your API configuration first")
	ErrConnecting            = errors.New("a connection attempt is already in progress")
	ErrConnectFailed         = errors.New("failed to connect to WhatsApp API")
	ErrSessionEnded          = errors.New("session ended before the operation completed")
	ErrNoContactSelected     = errors.New("please select a contact first")
	ErrContactNotFound       = errors.New("contact not found")
	ErrEmptyMessage          = errors.New("message content is empty")
	ErrNoAIKey               = errors.New("gemini api key not selected")
	ErrEmptyReply            = errors.New("gemini could not generate a reply")
	ErrAIFailed              = errors.New("failed to get gemini reply")
)
