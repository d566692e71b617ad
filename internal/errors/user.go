package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// A slice (not a map) because wrapped errors need errors.Is traversal,
// and more specific sentinels must be checked first.
//
//nolint:gochecknoglobals // Pre-built mapping
var errorInfoEntries = []errorEntry{
	// ===================
	// Keys & signatures
	// ===================
	{
		err: ErrInvalidKeyLength,
		info: ErrorInfo{
			Message: "The key does not have the length this format requires.",
			Action:  "Check --format matches the key, or generate a new key with 'keysmith text generate'.",
		},
	},
	{
		err: ErrInvalidKeyEncoding,
		info: ErrorInfo{
			Message: "The key bytes do not form a valid key for this format.",
			Action:  "Verify with the public key file, not the private one.",
		},
	},
	{
		err: ErrInvalidSignatureLength,
		info: ErrorInfo{
			Message: "The signature has the wrong length for this format.",
			Action:  "Check that --sig was produced with the same --format.",
		},
	},
	{
		err: ErrUnknownFormat,
		info: ErrorInfo{
			Message: "Unknown signing format.",
			Action:  "Use one of: blake3, ed25519, ed448.",
		},
	},
	{
		err: ErrRandomSource,
		info: ErrorInfo{
			Message: "The system random source failed.",
		},
	},

	// ===================
	// Encryption
	// ===================
	{
		err: ErrAuthentication,
		info: ErrorInfo{
			Message: "Decryption failed: wrong key, tampered or truncated ciphertext.",
			Action:  "Use the same passphrase and --nonce mode that produced the ciphertext.",
		},
	},
	{
		err: ErrInvalidNonceMode,
		info: ErrorInfo{
			Message: "Unknown nonce mode.",
			Action:  "Use --nonce random (default) or --nonce zero for legacy ciphertexts.",
		},
	},
	{
		err: ErrEncoding,
		info: ErrorInfo{
			Message: "The input is not valid base64.",
			Action:  "Signatures use URL-safe base64 without padding; ciphertexts use standard base64.",
		},
	},

	// ===================
	// Files
	// ===================
	{
		err: ErrNotFound,
		info: ErrorInfo{
			Message: "File does not exist.",
			Action:  "Check the path, or use '-' to read from standard input.",
		},
	},
	{
		err: ErrNotADirectory,
		info: ErrorInfo{
			Message: "Path does not exist or is not a directory.",
			Action:  "Create the directory first.",
		},
	},
	{
		err: ErrKeyFileExists,
		info: ErrorInfo{
			Message: "A key file already exists in the output directory.",
			Action:  "Use --force to overwrite it, or choose another directory.",
		},
	},
	{
		err: ErrDirLocked,
		info: ErrorInfo{
			Message: "Another keysmith process is writing keys to this directory.",
			Action:  "Wait for it to finish, then run the command again.",
		},
	},
	{
		err: ErrIO,
		info: ErrorInfo{
			Message: "Could not read or write a file.",
			Action:  "Check file permissions.",
		},
	},

	// ===================
	// CLI & config
	// ===================
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "Invalid output format.",
			Action:  "Use --output text or --output json.",
		},
	},
	{
		err: ErrConfigInvalid,
		info: ErrorInfo{
			Message: "The configuration is invalid.",
			Action:  "Run 'keysmith config show' and fix the reported value.",
		},
	},
	{
		err: ErrEmptyValue,
		info: ErrorInfo{
			Message: "A required value was empty.",
		},
	},
	{
		err: ErrInvalidLength,
		info: ErrorInfo{
			Message: "The requested length is out of range.",
		},
	},
}

// getErrorInfo looks up the ErrorInfo for a given error.
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}
	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve the issue.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
