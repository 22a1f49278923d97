package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// HookResult is the payload shape returned by externally triggered hooks.
type HookResult struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}
