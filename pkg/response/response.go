package response

// Response is the standard API envelope: success flag, human-readable
// message, and optional payload.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Success returns a success envelope wrapping the data.
func Success(message string, data interface{}) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// Error returns an error envelope carrying the message.
func Error(message string) Response {
	return Response{
		Success: false,
		Message: message,
	}
}
