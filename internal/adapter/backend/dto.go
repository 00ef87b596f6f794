package backend

import "encoding/json"

// forgotPasswordRequest is the body of POST /api/auth/forgot-password
type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// errorResponse is the JSON error shape returned by the login endpoint
type errorResponse struct {
	AccessToken  *string `json:"accessToken"`
	RefreshToken *string `json:"refreshToken"`
	Message      string  `json:"message"`
}

// loginFailureMessage extracts the message from a login error body.
// An unparseable body yields "Unknown error"; a parseable one without a
// message yields the generic credentials message.
func loginFailureMessage(body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err != nil {
		return "Unknown error"
	}
	if er.Message == "" {
		return "Login failed. Invalid credentials."
	}
	return er.Message
}
