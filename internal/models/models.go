package models

import "github.com/patric-chuzhbe/usersapi/internal/user"

// UserPayload carries the client-editable fields of a user record.
type UserPayload struct {
	Username string
	Age      float64
	Hobbies  []interface{}
}

// UsersListResponse is the body of the list endpoint.
type UsersListResponse struct {
	Users []user.User `json:"users"`
}

// Plain-text bodies sent to clients on failure.
const (
	MessageInvalidJSON      = "Invalid JSON format"
	MessageInvalidData      = "Invalid data format"
	MessageInvalidID        = "ID is invalid"
	MessageIDDoesNotExist   = "ID doesn't exist"
	MessageUserNotFound     = "User not found"
	MessageEndpointNotFound = "Error 404: non-existing endpoint"
	MessageBodyTooLarge     = "Request body too large"
	MessageInternalError    = "Internal server error"
)
