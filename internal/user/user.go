// Package user defines the user record kept by the service.
package user

// User represents a single user record.
//
// ID is assigned by the service on creation and never changes afterwards.
// Hobbies holds decoded JSON values, so entries are usually strings but any
// JSON value is kept as-is.
type User struct {
	ID       string        `json:"id"`
	Username string        `json:"username"`
	Age      float64       `json:"age"`
	Hobbies  []interface{} `json:"hobbies"`
}

// Clone returns a copy of the user that shares no memory with the receiver.
func (u User) Clone() User {
	clone := u
	clone.Hobbies = cloneSlice(u.Hobbies)

	return clone
}

func cloneSlice(src []interface{}) []interface{} {
	dst := make([]interface{}, len(src))
	for i, v := range src {
		dst[i] = cloneValue(v)
	}

	return dst
}

func cloneValue(v interface{}) interface{} {
	switch typed := v.(type) {
	case []interface{}:
		return cloneSlice(typed)
	case map[string]interface{}:
		dst := make(map[string]interface{}, len(typed))
		for key, value := range typed {
			dst[key] = cloneValue(value)
		}
		return dst
	default:
		return v
	}
}
