package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClone(t *testing.T) {
	original := User{
		ID:       "8a5d1c4e-3f7b-4c2a-9e6d-1b2c3d4e5f60",
		Username: "alice",
		Age:      30,
		Hobbies: []interface{}{
			"chess",
			map[string]interface{}{"name": "go"},
			[]interface{}{"nested"},
		},
	}

	clone := original.Clone()
	assert.Equal(t, original, clone)

	clone.Hobbies[0] = "poker"
	clone.Hobbies[1].(map[string]interface{})["name"] = "shogi"
	clone.Hobbies[2].([]interface{})[0] = "changed"

	assert.Equal(t, "chess", original.Hobbies[0])
	assert.Equal(t, "go", original.Hobbies[1].(map[string]interface{})["name"])
	assert.Equal(t, "nested", original.Hobbies[2].([]interface{})[0])
}

func TestCloneNilHobbies(t *testing.T) {
	clone := User{Username: "bob"}.Clone()

	assert.NotNil(t, clone.Hobbies, "a cloned record always carries a hobbies slice")
	assert.Empty(t, clone.Hobbies)
}
