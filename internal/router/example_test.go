package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/patric-chuzhbe/usersapi/internal/user"
)

func ExampleRouter_GetApiusers() {
	server, _, _ := setupTestRouter(nil)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/users")
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		panic(err)
	}

	fmt.Println("Status Code:", resp.StatusCode)
	fmt.Println("Body:", string(b))

	// Output:
	// Status Code: 200
	// Body: {"users":[]}
}

func ExampleRouter_PostApiusers() {
	server, _, _ := setupTestRouter(nil)
	defer server.Close()

	body := []byte(`{"username":"alice","age":30,"hobbies":["chess"]}`)

	resp, err := http.Post(server.URL+"/api/users", "application/json", bytes.NewReader(body))
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	var created user.User
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		panic(err)
	}

	fmt.Println("Status Code:", resp.StatusCode)
	fmt.Println("Username:", created.Username)
	fmt.Println("Has ID:", uuidV4Pattern.MatchString(created.ID))

	// Output:
	// Status Code: 201
	// Username: alice
	// Has ID: true
}

func ExampleRouter_DeleteApiusersID() {
	server, _, _ := setupTestRouter(nil)
	defer server.Close()

	body := []byte(`{"username":"bob","age":40,"hobbies":[]}`)
	resp, err := http.Post(server.URL+"/api/users", "application/json", bytes.NewReader(body))
	if err != nil {
		panic(err)
	}
	var created user.User
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		panic(err)
	}
	resp.Body.Close()

	for i := 0; i < 2; i++ {
		req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/users/"+created.ID, nil)
		if err != nil {
			panic(err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			panic(err)
		}
		resp.Body.Close()

		fmt.Println("Status Code:", resp.StatusCode)
	}

	// Output:
	// Status Code: 204
	// Status Code: 404
}
