package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run ./cmd/hash <username> <password>")
		os.Exit(1)
	}

	username, password := os.Args[1], os.Args[2]
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Add to the auth server's environment:\n")
	fmt.Printf("USERNAME=%s\n", username)
	fmt.Printf("PASSWORD_HASH=%s\n", string(hash))
	fmt.Printf("USER_ID=%s\n", uuid.NewString())
}
