// Generates the bcrypt hash of an access code for release configs.
//
// Usage: go run scripts/hash_access_code.go <access-code>
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <access-code>", os.Args[0])
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hashing failed: %v", err)
	}
	fmt.Println(string(hash))
}
