package main

import (
	"fmt"
	"os"

	"github.com/MatyCastillo/cashdesk-webapp/internal/infra"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	password := "Admin1234!"
	if len(os.Args) > 1 {
		password = os.Args[1]
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), infra.BcryptCost)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(h))
}
