// hashpw печатает bcrypt-хэш для admin.password_hash (ADMIN_PASSWORD_HASH).
// Пароль читается из первой строки stdin, чтобы не оставлять его в истории shell.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"debatecamp/internal/auth"
)

func main() {
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(os.Stderr, "usage: echo 'password' | hashpw")
		os.Exit(2)
	}
	password := strings.TrimRight(line, "\r\n")

	hash, err := auth.HashPassword(password)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if auth.IsPasswordPolicyError(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
	fmt.Println(hash)
}
