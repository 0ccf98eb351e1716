// Command hash-generator prints a password hash suitable for seeding the
// users table. The password is checked against the account password policy
// before it is hashed.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phrazzld/nestly-api/internal/domain"
	"github.com/phrazzld/nestly-api/internal/service/auth"
)

func main() {
	cost := flag.Int("cost", 10, "bcrypt cost")
	username := flag.String("username", "", "username checked for similarity to the password")
	flag.Parse()

	if err := run(os.Stdin, os.Stdout, *cost, *username); err != nil {
		fmt.Fprintf(os.Stderr, "hash-generator: %v\n", err)
		os.Exit(1)
	}
}

// run reads one password per line from in and writes its hash to out.
func run(in io.Reader, out io.Writer, cost int, username string) error {
	hasher := auth.NewBcryptHasher(cost)
	scanner := bufio.NewScanner(in)

	line, hashed := 0, 0
	for scanner.Scan() {
		line++
		password := strings.TrimRight(scanner.Text(), "\r")
		if password == "" {
			continue
		}

		if err := domain.ValidatePassword(password, username); err != nil {
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				return fmt.Errorf("line %d: %s", line, ve.Message)
			}
			return err
		}

		hash, err := hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if _, err := fmt.Fprintln(out, hash); err != nil {
			return err
		}
		hashed++
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if hashed == 0 {
		return errors.New("no password given on stdin")
	}
	return nil
}
