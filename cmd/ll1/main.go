package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	err := Execute()
	if err != nil {
		if !errors.Is(err, errRejected) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
