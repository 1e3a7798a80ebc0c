package main

import (
	"os"

	"github.com/hackaholics/identity/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
