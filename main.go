package main

import (
	"os"

	"github.com/CashGlitch/CashGlitch/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
