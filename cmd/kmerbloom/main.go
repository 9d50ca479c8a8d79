// cmd/kmerbloom/main.go
package main

import (
	"kmerbloom/internal/app"
	"kmerbloom/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
