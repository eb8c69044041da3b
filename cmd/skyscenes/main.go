package main

import (
	"context"

	"skyscenes/cmd"
)

func main() {
	cmd.Execute(context.Background())
}
