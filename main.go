package main

import (
	"github.com/joho/godotenv"

	"codeanomaly/cmd"
)

func main() {
	_ = godotenv.Load()
	cmd.Execute()
}
