package main

import "github.com/NikitArias/online-store-loyalty/internal/cmd"

func main() {
	cmd.Execute()
}
