package main

import "github.com/bleathingman/iron-system/cmd/iron/root"

func main() {
	root.Execute()
}
