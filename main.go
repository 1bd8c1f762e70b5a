package main

import "github.com/VadimTolstov/rococo-sub000/cmd"

func main() {
	cmd.Execute()
}
