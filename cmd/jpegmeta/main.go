package main

import "github.com/riftlabs/jpegmeta/cmd/jpegmeta/cmd"

func main() {
	_ = cmd.Execute()
}
