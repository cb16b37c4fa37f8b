// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Command qmddsift builds a quantum circuit's functionality diagram and
// shrinks it with dynamic variable reordering, either as a one-shot CLI run
// or as a small HTTP job service.
package main

import "github.com/dalzilio-labs/qmddsift/cmd/qmddsift/cmd"

func main() {
	cmd.Execute()
}
