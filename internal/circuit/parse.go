// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package circuit

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse reads a circuit description from r: a first line "qubits N", then
// one gate per line ("H 0", "X 2", "CNOT 0 1" for control then target).
// Blank lines and lines starting with "#" are ignored. This is the
// standalone-file analogue of the structured Program/Step/Gate model richer
// circuit front-ends use, simplified to a flat text format since a
// reordering benchmark only needs a gate sequence, not a staged program.
func Parse(r io.Reader) (*Circuit, error) {
	scanner := bufio.NewScanner(r)
	var c Circuit
	sawHeader := false
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if !sawHeader {
			if len(fields) != 2 || !strings.EqualFold(fields[0], "qubits") {
				return nil, fmt.Errorf("circuit: line %d: expected \"qubits N\" header, got %q", lineNo, line)
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("circuit: line %d: invalid qubit count: %w", lineNo, err)
			}
			c.NumQubits = n
			sawHeader = true
			continue
		}
		gate, err := parseGate(fields)
		if err != nil {
			return nil, fmt.Errorf("circuit: line %d: %w", lineNo, err)
		}
		c.Gates = append(c.Gates, gate)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !sawHeader {
		return nil, fmt.Errorf("circuit: missing \"qubits N\" header")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func parseGate(fields []string) (Gate, error) {
	if len(fields) == 0 {
		return Gate{}, fmt.Errorf("empty gate line")
	}
	name := strings.ToUpper(fields[0])
	switch name {
	case "H", "X", "Y", "Z", "S", "T":
		if len(fields) != 2 {
			return Gate{}, fmt.Errorf("gate %s expects exactly one qubit argument", name)
		}
		target, err := strconv.Atoi(fields[1])
		if err != nil {
			return Gate{}, fmt.Errorf("gate %s: invalid qubit index: %w", name, err)
		}
		return Gate{Kind: kindFromName(name), Target: target, Control: -1}, nil
	case "CNOT":
		if len(fields) != 3 {
			return Gate{}, fmt.Errorf("gate CNOT expects control and target qubits")
		}
		control, err := strconv.Atoi(fields[1])
		if err != nil {
			return Gate{}, fmt.Errorf("gate CNOT: invalid control index: %w", err)
		}
		target, err := strconv.Atoi(fields[2])
		if err != nil {
			return Gate{}, fmt.Errorf("gate CNOT: invalid target index: %w", err)
		}
		return Gate{Kind: GateCNOT, Control: control, Target: target}, nil
	default:
		return Gate{}, fmt.Errorf("unknown gate %q", fields[0])
	}
}

func kindFromName(name string) GateKind {
	switch name {
	case "H":
		return GateH
	case "X":
		return GateX
	case "Y":
		return GateY
	case "Z":
		return GateZ
	case "S":
		return GateS
	case "T":
		return GateT
	}
	return GateH
}
