package automaton

import (
	"encoding"
	"encoding/binary"
	"fmt"
)

// This file contains the format for binary encoding of automata. Edge, Node,
// and Automaton implement encoding.BinaryMarshaler and BinaryUnmarshaler, so
// a compiled automaton can be stored and retrieved through rezi or written
// directly to a file.

func encBinaryBool(b bool) []byte {
	if b {
		return []byte{1}
	}
	return []byte{0}
}

func encBinaryInt(i int) []byte {
	enc := make([]byte, 8)
	binary.BigEndian.PutUint64(enc, uint64(int64(i)))
	return enc
}

func encBinary(b encoding.BinaryMarshaler) []byte {
	enc, _ := b.MarshalBinary()

	enc = append(encBinaryInt(len(enc)), enc...)

	return enc
}

// always consumes 1 byte.
func decBinaryBool(data []byte) (bool, int, error) {
	if len(data) < 1 {
		return false, 0, fmt.Errorf("unexpected end of data")
	}

	if data[0] == 0 {
		return false, 1, nil
	} else if data[0] == 1 {
		return true, 1, nil
	}
	return false, 0, fmt.Errorf("unknown non-bool value")
}

// will always read 8 bytes.
func decBinaryInt(data []byte) (int, int, error) {
	if len(data) < 8 {
		return 0, 0, fmt.Errorf("data does not contain 8 bytes")
	}

	val := int64(binary.BigEndian.Uint64(data[:8]))
	return int(val), 8, nil
}

func decBinary(data []byte, b encoding.BinaryUnmarshaler) (int, error) {
	byteLen, readBytes, err := decBinaryInt(data)
	if err != nil {
		return 0, err
	}
	data = data[readBytes:]

	if len(data) < byteLen {
		return 0, fmt.Errorf("unexpected end of data")
	}

	if err := b.UnmarshalBinary(data[:byteLen]); err != nil {
		return 0, err
	}

	return byteLen + readBytes, nil
}

func (e Edge) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, e.Input)
	data = append(data, encBinaryInt(e.Dest)...)

	return data, nil
}

func (e *Edge) UnmarshalBinary(data []byte) error {
	if len(data) < 1 {
		return fmt.Errorf("unexpected end of data")
	}
	e.Input = data[0]
	data = data[1:]

	var err error
	e.Dest, _, err = decBinaryInt(data)
	if err != nil {
		return err
	}

	return nil
}

func (n Node) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, encBinaryInt(n.State)...)
	data = append(data, encBinaryBool(n.Terminal)...)
	data = append(data, encBinaryInt(len(n.Edges))...)
	for i := range n.Edges {
		data = append(data, encBinary(n.Edges[i])...)
	}

	return data, nil
}

func (n *Node) UnmarshalBinary(data []byte) error {
	var err error
	var bytesRead int

	n.State, bytesRead, err = decBinaryInt(data)
	if err != nil {
		return fmt.Errorf("state: %w", err)
	}
	data = data[bytesRead:]

	n.Terminal, bytesRead, err = decBinaryBool(data)
	if err != nil {
		return fmt.Errorf("terminal flag: %w", err)
	}
	data = data[bytesRead:]

	var edgeCount int
	edgeCount, bytesRead, err = decBinaryInt(data)
	if err != nil {
		return fmt.Errorf("edge count: %w", err)
	}
	data = data[bytesRead:]

	n.Edges = nil
	for i := 0; i < edgeCount; i++ {
		var e Edge
		bytesRead, err = decBinary(data, &e)
		if err != nil {
			return fmt.Errorf("edge %d: %w", i, err)
		}
		data = data[bytesRead:]
		n.Edges = append(n.Edges, e)
	}

	return nil
}

func (a Automaton) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, encBinaryInt(a.start)...)
	data = append(data, encBinaryInt(len(a.nodes))...)
	for _, id := range a.States() {
		data = append(data, encBinary(a.nodes[id])...)
	}

	return data, nil
}

func (a *Automaton) UnmarshalBinary(data []byte) error {
	var err error
	var bytesRead int

	a.start, bytesRead, err = decBinaryInt(data)
	if err != nil {
		return fmt.Errorf("start state: %w", err)
	}
	data = data[bytesRead:]

	var nodeCount int
	nodeCount, bytesRead, err = decBinaryInt(data)
	if err != nil {
		return fmt.Errorf("node count: %w", err)
	}
	data = data[bytesRead:]

	a.nodes = map[int]Node{}
	for i := 0; i < nodeCount; i++ {
		var n Node
		bytesRead, err = decBinary(data, &n)
		if err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
		data = data[bytesRead:]
		a.nodes[n.State] = n
	}

	return nil
}
