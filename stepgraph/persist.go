package stepgraph

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/padstep/padstep/pad"
	"github.com/padstep/padstep"
)

const (
	fsgMagic   = "FSG1"
	fsgVersion = uint32(1)
)

// Persist writes g to path in the .fsg binary format: a magic/version
// header, the arrow count the graph was built against (so Load can
// refuse a graph built for a different pad without re-deriving
// anything), every state in index order, then every edge in the order
// the underlying graph's Edges() returns them.
func Persist(g *StepGraph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return padstep.NewGraphPersistError(path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeFSG(w, g); err != nil {
		return padstep.NewGraphPersistError(path, err)
	}
	if err := w.Flush(); err != nil {
		return padstep.NewGraphPersistError(path, err)
	}
	return nil
}

func writeFSG(w io.Writer, g *StepGraph) error {
	if _, err := io.WriteString(w, fsgMagic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, fsgVersion); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(g.model.NumArrows())); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(g.states))); err != nil {
		return err
	}
	for _, s := range g.states {
		if err := writeBodyState(w, s); err != nil {
			return err
		}
	}

	// Edges are written in topology.Edges() order, which lvlath/core
	// guarantees is deterministic, so two Persist calls against the
	// same build produce byte-identical files.
	edges := g.topology.Edges()
	if err := binary.Write(w, binary.LittleEndian, uint32(len(edges))); err != nil {
		return err
	}
	for _, e := range edges {
		label, ok := g.edgeLabels[e.ID]
		if !ok {
			return errors.Errorf("stepgraph: edge %s has no recorded move label", e.ID)
		}
		from, err := strconv.Atoi(e.From)
		if err != nil {
			return err
		}
		to, err := strconv.Atoi(e.To)
		if err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(from)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(to)); err != nil {
			return err
		}
		if err := writeMoveLabel(w, label); err != nil {
			return err
		}
	}
	return nil
}

func writeBodyState(w io.Writer, s BodyState) error {
	for _, foot := range s.Feet {
		for _, a := range foot {
			if err := binary.Write(w, binary.LittleEndian, int32(a.Arrow)); err != nil {
				return err
			}
			if err := binary.Write(w, binary.LittleEndian, uint8(a.State)); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeMoveLabel(w io.Writer, mv MoveLabel) error {
	for _, fm := range mv.Feet {
		moved := uint8(0)
		if fm.Moved {
			moved = 1
		}
		if err := binary.Write(w, binary.LittleEndian, moved); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(fm.StepType)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, [2]uint8{uint8(fm.Actions[0]), uint8(fm.Actions[1])}); err != nil {
			return err
		}
	}
	return nil
}

// Load reads a .fsg file previously written by Persist and rebuilds a
// StepGraph against model, refusing to load if the file's arrow count
// does not match model's (ErrGraphArrowCountMismatch) or if the version
// tag is unrecognized (ErrGraphVersionMismatch).
func Load(model *pad.PadModel, path string) (*StepGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, padstep.NewGraphPersistError(path, err)
	}
	defer f.Close()

	g, err := readFSG(bufio.NewReader(f), model)
	if err != nil {
		return nil, padstep.NewGraphPersistError(path, err)
	}
	return g, nil
}

func readFSG(r io.Reader, model *pad.PadModel) (*StepGraph, error) {
	magic := make([]byte, len(fsgMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, err
	}
	if string(magic) != fsgMagic {
		return nil, padstep.ErrGraphVersionMismatch
	}

	var version, numArrows, numStates uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, err
	}
	if version != fsgVersion {
		return nil, padstep.ErrGraphVersionMismatch
	}
	if err := binary.Read(r, binary.LittleEndian, &numArrows); err != nil {
		return nil, err
	}
	if int(numArrows) != model.NumArrows() {
		return nil, padstep.ErrGraphArrowCountMismatch
	}
	if err := binary.Read(r, binary.LittleEndian, &numStates); err != nil {
		return nil, err
	}

	g := &StepGraph{
		model:      model,
		index:      make(map[BodyState]int, numStates),
		topology:   newTopology(),
		edgeLabels: make(map[string]MoveLabel),
	}
	for i := uint32(0); i < numStates; i++ {
		s, err := readBodyState(r)
		if err != nil {
			return nil, err
		}
		if _, _, err := g.addState(s); err != nil {
			return nil, err
		}
	}

	var numEdges uint32
	if err := binary.Read(r, binary.LittleEndian, &numEdges); err != nil {
		return nil, err
	}
	for e := uint32(0); e < numEdges; e++ {
		var from, to uint32
		if err := binary.Read(r, binary.LittleEndian, &from); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &to); err != nil {
			return nil, err
		}
		mv, err := readMoveLabel(r)
		if err != nil {
			return nil, err
		}
		if err := g.addEdge(int(from), int(to), mv); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func readBodyState(r io.Reader) (BodyState, error) {
	var s BodyState
	for f := 0; f < 2; f++ {
		for p := 0; p < 2; p++ {
			var arrow int32
			var state uint8
			if err := binary.Read(r, binary.LittleEndian, &arrow); err != nil {
				return s, err
			}
			if err := binary.Read(r, binary.LittleEndian, &state); err != nil {
				return s, err
			}
			s.Feet[f][p] = FootArrowAttachment{Arrow: int(arrow), State: ArrowAttachmentState(state)}
		}
	}
	return s, nil
}

func readMoveLabel(r io.Reader) (MoveLabel, error) {
	var mv MoveLabel
	for f := 0; f < 2; f++ {
		var moved uint8
		var stepType uint16
		var actionPair [2]uint8
		if err := binary.Read(r, binary.LittleEndian, &moved); err != nil {
			return mv, err
		}
		if err := binary.Read(r, binary.LittleEndian, &stepType); err != nil {
			return mv, err
		}
		if err := binary.Read(r, binary.LittleEndian, &actionPair); err != nil {
			return mv, err
		}
		mv.Feet[f] = FootMove{
			Moved:    moved == 1,
			StepType: StepType(stepType),
			Actions:  [2]FootAction{FootAction(actionPair[0]), FootAction(actionPair[1])},
		}
	}
	return mv, nil
}
