package fallback

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/tailscale/hujson"

	"github.com/padstep/padstep"
	"github.com/padstep/padstep/stepgraph"
)

type wireFallbacks struct {
	StepTypeFallbacks map[string][]string
}

// LoadJSON parses a StepTypeFallbacks document per §6: a `*Name` entry
// is a splice reference to another key's list, resolved and cycle
// checked by Build.
func LoadJSON(data []byte) (*Table, error) {
	clean, err := hujson.Standardize(data)
	if err != nil {
		return nil, padstep.NewConfigError("<fallbacks>", errors.Wrap(err, "not valid JSON-with-comments"))
	}

	var wire wireFallbacks
	if err := json.Unmarshal(clean, &wire); err != nil {
		return nil, padstep.NewConfigError("<fallbacks>", errors.Wrap(err, "does not match expected shape"))
	}

	raw := make(map[stepgraph.StepType][]rawEntry, len(wire.StepTypeFallbacks))
	for key, values := range wire.StepTypeFallbacks {
		st, ok := stepgraph.ParseStepType(key)
		if !ok {
			return nil, padstep.NewConfigError(key, padstep.ErrUnknownStepType)
		}
		entries := make([]rawEntry, 0, len(values))
		for _, v := range values {
			if strings.HasPrefix(v, "*") {
				target, ok := stepgraph.ParseStepType(strings.TrimPrefix(v, "*"))
				if !ok {
					return nil, padstep.NewConfigError(v, padstep.ErrUnknownStepType)
				}
				entries = append(entries, rawEntry{splice: target, isSplice: true})
				continue
			}
			literal, ok := stepgraph.ParseStepType(v)
			if !ok {
				return nil, padstep.NewConfigError(v, padstep.ErrUnknownStepType)
			}
			entries = append(entries, rawEntry{literal: literal})
		}
		raw[st] = entries
	}

	return Build(raw)
}
