package source

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/telephony-observer/observer-go/pkg/telephony"
)

// scenarioFrame is the YAML form of a Frame, naming the category.
type scenarioFrame struct {
	Event string `yaml:"event"`
	Frame `yaml:",inline"`
}

type scenarioFile struct {
	Frames []scenarioFrame `yaml:"frames"`
}

// ParseScenario decodes a YAML scenario:
//
//	frames:
//	  - event: SIM_STATE
//	    slot: 0
//	    card_type: 20
//	    sim_state: 4
//	  - event: CALL_STATE
//	    offset: 500ms
//	    call: {state: 1, number: "10086"}
func ParseScenario(data []byte) ([]Frame, error) {
	var file scenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	frames := make([]Frame, 0, len(file.Frames))
	for i, sf := range file.Frames {
		et, err := telephony.ParseEventType(sf.Event)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		f := sf.Frame
		f.EventType = et
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		frames = append(frames, f)
	}
	return frames, nil
}

// LoadScenario reads and parses a YAML scenario file.
func LoadScenario(path string) ([]Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

// WriteScenario encodes frames as a YAML scenario.
func WriteScenario(w io.Writer, frames []Frame) error {
	file := scenarioFile{Frames: make([]scenarioFrame, 0, len(frames))}
	for _, f := range frames {
		file.Frames = append(file.Frames, scenarioFrame{Event: f.EventType.String(), Frame: f})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return err
	}
	return enc.Close()
}
