package writer

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/buildpacks/stager/internal/commands"
)

type YAML struct {
	StructuredFormat
}

func NewYAML() commands.StagesWriter {
	return &YAML{
		StructuredFormat: StructuredFormat{
			MarshalFunc: func(v interface{}) ([]byte, error) {
				buf := bytes.NewBuffer(nil)
				enc := yaml.NewEncoder(buf)
				enc.SetIndent(2)
				if err := enc.Encode(v); err != nil {
					return []byte{}, err
				}
				return buf.Bytes(), nil
			},
		},
	}
}
