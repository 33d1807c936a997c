package writer

import (
	"bytes"
	"encoding/json"

	"github.com/buildpacks/stager/internal/commands"
)

type JSON struct {
	StructuredFormat
}

func NewJSON() commands.StagesWriter {
	return &JSON{
		StructuredFormat: StructuredFormat{
			MarshalFunc: func(v interface{}) ([]byte, error) {
				buf, err := json.Marshal(v)
				if err != nil {
					return []byte{}, err
				}

				formattedBuf := bytes.NewBuffer(nil)
				if err := json.Indent(formattedBuf, buf, "", "  "); err != nil {
					return []byte{}, err
				}
				formattedBuf.WriteString("\n")
				return formattedBuf.Bytes(), nil
			},
		},
	}
}
