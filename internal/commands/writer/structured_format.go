package writer

import (
	"fmt"

	"github.com/buildpacks/stager/pkg/client"
	"github.com/buildpacks/stager/pkg/logging"
)

type StagesOutput struct {
	Images []client.ApplicationPlan `json:"images" yaml:"images" toml:"images"`
}

type StructuredFormat struct {
	MarshalFunc func(interface{}) ([]byte, error)
}

func (w *StructuredFormat) Print(logger logging.Logger, plans []client.ApplicationPlan) error {
	if plans == nil {
		plans = []client.ApplicationPlan{}
	}

	out, err := w.MarshalFunc(StagesOutput{Images: plans})
	if err != nil {
		return fmt.Errorf("marshalling stages: %w", err)
	}

	_, err = logger.Writer().Write(out)
	return err
}
