package build

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/buildpacks/imgutil/local"
	"github.com/docker/docker/client"
	"github.com/docker/docker/errdefs"
	"github.com/pkg/errors"

	"github.com/buildpacks/stager/internal/signature"
	"github.com/buildpacks/stager/internal/style"
)

const (
	ApplicationLabel = "io.buildpacks.stager.application"
	StagesLabel      = "io.buildpacks.stager.stages"
)

// Exporter tags the last stage image of an application as the application image.
type Exporter struct {
	docker client.CommonAPIClient
}

func NewExporter(docker client.CommonAPIClient) *Exporter {
	return &Exporter{docker: docker}
}

type ExportResult struct {
	Tag  string
	ID   string
	Size int64
}

// Export saves the image stageImage under tag with labels.
func (e *Exporter) Export(ctx context.Context, stageImage, tag string, labels map[string]string) (ExportResult, error) {
	img, err := local.NewImage(tag, e.docker, local.FromBaseImage(stageImage))
	if err != nil {
		return ExportResult{}, errors.Wrapf(err, "opening image %s", style.Symbol(stageImage))
	}

	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := img.SetLabel(k, labels[k]); err != nil {
			return ExportResult{}, errors.Wrapf(err, "setting label %s", style.Symbol(k))
		}
	}

	if err := img.Save(); err != nil {
		return ExportResult{}, errors.Wrapf(err, "saving image %s", style.Symbol(tag))
	}

	inspect, _, err := e.docker.ImageInspectWithRaw(ctx, tag)
	if err != nil {
		return ExportResult{}, errors.Wrapf(err, "inspecting image %s", style.Symbol(tag))
	}

	return ExportResult{Tag: tag, ID: inspect.ID, Size: inspect.Size}, nil
}

// Records returns the stage signatures stored on the application image tag. It reports
// false when the image or its label does not exist.
func (e *Exporter) Records(ctx context.Context, tag string) ([]signature.Record, bool, error) {
	inspect, _, err := e.docker.ImageInspectWithRaw(ctx, tag)
	if err != nil {
		if errdefs.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, "inspecting image %s", style.Symbol(tag))
	}
	if inspect.Config == nil {
		return nil, false, nil
	}
	return RecordsFromLabels(inspect.Config.Labels)
}

// RecordsFromLabels decodes the stage signatures written by ExportLabels.
func RecordsFromLabels(labels map[string]string) ([]signature.Record, bool, error) {
	stages, ok := labels[StagesLabel]
	if !ok {
		return nil, false, nil
	}

	var records []signature.Record
	if err := json.Unmarshal([]byte(stages), &records); err != nil {
		return nil, false, errors.Wrapf(err, "decoding label %s", style.Symbol(StagesLabel))
	}
	return records, true, nil
}

// ExportLabels returns the labels of an application image built from records.
func ExportLabels(application string, records []signature.Record) (map[string]string, error) {
	stages, err := json.Marshal(records)
	if err != nil {
		return nil, errors.Wrap(err, "encoding stage signatures")
	}

	return map[string]string{
		ApplicationLabel: application,
		StagesLabel:      string(stages),
	}, nil
}
