package writer

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"
	"text/template"

	"github.com/buildpacks/stager/internal/style"
	"github.com/buildpacks/stager/pkg/client"
	"github.com/buildpacks/stager/pkg/logging"
)

type HumanReadable struct{}

func NewHumanReadable() *HumanReadable {
	return &HumanReadable{}
}

func (h *HumanReadable) Print(logger logging.Logger, plans []client.ApplicationPlan) error {
	tpl := template.Must(template.New("stages").
		Funcs(template.FuncMap{
			"StringsJoin": strings.Join,
			"ShortSig":    shortSignature,
			"Status":      status,
		}).
		Parse(stagesTemplate))

	for i, plan := range plans {
		if i > 0 {
			logger.Info("")
		}
		logger.Infof("Image: %s (from %s)", style.Symbol(plan.Name), plan.BaseImage)

		buf := bytes.NewBuffer(nil)
		tw := tabwriter.NewWriter(buf, 0, 0, 4, ' ', 0)
		if err := tpl.Execute(tw, plan); err != nil {
			return fmt.Errorf("writing stages of %s: %w", style.Symbol(plan.Name), err)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		logger.Info(buf.String())
	}
	return nil
}

func shortSignature(sig string) string {
	if len(sig) > 12 {
		return sig[:12]
	}
	return sig
}

func status(s client.StagePlan) string {
	switch {
	case s.Empty:
		return "empty"
	case s.Cached:
		return "cached"
	}
	return "-"
}

var stagesTemplate = `
  STAGE	SIGNATURE	STATUS	DEPENDENCIES
{{- range $_, $s := .Stages }}
  {{ $s.Name }}	{{ ShortSig $s.Signature }}	{{ Status $s }}	{{ StringsJoin $s.Dependencies "; " }}
{{- end }}
{{- if .Stale }}

Changed stages:
  {{ StringsJoin .Stale ", " }}
{{- end }}`
