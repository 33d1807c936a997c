package signature

import (
	"github.com/opencontainers/go-digest"
)

// Stage computes the signature of a stage from its name, its predecessor's signature,
// the checksum of its builder hook and the checksum of its dependencies.
func Stage(name, prev, hookChecksum, depsChecksum string) string {
	digester := digest.Canonical.Digester()
	writeFields(digester.Hash(), name, prev, hookChecksum, depsChecksum)
	return digester.Digest().Encoded()
}

// Record is the signature of one stage in a build.
type Record struct {
	Name      string `json:"name" yaml:"name" toml:"name"`
	Signature string `json:"signature" yaml:"signature" toml:"signature"`
}

// Stale returns, in order, the names of the current stages that must be rebuilt given
// the records of a previous build. Once a stage is stale, every later stage is too.
func Stale(previous, current []Record) []string {
	prev := map[string]string{}
	for _, r := range previous {
		prev[r.Name] = r.Signature
	}

	var stale []string
	invalidated := false
	for _, r := range current {
		if !invalidated {
			if sig, ok := prev[r.Name]; !ok || sig != r.Signature {
				invalidated = true
			}
		}
		if invalidated {
			stale = append(stale, r.Name)
		}
	}
	return stale
}
