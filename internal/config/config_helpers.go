package config

import (
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/buildpacks/stager/internal/style"
)

// ParseUndecodedKeys renders the top-most unknown keys of a decoded toml document.
func ParseUndecodedKeys(undecodedKeys []toml.Key) string {
	unusedKeys := map[string]interface{}{}
	for _, key := range undecodedKeys {
		keyName := key.String()

		parent := strings.Split(keyName, ".")[0]

		if _, ok := unusedKeys[parent]; !ok {
			unusedKeys[keyName] = nil
		}
	}

	var errorKeys []string
	for errorKey := range unusedKeys {
		errorKeys = append(errorKeys, errorKey)
	}
	sort.Strings(errorKeys)
	for i, k := range errorKeys {
		errorKeys[i] = style.Symbol(k)
	}
	return strings.Join(errorKeys, ", ")
}
