package name

import (
	gname "github.com/google/go-containerregistry/pkg/name"
)

// TranslateRegistry rewrites the registry of name to its mirror. The "*" mirror applies
// to every registry. It reports false when no mirror applies.
func TranslateRegistry(name string, registryMirrors map[string]string) (string, bool, error) {
	if len(registryMirrors) == 0 {
		return name, false, nil
	}

	srcRef, err := gname.ParseReference(name, gname.WeakValidation)
	if err != nil {
		return "", false, err
	}

	srcContext := srcRef.Context()
	registryMirror, ok := getMirror(srcContext, registryMirrors)
	if !ok {
		return name, false, nil
	}

	separator := ":"
	if _, isDigest := srcRef.(gname.Digest); isDigest {
		separator = "@"
	}

	refName := registryMirror + "/" + srcContext.RepositoryStr() + separator + srcRef.Identifier()
	if _, err := gname.ParseReference(refName, gname.WeakValidation); err != nil {
		return "", false, err
	}

	return refName, true, nil
}

func getMirror(repo gname.Repository, registryMirrors map[string]string) (string, bool) {
	mirror, ok := registryMirrors["*"]
	if ok {
		return mirror, ok
	}

	mirror, ok = registryMirrors[repo.RegistryStr()]
	return mirror, ok
}
