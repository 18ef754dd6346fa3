package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/package-url/packageurl-go"
)

func CacheDir() string {
	tmpDir, err := os.UserCacheDir()
	if err != nil {
		tmpDir = os.TempDir()
	}
	return filepath.Join(tmpDir, "vulnboard")
}

// NormalizePkgName folds a package name the way its registry compares names.
// The ecosystem is a package-url type such as "npm" or "pypi".
func NormalizePkgName(ecosystem, pkgName string) string {
	switch ecosystem {
	case packageurl.TypePyPi:
		// PEP 503: case insensitive, runs of "-", "_" and "." are equivalent
		pkgName = strings.ToLower(pkgName)
		pkgName = strings.NewReplacer("_", "-", ".", "-").Replace(pkgName)
	case packageurl.TypeNuget, packageurl.TypeMaven, packageurl.TypeGolang:
		// case sensitive
	default:
		pkgName = strings.ToLower(pkgName)
	}
	return pkgName
}
