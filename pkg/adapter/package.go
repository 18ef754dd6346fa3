package adapter

import (
	"encoding/json"
	"io"

	"github.com/package-url/packageurl-go"
	"golang.org/x/xerrors"

	"github.com/vulnboard/vulnboard/pkg/types"
	"github.com/vulnboard/vulnboard/pkg/utils"
)

type rawPackage struct {
	Name      *string `json:"name"`
	Version   *string `json:"version"`
	Ecosystem *string `json:"ecosystem"`
	PURL      *string `json:"purl"`
}

// DecodePackages reads a JSON array of packages. A package URL fills the
// name, ecosystem and version when they are missing.
func DecodePackages(r io.Reader) ([]types.Package, error) {
	raw, err := decodeArray(r, "packages")
	if err != nil {
		return nil, err
	}

	pkgs := make([]types.Package, 0, len(raw))
	for i, msg := range raw {
		var rp rawPackage
		if err = json.Unmarshal(msg, &rp); err != nil {
			skip("package", i, err)
			continue
		}
		pkg, err := rp.toPackage()
		if err != nil {
			skip("package", i, err)
			continue
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, nil
}

func (rp rawPackage) toPackage() (types.Package, error) {
	pkg := types.Package{
		Name:      trim(rp.Name),
		Version:   trim(rp.Version),
		Ecosystem: trim(rp.Ecosystem),
		PURL:      trim(rp.PURL),
	}
	if pkg.PURL != "" {
		purl, err := packageurl.FromString(pkg.PURL)
		if err != nil {
			return types.Package{}, xerrors.Errorf("invalid purl %q: %w", pkg.PURL, err)
		}
		if pkg.Ecosystem == "" {
			pkg.Ecosystem = purl.Type
		}
		if pkg.Name == "" {
			pkg.Name = utils.NormalizePkgName(purl.Type, purlName(purl))
		}
		if pkg.Version == "" {
			pkg.Version = purl.Version
		}
	}
	if pkg.Name == "" {
		return types.Package{}, xerrors.New("package without name")
	}
	return pkg, nil
}

func purlName(purl packageurl.PackageURL) string {
	if purl.Namespace == "" {
		return purl.Name
	}
	if purl.Type == packageurl.TypeMaven {
		return purl.Namespace + ":" + purl.Name
	}
	return purl.Namespace + "/" + purl.Name
}
