package server

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/xerrors"

	"github.com/vulnboard/vulnboard/pkg/log"
	"github.com/vulnboard/vulnboard/pkg/patchfinder"
	"github.com/vulnboard/vulnboard/pkg/types"
)

// requestFilter reads "source" (comma separated) and "search" from the query
// string, falling back to the server filter for each missing parameter.
func (s Server) requestFilter(c *fiber.Ctx) types.Filter {
	filter := s.filter
	if sources := c.Query("source"); sources != "" {
		filter.Sources = nil
		for _, source := range strings.Split(sources, ",") {
			if source = strings.TrimSpace(source); source != "" {
				filter.Sources = append(filter.Sources, source)
			}
		}
	}
	if search := c.Query("search"); search != "" {
		filter.Search = search
	}
	return filter
}

func (s Server) load() (types.PackageVulnerabilities, map[string]string, error) {
	data, err := s.dbc.GetPackageVulnerabilities()
	if err != nil {
		return nil, nil, xerrors.Errorf("patch data: %w", err)
	}
	installed, err := s.dbc.GetInstalledVersions()
	if err != nil {
		return nil, nil, xerrors.Errorf("installed versions: %w", err)
	}
	return data, installed, nil
}

func (s Server) getPatches(c *fiber.Ctx) error {
	data, installed, err := s.load()
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(patchfinder.ComputeVersionsAndPatch(data, installed, s.requestFilter(c)))
}

func (s Server) getVersions(c *fiber.Ctx) error {
	pkgName, err := url.PathUnescape(c.Params("package"))
	if err != nil {
		return badRequest(c, err)
	}

	data, installed, err := s.load()
	if err != nil {
		return internalError(c, err)
	}
	vv, ok := patchfinder.ComputeVersionVulns(data, installed, s.requestFilter(c))[pkgName]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown package " + pkgName,
		})
	}
	affected, err := patchfinder.Affecting(installed[pkgName], data[pkgName])
	if err != nil {
		s.logger.Warn("Affected ranges not evaluated", log.String("package", pkgName), log.Err(err))
		affected = []string{}
	}
	return c.JSON(fiber.Map{
		"package":  pkgName,
		"versions": patchfinder.SortedVersions(vv),
		"vulns":    vv,
		"affected": affected,
	})
}
