package platform

import (
	"fmt"
	"strings"
)

// familyMap maps distribution names to their canonical family names.
var familyMap = map[string]string{
	"debian":   FamilyDebian,
	"ubuntu":   FamilyDebian, // gopsutil might return ubuntu as family
	"rhel":     FamilyRHEL,
	"centos":   FamilyRHEL,
	"rocky":    FamilyRHEL,
	"fedora":   FamilyFedora,
	"suse":     FamilySUSE,
	"opensuse": FamilySUSE,
	"arch":     FamilyArch,
	"manjaro":  FamilyArch,
	"alpine":   FamilyAlpine,
	"gentoo":   FamilyGentoo,
}

// assetArchMap maps normalized architectures to the tokens AppImage
// builds put in their file names.
var assetArchMap = map[string]string{
	"amd64": "x86_64",
	"arm64": "aarch64",
}

// packageSuffixMap maps GOOS values to the released package suffix.
var packageSuffixMap = map[string]string{
	"linux": ".AppImage",
}

// normalizeArch converts GOARCH values to normalized architecture names.
// Only amd64 and arm64 have released builds.
func normalizeArch(arch string) (string, error) {
	switch arch {
	case "amd64", "x86_64":
		return "amd64", nil
	case "arm64", "aarch64":
		return "arm64", nil
	default:
		return "", fmt.Errorf("unsupported architecture: %s (only amd64 and arm64 are released)", arch)
	}
}

// AssetArch returns the asset-name architecture token for arch.
// Both GOARCH spellings and uname spellings are accepted.
func AssetArch(arch string) (string, error) {
	normalized, err := normalizeArch(arch)
	if err != nil {
		return "", err
	}
	return assetArchMap[normalized], nil
}

// PackageSuffix returns the asset file suffix released for goos.
func PackageSuffix(goos string) (string, error) {
	suffix, ok := packageSuffixMap[strings.ToLower(goos)]
	if !ok {
		return "", fmt.Errorf("unsupported OS: %s (only linux AppImages are released)", goos)
	}
	return suffix, nil
}

// normalizePlatform converts platform IDs to lowercase for consistency.
func normalizePlatform(platform string) string {
	return strings.ToLower(strings.TrimSpace(platform))
}

// mapFamily maps distribution family strings to canonical family names.
func mapFamily(family string) string {
	normalized := strings.ToLower(strings.TrimSpace(family))
	if canonical, ok := familyMap[normalized]; ok {
		return canonical
	}
	return FamilyUnknown
}
