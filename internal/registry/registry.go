// Package registry reduces package-registry APIs to the one question the
// update engine asks: what is the latest release and where can it be
// downloaded from.
package registry

// Release is a registry's answer for a package: the latest version name and
// the candidate download URLs for it.
type Release struct {
	Version      string
	DownloadURLs []string
}
