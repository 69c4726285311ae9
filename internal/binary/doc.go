// Package binary resolves the latest release of an application and
// downloads its packaged executable.
//
// # Resolution
//
// The Resolver queries the GitHub-style "latest release" endpoint and
// decodes the payload into typed structures. Decoding fails closed: a
// missing assets list or an asset without a name or download URL is a
// ParseError, never a silently empty value. SelectAsset returns the first
// asset, in list order, whose name ends with the package suffix and
// contains the architecture token.
//
// # Download
//
// The Downloader streams the asset body to disk in fixed-size chunks so
// peak memory does not grow with the asset size, then sets the executable
// permission bits. A failed transfer leaves the truncated file in place;
// there is no cleanup and no integrity check.
//
// # Usage
//
//	resolver := binary.NewResolver(binary.WithUserAgent("HyPrism-installer"))
//	asset, err := resolver.Resolve(ctx, "yyyumeniku", "HyPrism", binary.AssetFilter{
//	    Suffix: ".AppImage",
//	    Arch:   "x86_64",
//	})
//	if err != nil {
//	    return err
//	}
//
//	target, err := binary.TargetFor(installDir, asset.DownloadURL)
//	if err != nil {
//	    return err
//	}
//	result, err := binary.NewDownloader().Download(ctx, asset.DownloadURL, target)
package binary
