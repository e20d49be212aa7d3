package builder

import (
	"github.com/manimj777-glitch/dataprocessor-builds/internal/config"
	"github.com/manimj777-glitch/dataprocessor-builds/internal/domain/build"
)

// Args derives the packaging tool argument list from the configuration for
// one target platform. The order is fixed: name flag, mode flags, output
// location, icon flag iff configured, one hidden-import flag per listed
// module in listed order, collect flags, platform extras, and the
// entry-point path last.
func Args(cfg *config.Config, platform build.Platform) []string {
	args := make([]string, 0, 8+len(cfg.HiddenImports)+len(cfg.CollectPackages)+len(cfg.CollectBinaries))

	args = append(args, "--name="+cfg.Name)

	if platform.Bundled() {
		args = append(args, "--onedir")
	} else {
		args = append(args, "--onefile")
	}

	if !cfg.Console {
		args = append(args, "--windowed")
	}

	if !cfg.KeepBuildCache {
		args = append(args, "--clean")
	}

	args = append(args, "--noconfirm", "--distpath="+cfg.OutputDir)

	if icon := cfg.Icon(platform); icon != "" {
		args = append(args, "--icon="+icon)
	}

	for _, module := range cfg.HiddenImports {
		args = append(args, "--hidden-import="+module)
	}

	for _, pkg := range cfg.CollectPackages {
		args = append(args, "--collect-all="+pkg)
	}

	for _, pkg := range cfg.CollectBinaries {
		args = append(args, "--collect-binaries="+pkg)
	}

	if platform == build.Darwin && cfg.BundleID != "" {
		args = append(args, "--osx-bundle-identifier="+cfg.BundleID)
	}

	args = append(args, cfg.Entry)

	return args
}
