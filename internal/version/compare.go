package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-lab/pkg/errors"
)

// CheckConfigCompatibility reports whether a config written for configVersion can run on engineVersion.
//
// Major and minor must match; patch may differ. A "main" build on either side skips the check.
//
//   - engine 0.1.3, config 0.1.0 -> ok
//   - engine 0.2.0, config 0.1.0 -> minor mismatch
//   - engine main, config 9.9.9 -> ok
func CheckConfigCompatibility(engineVersion, configVersion string) error {
	engineVersion = strings.TrimPrefix(engineVersion, "v")
	configVersion = strings.TrimPrefix(configVersion, "v")

	if engineVersion == "main" || configVersion == "main" {
		return nil
	}

	engineSemver, err := semver.NewVersion(engineVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid engine version '%s'", engineVersion)
	}

	configSemver, err := semver.NewVersion(configVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid config version '%s'", configVersion)
	}

	if engineSemver.Major() != configSemver.Major() {
		return errors.Newf(errors.ErrCodeInvalidVersion,
			"major version mismatch: engine is %d.x.x but config targets %d.x.x",
			engineSemver.Major(), configSemver.Major())
	}

	if engineSemver.Minor() != configSemver.Minor() {
		return errors.Newf(errors.ErrCodeInvalidVersion,
			"minor version mismatch: engine is %d.%d.x but config targets %d.%d.x",
			engineSemver.Major(), engineSemver.Minor(),
			configSemver.Major(), configSemver.Minor())
	}

	return nil
}
