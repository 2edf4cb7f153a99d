package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/replay-miner/pkg/errors"
)

// CheckConfigCompatibility checks that a session config written for
// configVersion can be run by a miner at minerVersion.
//
// Compatibility Rules:
//   - An empty config version is always accepted
//   - If either version is "main" (development build), the check is skipped
//   - Major versions must match exactly
//   - The config minor version must not be newer than the miner's
//
// Examples:
//   - Miner 1.2.0, Config 1.2.0 -> OK
//   - Miner 1.3.0, Config 1.2.7 -> OK (older config)
//   - Miner 1.2.0, Config 1.3.0 -> ERROR (config needs newer miner)
//   - Miner 2.0.0, Config 1.2.0 -> ERROR (major differs)
func CheckConfigCompatibility(minerVersion, configVersion string) error {
	if configVersion == "" {
		return nil
	}

	minerVersion = strings.TrimPrefix(minerVersion, "v")
	configVersion = strings.TrimPrefix(configVersion, "v")

	if minerVersion == "main" || configVersion == "main" {
		return nil
	}

	minerSemver, err := semver.NewVersion(minerVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid miner version '%s'", minerVersion)
	}

	configSemver, err := semver.NewVersion(configVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid config version '%s'", configVersion)
	}

	if minerSemver.Major() != configSemver.Major() {
		return errors.Newf(errors.ErrCodeInvalidVersion,
			"major version mismatch: miner is %d.x.x but config requires %d.x.x",
			minerSemver.Major(), configSemver.Major())
	}

	if configSemver.Minor() > minerSemver.Minor() {
		return errors.Newf(errors.ErrCodeInvalidVersion,
			"config requires miner %d.%d.x or newer, running %s",
			configSemver.Major(), configSemver.Minor(), minerSemver.String())
	}

	return nil
}
