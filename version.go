package streamer

import (
	"errors"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// ReadVersionManifest returns the device version from a package version
// manifest whose first line is "<product> <version>".
func ReadVersionManifest(path string) (string, error) {
	log.Debug().Str("path", path).Msg("Reading version manifest")
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	lines := strings.Split(string(content), "\n")
	fields := strings.Fields(lines[0])
	if len(fields) < 2 {
		return "", errors.New("could not read version from manifest " + path)
	}

	version := fields[1]
	log.Debug().Msgf("Device version: %s", version)
	return version, nil
}
