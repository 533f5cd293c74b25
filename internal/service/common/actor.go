//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"os"
	"os/user"

	alarmapi "github.com/oshokin/alarm-clock/internal/api/grpc/alarm"
)

// DetectActor gathers host and user information for the audit trail.
// Fields that cannot be read are left empty.
func DetectActor() alarmapi.Actor {
	var actor alarmapi.Actor

	if hostname, err := os.Hostname(); err == nil {
		actor.Hostname = hostname
	}

	if currentUser, err := user.Current(); err == nil {
		actor.Username = currentUser.Username
	}

	return actor
}
