package notifier

import (
	"errors"
	"fmt"
	"os"
	"os/user"

	"github.com/oshokin/patient-monitor/internal/domain/patient"
)

// UnknownActor fills actor fields that could not be detected.
const UnknownActor = "unknown"

// DetectActor describes the host and account a binary runs under, so
// caregivers can tell which bedside monitor raised an alert. Fields that
// cannot be detected are set to UnknownActor and reported in the error;
// the returned actor is never nil.
func DetectActor() (*patient.Actor, error) {
	return detectActor(os.Hostname, user.Current, os.Getenv)
}

func detectActor(
	hostnameFn func() (string, error),
	userFn func() (*user.User, error),
	getenv func(string) string,
) (*patient.Actor, error) {
	actor := &patient.Actor{Hostname: UnknownActor, Username: UnknownActor}

	var errs []error

	if hostname, err := hostnameFn(); err != nil {
		errs = append(errs, fmt.Errorf("hostname: %w", err))
	} else if hostname != "" {
		actor.Hostname = hostname
	}

	switch current, err := userFn(); {
	case err == nil && current.Username != "":
		actor.Username = current.Username
	case getenv("USER") != "":
		actor.Username = getenv("USER")
	case getenv("USERNAME") != "":
		actor.Username = getenv("USERNAME")
	case err != nil:
		errs = append(errs, fmt.Errorf("current user: %w", err))
	}

	return actor, errors.Join(errs...)
}
