package alarm

import (
	"context"

	"google.golang.org/grpc/metadata"
)

// Metadata keys carrying the caller identity for the audit log.
const (
	MetadataHostname = "x-actor-hostname"
	MetadataUsername = "x-actor-username"
)

// Actor identifies the machine and user issuing a call.
type Actor struct {
	Hostname string
	Username string
}

// String renders the actor as user@host.
func (a Actor) String() string {
	if a.Hostname == "" && a.Username == "" {
		return "unknown"
	}

	return a.Username + "@" + a.Hostname
}

// AppendActor attaches the actor to the outgoing call metadata.
func AppendActor(ctx context.Context, actor Actor) context.Context {
	return metadata.AppendToOutgoingContext(
		ctx,
		MetadataHostname, actor.Hostname,
		MetadataUsername, actor.Username,
	)
}

// ActorFromContext reads the actor from incoming call metadata.
func ActorFromContext(ctx context.Context) Actor {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return Actor{}
	}

	return Actor{
		Hostname: first(md.Get(MetadataHostname)),
		Username: first(md.Get(MetadataUsername)),
	}
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}

	return values[0]
}
