package command

import "context"

// Client serves bot commands until ctx is done or the update stream ends.
type Client interface {
	HandleCommand(ctx context.Context) error
}
